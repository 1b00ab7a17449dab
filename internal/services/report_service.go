package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/leochenhaha/ForumAPI0924/internal/models"

	"gorm.io/gorm"
)

// ReportReasonPresets 固定的檢舉理由清單，原樣返回給客戶端,
// 最後一項同時是空白理由的默認值
var ReportReasonPresets = []string{
	"spam/advertising",
	"hate/discrimination",
	"harassment/bullying",
	"sensitive/illegal content",
	"IP infringement",
	"other",
}

const (
	maxReasonLen      = 100
	maxDescriptionLen = 1000
	maxReviewNoteLen  = 500
)

type ReportService struct {
	db *gorm.DB
}

func NewReportService(gdb *gorm.DB) *ReportService {
	return &ReportService{db: gdb}
}

type FileReportInput struct {
	TargetType  models.ReportTargetType `json:"target_type"`
	TargetID    uint                    `json:"target_id"`
	Reason      string                  `json:"reason"`
	Description *string                 `json:"description"`
}

type FiledReport struct {
	ID         uint                    `json:"id"`
	TargetType models.ReportTargetType `json:"target_type"`
	Status     models.ReportStatus     `json:"status"`
}

// File 建立一筆檢舉。同一人對同一對象已有 Pending 檢舉時拒絕;
// 除了先查一次,插入本身也靠 partial unique index 擋並發
func (s *ReportService) File(reporterID uint, in FileReportInput) (*FiledReport, error) {
	if !in.TargetType.Valid() {
		return nil, fmt.Errorf("%w: unknown target type %q", ErrValidation, in.TargetType)
	}
	reason := strings.TrimSpace(in.Reason)
	if len(reason) > maxReasonLen {
		return nil, fmt.Errorf("%w: reason too long", ErrValidation)
	}
	if in.Description != nil && len(*in.Description) > maxDescriptionLen {
		return nil, fmt.Errorf("%w: description too long", ErrValidation)
	}
	if reason == "" {
		reason = ReportReasonPresets[len(ReportReasonPresets)-1]
	}

	switch in.TargetType {
	case models.TargetPost:
		var post models.Post
		if err := s.db.First(&post, in.TargetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTargetNotFound
			}
			return nil, err
		}

		var dup int64
		err := s.db.Model(&models.PostReport{}).
			Where("post_id = ? AND reporter_id = ? AND status = ?", post.ID, reporterID, models.ReportPending).
			Count(&dup).Error
		if err != nil {
			return nil, err
		}
		if dup > 0 {
			return nil, ErrDuplicateReport
		}

		report := models.PostReport{
			PostID:      post.ID,
			ReporterID:  reporterID,
			Reason:      reason,
			Description: in.Description,
			Status:      models.ReportPending,
		}
		if err := s.db.Create(&report).Error; err != nil {
			// 並發下的競態輸家撞上唯一索引，一樣歸類為重複檢舉
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrDuplicateReport
			}
			return nil, err
		}
		return &FiledReport{ID: report.ID, TargetType: models.TargetPost, Status: report.Status}, nil

	case models.TargetReply:
		var reply models.Reply
		if err := s.db.First(&reply, in.TargetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTargetNotFound
			}
			return nil, err
		}

		var dup int64
		err := s.db.Model(&models.ReplyReport{}).
			Where("reply_id = ? AND reporter_id = ? AND status = ?", reply.ID, reporterID, models.ReportPending).
			Count(&dup).Error
		if err != nil {
			return nil, err
		}
		if dup > 0 {
			return nil, ErrDuplicateReport
		}

		report := models.ReplyReport{
			ReplyID:     reply.ID,
			ReporterID:  reporterID,
			Reason:      reason,
			Description: in.Description,
			Status:      models.ReportPending,
		}
		if err := s.db.Create(&report).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrDuplicateReport
			}
			return nil, err
		}
		return &FiledReport{ID: report.ID, TargetType: models.TargetReply, Status: report.Status}, nil
	}
	return nil, fmt.Errorf("%w: unknown target type %q", ErrValidation, in.TargetType)
}

// List 合併兩張檢舉表為一個管理視圖，按建立時間倒序
func (s *ReportService) List(status *models.ReportStatus, targetType *models.ReportTargetType) ([]models.ReportView, error) {
	views := []models.ReportView{}

	if targetType == nil || *targetType == models.TargetPost {
		postQuery := s.db.Preload("Reporter").Preload("Post.User")
		if status != nil {
			postQuery = postQuery.Where("status = ?", *status)
		}
		var postReports []models.PostReport
		if err := postQuery.Find(&postReports).Error; err != nil {
			return nil, err
		}
		for i := range postReports {
			views = append(views, postReportView(&postReports[i]))
		}
	}

	if targetType == nil || *targetType == models.TargetReply {
		replyQuery := s.db.Preload("Reporter").Preload("Reply.User")
		if status != nil {
			replyQuery = replyQuery.Where("status = ?", *status)
		}
		var replyReports []models.ReplyReport
		if err := replyQuery.Find(&replyReports).Error; err != nil {
			return nil, err
		}
		for i := range replyReports {
			views = append(views, replyReportView(&replyReports[i]))
		}
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
	return views, nil
}

// MyReport 檢舉人自己的檢舉紀錄，不帶目標內容
type MyReport struct {
	ID          uint                    `json:"id"`
	TargetType  models.ReportTargetType `json:"target_type"`
	Reason      string                  `json:"reason"`
	Status      models.ReportStatus     `json:"status"`
	CreatedAt   time.Time               `json:"created_at"`
	ReviewNote  *string                 `json:"review_note"`
	ActionTaken *string                 `json:"action_taken"`
}

func (s *ReportService) ListMine(reporterID uint) ([]MyReport, error) {
	var postReports []models.PostReport
	if err := s.db.Where("reporter_id = ?", reporterID).Find(&postReports).Error; err != nil {
		return nil, err
	}
	var replyReports []models.ReplyReport
	if err := s.db.Where("reporter_id = ?", reporterID).Find(&replyReports).Error; err != nil {
		return nil, err
	}

	mine := make([]MyReport, 0, len(postReports)+len(replyReports))
	for _, r := range postReports {
		mine = append(mine, MyReport{
			ID: r.ID, TargetType: models.TargetPost, Reason: r.Reason,
			Status: r.Status, CreatedAt: r.CreatedAt,
			ReviewNote: r.ReviewNote, ActionTaken: r.ActionTaken,
		})
	}
	for _, r := range replyReports {
		mine = append(mine, MyReport{
			ID: r.ID, TargetType: models.TargetReply, Reason: r.Reason,
			Status: r.Status, CreatedAt: r.CreatedAt,
			ReviewNote: r.ReviewNote, ActionTaken: r.ActionTaken,
		})
	}
	sort.Slice(mine, func(i, j int) bool {
		return mine[i].CreatedAt.After(mine[j].CreatedAt)
	})
	return mine, nil
}

type ReviewReportInput struct {
	TargetType  models.ReportTargetType `json:"target_type"`
	ReportID    uint                    `json:"report_id"`
	Status      models.ReportStatus     `json:"status"`
	ReviewNote  *string                 `json:"review_note"`
	ActionTaken *string                 `json:"action_taken"`
}

// Review 審核一筆 Pending 檢舉。狀態機只有 Pending → Reviewed/Rejected,
// 更新條件帶上 status = Pending，並發審核只有一個生效
func (s *ReportService) Review(reviewerID uint, in ReviewReportInput) error {
	if in.Status != models.ReportReviewed && in.Status != models.ReportRejected {
		return fmt.Errorf("%w: invalid review status", ErrValidation)
	}
	if in.ReviewNote != nil && len(*in.ReviewNote) > maxReviewNoteLen {
		return fmt.Errorf("%w: review note too long", ErrValidation)
	}
	if in.ActionTaken != nil && !validAction(*in.ActionTaken) {
		return fmt.Errorf("%w: unknown action %q", ErrValidation, *in.ActionTaken)
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":         in.Status,
		"reviewed_by_id": reviewerID,
		"reviewed_at":    now,
		"review_note":    in.ReviewNote,
		"action_taken":   in.ActionTaken,
	}

	var result *gorm.DB
	switch in.TargetType {
	case models.TargetPost:
		var count int64
		if err := s.db.Model(&models.PostReport{}).Where("id = ?", in.ReportID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrTargetNotFound
		}
		result = s.db.Model(&models.PostReport{}).
			Where("id = ? AND status = ?", in.ReportID, models.ReportPending).
			Updates(updates)
	case models.TargetReply:
		var count int64
		if err := s.db.Model(&models.ReplyReport{}).Where("id = ?", in.ReportID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrTargetNotFound
		}
		result = s.db.Model(&models.ReplyReport{}).
			Where("id = ? AND status = ?", in.ReportID, models.ReportPending).
			Updates(updates)
	default:
		return fmt.Errorf("%w: unknown target type %q", ErrValidation, in.TargetType)
	}

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// 已審核過，不能再轉移狀態
		return fmt.Errorf("%w: report is no longer pending", ErrValidation)
	}
	return nil
}

func validAction(action string) bool {
	switch action {
	case models.ActionNone, models.ActionDeletePost, models.ActionDeleteReply,
		models.ActionWarnUser, models.ActionSuspendUser, models.ActionBanUser:
		return true
	}
	return false
}

func postReportView(r *models.PostReport) models.ReportView {
	view := models.ReportView{
		ID:          r.ID,
		TargetType:  models.TargetPost,
		Status:      r.Status,
		Reason:      r.Reason,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		ReviewNote:  r.ReviewNote,
		ActionTaken: r.ActionTaken,
	}
	if r.Reporter != nil {
		view.Reporter = &models.ReportOwner{ID: r.Reporter.ID, Username: r.Reporter.Username}
	}
	if r.Post != nil {
		title := r.Post.Title
		view.Target = models.ReportTarget{
			Type:    models.TargetPost,
			ID:      r.PostID,
			Title:   &title,
			Content: r.Post.Content,
		}
		if r.Post.User != nil {
			view.Target.Owner = &models.ReportOwner{ID: r.Post.User.ID, Username: r.Post.User.Username}
		}
	}
	return view
}

func replyReportView(r *models.ReplyReport) models.ReportView {
	view := models.ReportView{
		ID:          r.ID,
		TargetType:  models.TargetReply,
		Status:      r.Status,
		Reason:      r.Reason,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		ReviewNote:  r.ReviewNote,
		ActionTaken: r.ActionTaken,
	}
	if r.Reporter != nil {
		view.Reporter = &models.ReportOwner{ID: r.Reporter.ID, Username: r.Reporter.Username}
	}
	if r.Reply != nil {
		// Reply 沒有標題
		view.Target = models.ReportTarget{
			Type:    models.TargetReply,
			ID:      r.ReplyID,
			Content: r.Reply.Content,
		}
		if r.Reply.User != nil {
			view.Target.Owner = &models.ReportOwner{ID: r.Reply.User.ID, Username: r.Reply.User.Username}
		}
	}
	return view
}
