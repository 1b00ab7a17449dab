package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/leochenhaha/ForumAPI0924/internal/db"
	"github.com/leochenhaha/ForumAPI0924/internal/models"
	"github.com/leochenhaha/ForumAPI0924/internal/services"
	"github.com/leochenhaha/ForumAPI0924/internal/utils"

	"github.com/gin-gonic/gin"
)

const adminMaxPageSize = 100

type AdminHandler struct {
	dashboard *services.DashboardService
	reports   *services.ReportService
}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{
		dashboard: services.NewDashboardService(db.DB),
		reports:   services.NewReportService(db.DB),
	}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	snapshot, err := h.dashboard.Snapshot()
	if err != nil {
		RenderServiceError(c, err)
		return
	}

	touchCaller(c)
	c.JSON(http.StatusOK, gin.H{
		"totals":         snapshot.Totals,
		"activity":       snapshot.Activity,
		"report_reasons": services.ReportReasonPresets,
	})
}

type adminPostRow struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	UserID      *uint     `json:"user_id"`
	Username    *string   `json:"username"`
	CreatedAt   time.Time `json:"created_at"`
	ReportCount int       `json:"report_count"`
	ReplyCount  int       `json:"reply_count"`
	VoteScore   int       `json:"vote_score"`
}

// Posts 後台文章列表：分頁 + 標題/內容搜索 + 作者過濾,
// 順帶每篇的檢舉數、回覆數和投票分
func (h *AdminHandler) Posts(c *gin.Context) {
	page := utils.StringToInt(c.DefaultQuery("page", "1"))
	pageSize := utils.StringToInt(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	} else if pageSize > adminMaxPageSize {
		pageSize = adminMaxPageSize
	}

	query := db.DB.Table("posts").
		Select(`posts.id, posts.title, posts.user_id, users.username, posts.created_at,
			(SELECT COUNT(*) FROM post_reports pr WHERE pr.post_id = posts.id) AS report_count,
			(SELECT COUNT(*) FROM replies r WHERE r.post_id = posts.id) AS reply_count,
			(SELECT COALESCE(SUM(v.vote_type), 0) FROM post_votes v WHERE v.post_id = posts.id) AS vote_score`).
		Joins("LEFT JOIN users ON users.id = posts.user_id")

	if keyword := strings.TrimSpace(c.Query("search")); keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("posts.title LIKE ? OR posts.content LIKE ?", pattern, pattern)
	}
	if v := c.Query("author_id"); v != "" {
		authorID, ok := utils.StringToUint(v)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid author_id"})
			return
		}
		query = query.Where("posts.user_id = ?", authorID)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		RenderServiceError(c, err)
		return
	}

	rows := []adminPostRow{}
	err := query.Order("posts.created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Scan(&rows).Error
	if err != nil {
		RenderServiceError(c, err)
		return
	}

	totalPages := int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	c.JSON(http.StatusOK, gin.H{
		"items": rows,
		"pagination": services.Pagination{
			Page:       page,
			PageSize:   pageSize,
			TotalCount: totalCount,
			TotalPages: totalPages,
		},
	})
}

type adminMemberRow struct {
	ID           uint                 `json:"id"`
	Username     string               `json:"username"`
	Email        string               `json:"email"`
	Role         models.Role          `json:"role"`
	Status       models.AccountStatus `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
	LastLoginAt  *time.Time           `json:"last_login_at"`
	LastActiveAt *time.Time           `json:"last_active_at"`
	PostCount    int                  `json:"post_count"`
	ReportCount  int                  `json:"report_count"`
}

// Members 會員列表，可按狀態和角色過濾；檢舉數是兩張表相加
func (h *AdminHandler) Members(c *gin.Context) {
	query := db.DB.Table("users").
		Select(`users.id, users.username, users.email, users.role, users.status,
			users.created_at, users.last_login_at, users.last_active_at,
			(SELECT COUNT(*) FROM posts p WHERE p.user_id = users.id) AS post_count,
			(SELECT COUNT(*) FROM post_reports pr WHERE pr.reporter_id = users.id) +
			(SELECT COUNT(*) FROM reply_reports rr WHERE rr.reporter_id = users.id) AS report_count`)

	if v := c.Query("status"); v != "" {
		status, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid status"})
			return
		}
		query = query.Where("users.status = ?", status)
	}
	if v := c.Query("role"); v != "" {
		role, ok := models.ParseRole(v)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "unknown role"})
			return
		}
		query = query.Where("users.role = ?", role)
	}

	rows := []adminMemberRow{}
	if err := query.Order("users.created_at DESC").Scan(&rows).Error; err != nil {
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Reports 合併後的檢舉清單，可按狀態和對象類型過濾
func (h *AdminHandler) Reports(c *gin.Context) {
	var status *models.ReportStatus
	if v := c.Query("status"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < int(models.ReportPending) || n > int(models.ReportRejected) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid status"})
			return
		}
		s := models.ReportStatus(n)
		status = &s
	}

	var targetType *models.ReportTargetType
	if v := c.Query("target_type"); v != "" {
		t := models.ReportTargetType(v)
		if !t.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid target_type"})
			return
		}
		targetType = &t
	}

	views, err := h.reports.List(status, targetType)
	if err != nil {
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}
