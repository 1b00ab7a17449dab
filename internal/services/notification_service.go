package services

import (
	"fmt"
	"strings"

	"github.com/leochenhaha/ForumAPI0924/internal/models"

	"gorm.io/gorm"
)

// MaxNotificationPageSize 分頁上限，超出的請求靜默壓回，不報錯
const MaxNotificationPageSize = 50

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(gdb *gorm.DB) *NotificationService {
	return &NotificationService{db: gdb}
}

// NotifyOnReply 有人回覆時通知文章作者。自己回自己不通知,
// 沒有作者的舊文章也不通知
func (s *NotificationService) NotifyOnReply(post *models.Post, replierID uint) error {
	if post.UserID == nil || *post.UserID == replierID {
		return nil
	}
	notification := models.Notification{
		RecipientID: *post.UserID,
		Message:     fmt.Sprintf("Someone replied to your post: %s", post.Title),
		Link:        fmt.Sprintf("/posts/%d", post.ID),
	}
	return s.db.Create(&notification).Error
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

type NotificationPage struct {
	Items      []models.Notification `json:"items"`
	Pagination Pagination            `json:"pagination"`
}

// List 通知列表，最新的在前。page 和 pageSize 超界時修正而非拒絕
func (s *NotificationService) List(recipientID uint, isRead *bool, search string, page, pageSize int) (*NotificationPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	} else if pageSize > MaxNotificationPageSize {
		pageSize = MaxNotificationPageSize
	}

	query := s.db.Model(&models.Notification{}).Where("recipient_id = ?", recipientID)
	if isRead != nil {
		query = query.Where("is_read = ?", *isRead)
	}
	if keyword := strings.TrimSpace(search); keyword != "" {
		query = query.Where("message LIKE ?", "%"+keyword+"%")
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, err
	}

	items := []models.Notification{}
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	totalPages := int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	return &NotificationPage{
		Items: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			TotalCount: totalCount,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *NotificationService) UnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

// MarkRead 標記已讀。給了 id 只處理屬於本人的那些，沒給就全部未讀。
// 返回實際更新的筆數，已讀的再標一次不算數也不報錯
func (s *NotificationService) MarkRead(recipientID uint, ids []uint) (int64, error) {
	query := s.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false)
	if len(ids) > 0 {
		query = query.Where("id IN ?", ids)
	}
	result := query.Update("is_read", true)
	return result.RowsAffected, result.Error
}

// Delete 只能刪自己的通知，別人的等同不存在
func (s *NotificationService) Delete(recipientID, id uint) error {
	result := s.db.Where("id = ? AND recipient_id = ?", id, recipientID).
		Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
