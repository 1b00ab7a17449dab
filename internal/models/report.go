package models

import (
	"time"
)

// ReportStatus 檢舉狀態機：Pending → Reviewed / Rejected，不可逆轉
type ReportStatus int

const (
	ReportPending  ReportStatus = 0
	ReportReviewed ReportStatus = 1
	ReportRejected ReportStatus = 2
)

// ReportTargetType 檢舉對象類型
type ReportTargetType string

const (
	TargetPost  ReportTargetType = "post"
	TargetReply ReportTargetType = "reply"
)

func (t ReportTargetType) Valid() bool {
	return t == TargetPost || t == TargetReply
}

// 審核處置動作
const (
	ActionNone        = "none"
	ActionDeletePost  = "delete_post"
	ActionDeleteReply = "delete_reply"
	ActionWarnUser    = "warn_user"
	ActionSuspendUser = "suspend_user"
	ActionBanUser     = "ban_user"
)

type PostReport struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	PostID       uint         `gorm:"not null;index" json:"post_id"`
	Post         *Post        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ReporterID   uint         `gorm:"not null;index" json:"reporter_id"`
	Reporter     *User        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Reason       string       `gorm:"size:100;not null" json:"reason"`
	Description  *string      `gorm:"size:1000" json:"description"`
	Status       ReportStatus `gorm:"not null;default:0" json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	ReviewedByID *uint        `json:"reviewed_by_id"`
	ReviewedAt   *time.Time   `json:"reviewed_at"`
	ReviewNote   *string      `gorm:"size:500" json:"review_note"`
	ActionTaken  *string      `gorm:"size:100" json:"action_taken"`
}

type ReplyReport struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	ReplyID      uint         `gorm:"not null;index" json:"reply_id"`
	Reply        *Reply       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ReporterID   uint         `gorm:"not null;index" json:"reporter_id"`
	Reporter     *User        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Reason       string       `gorm:"size:100;not null" json:"reason"`
	Description  *string      `gorm:"size:1000" json:"description"`
	Status       ReportStatus `gorm:"not null;default:0" json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	ReviewedByID *uint        `json:"reviewed_by_id"`
	ReviewedAt   *time.Time   `json:"reviewed_at"`
	ReviewNote   *string      `gorm:"size:500" json:"review_note"`
	ActionTaken  *string      `gorm:"size:100" json:"action_taken"`
}

// ReportTarget 合併視圖裡的檢舉對象摘要，Reply 沒有標題
type ReportTarget struct {
	Type    ReportTargetType `json:"type"`
	ID      uint             `json:"id"`
	Title   *string          `json:"title"`
	Content string           `json:"content"`
	Owner   *ReportOwner     `json:"owner"`
}

type ReportOwner struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// ReportView 兩張檢舉表合併後的管理視圖
type ReportView struct {
	ID          uint             `json:"id"`
	TargetType  ReportTargetType `json:"target_type"`
	Status      ReportStatus     `json:"status"`
	Reason      string           `json:"reason"`
	Description *string          `json:"description"`
	CreatedAt   time.Time        `json:"created_at"`
	Reporter    *ReportOwner     `json:"reporter"`
	Target      ReportTarget     `json:"target"`
	ReviewNote  *string          `json:"review_note"`
	ActionTaken *string          `json:"action_taken"`
}
