package models

import (
	"time"
)

type Post struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"size:100;not null" json:"title"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	UserID    *uint      `gorm:"index" json:"user_id"` // nullable: 舊資料可能沒有作者
	User      *User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Replies   []Reply    `gorm:"constraint:OnDelete:CASCADE;" json:"replies,omitempty"`
	Votes     []PostVote `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	// 非數據庫字段，列表查詢時填充
	ReplyCount int `gorm:"-" json:"reply_count"`
}
