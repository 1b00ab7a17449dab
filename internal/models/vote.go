package models

import (
	"time"
)

// VoteType 推或噓
type VoteType int

const (
	Upvote   VoteType = 1
	Downvote VoteType = -1
)

func (v VoteType) Valid() bool {
	return v == Upvote || v == Downvote
}

// PostVote 每個用戶對每篇文章最多一票，由 (post_id, user_id)
// 的唯一索引保證；重複投票走 upsert 改方向，不插新行。
type PostVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_votes_post_user" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_votes_post_user" json:"user_id"`
	User      *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	VoteType  VoteType  `gorm:"not null" json:"vote_type"`
	CreatedAt time.Time `json:"created_at"`
}

// VoteSummary 單次聚合查詢的結果
type VoteSummary struct {
	PostID          uint      `json:"post_id"`
	Upvotes         int       `json:"upvotes"`
	Downvotes       int       `json:"downvotes"`
	Score           int       `json:"score"`
	CurrentUserVote *VoteType `json:"current_user_vote"`
}
