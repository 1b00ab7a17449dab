package services

import (
	"errors"
	"fmt"

	"github.com/leochenhaha/ForumAPI0924/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VoteService struct {
	db *gorm.DB
}

func NewVoteService(gdb *gorm.DB) *VoteService {
	return &VoteService{db: gdb}
}

// Upsert 投票或改票。(post_id, user_id) 唯一，重複投票
// 原地改方向，靠 ON CONFLICT 一條語句完成，不做先查後插
func (s *VoteService) Upsert(postID, voterID uint, voteType models.VoteType) (*models.VoteSummary, error) {
	if !voteType.Valid() {
		return nil, fmt.Errorf("%w: invalid vote type %d", ErrValidation, voteType)
	}

	var count int64
	if err := s.db.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrTargetNotFound
	}

	vote := models.PostVote{PostID: postID, UserID: voterID, VoteType: voteType}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"vote_type": voteType}),
	}).Create(&vote).Error
	if err != nil {
		return nil, err
	}

	return s.Summarize(postID, &voterID)
}

// Remove 取消投票
func (s *VoteService) Remove(postID, voterID uint) (*models.VoteSummary, error) {
	result := s.db.Where("post_id = ? AND user_id = ?", postID, voterID).
		Delete(&models.PostVote{})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrVoteNotFound
	}
	return s.Summarize(postID, &voterID)
}

// Summarize 即時聚合，不做緩存。score 是方向值的總和,
// 不是 upvotes - downvotes 的推導值
func (s *VoteService) Summarize(postID uint, viewerID *uint) (*models.VoteSummary, error) {
	var agg struct {
		Upvotes   int
		Downvotes int
		Score     int
	}
	err := s.db.Model(&models.PostVote{}).
		Select(`COALESCE(SUM(CASE WHEN vote_type = 1 THEN 1 ELSE 0 END), 0) AS upvotes,
			COALESCE(SUM(CASE WHEN vote_type = -1 THEN 1 ELSE 0 END), 0) AS downvotes,
			COALESCE(SUM(vote_type), 0) AS score`).
		Where("post_id = ?", postID).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}

	summary := &models.VoteSummary{
		PostID:    postID,
		Upvotes:   agg.Upvotes,
		Downvotes: agg.Downvotes,
		Score:     agg.Score,
	}

	if viewerID != nil {
		var vote models.PostVote
		err := s.db.Where("post_id = ? AND user_id = ?", postID, *viewerID).
			Take(&vote).Error
		if err == nil {
			summary.CurrentUserVote = &vote.VoteType
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return summary, nil
}
