package handlers

import (
	"net/http"

	"github.com/leochenhaha/ForumAPI0924/internal/db"
	"github.com/leochenhaha/ForumAPI0924/internal/middleware"
	"github.com/leochenhaha/ForumAPI0924/internal/models"
	"github.com/leochenhaha/ForumAPI0924/internal/services"
	"github.com/leochenhaha/ForumAPI0924/internal/utils"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	votes *services.VoteService
}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{
		votes: services.NewVoteService(db.DB),
	}
}

// Summary 任何人都能看投票統計，登入用戶附帶自己的投票方向
func (h *VoteHandler) Summary(c *gin.Context) {
	postID, ok := utils.StringToUint(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid post id"})
		return
	}

	var count int64
	if err := db.DB.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		RenderServiceError(c, err)
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
		return
	}

	viewerID := middleware.CurrentIdentity(c).AccountID
	summary, err := h.votes.Summarize(postID, viewerID)
	if err != nil {
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type voteRequest struct {
	VoteType models.VoteType `json:"vote_type" binding:"required"`
}

func (h *VoteHandler) Upsert(c *gin.Context) {
	accountID, ok := RequireAccountID(c)
	if !ok {
		return
	}
	postID, ok := utils.StringToUint(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid post id"})
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	summary, err := h.votes.Upsert(postID, accountID, req.VoteType)
	if err != nil {
		RenderServiceError(c, err)
		return
	}

	touchCaller(c)
	c.JSON(http.StatusOK, summary)
}

func (h *VoteHandler) Remove(c *gin.Context) {
	accountID, ok := RequireAccountID(c)
	if !ok {
		return
	}
	postID, ok := utils.StringToUint(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid post id"})
		return
	}

	summary, err := h.votes.Remove(postID, accountID)
	if err != nil {
		RenderServiceError(c, err)
		return
	}

	touchCaller(c)
	c.JSON(http.StatusOK, summary)
}
