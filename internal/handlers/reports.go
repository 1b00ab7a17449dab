package handlers

import (
	"net/http"

	"github.com/leochenhaha/ForumAPI0924/internal/db"
	"github.com/leochenhaha/ForumAPI0924/internal/services"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler() *ReportHandler {
	return &ReportHandler{
		reports: services.NewReportService(db.DB),
	}
}

// Reasons 固定理由清單，原樣給前端下拉用
func (h *ReportHandler) Reasons(c *gin.Context) {
	c.JSON(http.StatusOK, services.ReportReasonPresets)
}

func (h *ReportHandler) Mine(c *gin.Context) {
	accountID, ok := RequireAccountID(c)
	if !ok {
		return
	}

	mine, err := h.reports.ListMine(accountID)
	if err != nil {
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mine)
}

func (h *ReportHandler) Create(c *gin.Context) {
	accountID, ok := RequireAccountID(c)
	if !ok {
		return
	}

	var in services.FileReportInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	filed, err := h.reports.File(accountID, in)
	if err != nil {
		RenderServiceError(c, err)
		return
	}

	touchCaller(c)
	c.JSON(http.StatusOK, gin.H{
		"id":      filed.ID,
		"status":  filed.Status,
		"message": "report submitted, a moderator will review it shortly",
	})
}

// Review 版主以上審核檢舉
func (h *ReportHandler) Review(c *gin.Context) {
	reviewerID, ok := RequireAccountID(c)
	if !ok {
		return
	}

	var in services.ReviewReportInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := h.reports.Review(reviewerID, in); err != nil {
		RenderServiceError(c, err)
		return
	}

	touchCaller(c)
	c.JSON(http.StatusOK, gin.H{"message": "report reviewed"})
}
