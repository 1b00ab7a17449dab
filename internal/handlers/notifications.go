package handlers

import (
	"net/http"
	"strconv"

	"github.com/leochenhaha/ForumAPI0924/internal/db"
	"github.com/leochenhaha/ForumAPI0924/internal/services"
	"github.com/leochenhaha/ForumAPI0924/internal/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{
		notifications: services.NewNotificationService(db.DB),
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	accountID, ok := RequireAccountID(c)
	if !ok {
		return
	}

	var isRead *bool
	if v := c.Query("is_read"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid is_read"})
			return
		}
		isRead = &b
	}

	page := utils.StringToInt(c.DefaultQuery("page", "1"))
	pageSize := utils.StringToInt(c.DefaultQuery("page_size", "20"))

	result, err := h.notifications.List(accountID, isRead, c.Query("search"), page, pageSize)
	if err != nil {
		RenderServiceError(c, err)
		return
	}

	touchCaller(c)
	c.JSON(http.StatusOK, result)
}

// Unread 等價於 List?is_read=false
func (h *NotificationHandler) Unread(c *gin.Context) {
	accountID, ok := RequireAccountID(c)
	if !ok {
		return
	}

	unread := false
	page := utils.StringToInt(c.DefaultQuery("page", "1"))
	pageSize := utils.StringToInt(c.DefaultQuery("page_size", "20"))

	result, err := h.notifications.List(accountID, &unread, c.Query("search"), page, pageSize)
	if err != nil {
		RenderServiceError(c, err)
		return
	}

	touchCaller(c)
	c.JSON(http.StatusOK, result)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	accountID, ok := RequireAccountID(c)
	if !ok {
		return
	}

	count, err := h.notifications.UnreadCount(accountID)
	if err != nil {
		RenderServiceError(c, err)
		return
	}

	touchCaller(c)
	c.JSON(http.StatusOK, gin.H{"count": count})
}

type markReadRequest struct {
	NotificationIDs []uint `json:"notification_ids"`
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	accountID, ok := RequireAccountID(c)
	if !ok {
		return
	}

	// body 可以整個省略，表示全部標為已讀
	var req markReadRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
	}

	updated, err := h.notifications.MarkRead(accountID, req.NotificationIDs)
	if err != nil {
		RenderServiceError(c, err)
		return
	}

	touchCaller(c)
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	accountID, ok := RequireAccountID(c)
	if !ok {
		return
	}
	id, ok := utils.StringToUint(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid notification id"})
		return
	}

	if err := h.notifications.Delete(accountID, id); err != nil {
		RenderServiceError(c, err)
		return
	}

	touchCaller(c)
	c.Status(http.StatusNoContent)
}
