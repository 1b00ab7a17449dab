package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/leochenhaha/ForumAPI0924/internal/db"
	"github.com/leochenhaha/ForumAPI0924/internal/middleware"
	"github.com/leochenhaha/ForumAPI0924/internal/models"
	"github.com/leochenhaha/ForumAPI0924/internal/services"
	"github.com/leochenhaha/ForumAPI0924/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

func (h *PostHandler) List(c *gin.Context) {
	var posts []models.Post
	if err := db.DB.Preload("User").Order("created_at DESC").Find(&posts).Error; err != nil {
		RenderServiceError(c, err)
		return
	}

	// 一次查詢拿每篇的回覆數
	type replyCount struct {
		PostID uint
		Count  int
	}
	var counts []replyCount
	err := db.DB.Model(&models.Reply{}).
		Select("post_id, COUNT(*) AS count").
		Group("post_id").
		Scan(&counts).Error
	if err != nil {
		RenderServiceError(c, err)
		return
	}
	countByPost := make(map[uint]int, len(counts))
	for _, rc := range counts {
		countByPost[rc.PostID] = rc.Count
	}
	for i := range posts {
		posts[i].ReplyCount = countByPost[posts[i].ID]
	}

	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) Get(c *gin.Context) {
	id, ok := utils.StringToUint(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid post id"})
		return
	}

	var post models.Post
	err := db.DB.Preload("User").Preload("Replies.User").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
			return
		}
		RenderServiceError(c, err)
		return
	}
	post.ReplyCount = len(post.Replies)

	c.JSON(http.StatusOK, gin.H{
		"post":         post,
		"content_html": utils.RenderMarkdown(post.Content),
	})
}

type postRequest struct {
	Title   string `json:"title" binding:"required,max=100"`
	Content string `json:"content" binding:"required"`
}

func (h *PostHandler) Create(c *gin.Context) {
	accountID, ok := RequireAccountID(c)
	if !ok {
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	post := models.Post{
		Title:   strings.TrimSpace(req.Title),
		Content: utils.SanitizeText(req.Content),
		UserID:  &accountID,
	}
	if err := db.DB.Create(&post).Error; err != nil {
		RenderServiceError(c, err)
		return
	}

	touchCaller(c)
	c.JSON(http.StatusOK, gin.H{"message": "post created", "id": post.ID, "title": post.Title})
}

func (h *PostHandler) Update(c *gin.Context) {
	accountID, ok := RequireAccountID(c)
	if !ok {
		return
	}
	id, ok := utils.StringToUint(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid post id"})
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
			return
		}
		RenderServiceError(c, err)
		return
	}

	identity := middleware.CurrentIdentity(c)
	role, _ := models.ParseRole(identity.RoleName)
	if !models.CanModify(accountID, post.UserID, role) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}

	err := db.DB.Model(&post).Updates(map[string]interface{}{
		"title":   strings.TrimSpace(req.Title),
		"content": utils.SanitizeText(req.Content),
	}).Error
	if err != nil {
		RenderServiceError(c, err)
		return
	}

	touchCaller(c)
	c.JSON(http.StatusOK, gin.H{"message": "post updated", "id": post.ID})
}

func (h *PostHandler) Delete(c *gin.Context) {
	accountID, ok := RequireAccountID(c)
	if !ok {
		return
	}
	id, ok := utils.StringToUint(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid post id"})
		return
	}

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
			return
		}
		RenderServiceError(c, err)
		return
	}

	identity := middleware.CurrentIdentity(c)
	role, _ := models.ParseRole(identity.RoleName)
	if !models.CanModify(accountID, post.UserID, role) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}

	// 回覆、投票和檢舉由外鍵級聯一起刪
	if err := db.DB.Delete(&post).Error; err != nil {
		RenderServiceError(c, err)
		return
	}

	touchCaller(c)
	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

type replyRequest struct {
	Content string `json:"content" binding:"required,max=500"`
}

func (h *PostHandler) AddReply(c *gin.Context) {
	accountID, ok := RequireAccountID(c)
	if !ok {
		return
	}
	postID, ok := utils.StringToUint(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid post id"})
		return
	}

	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
			return
		}
		RenderServiceError(c, err)
		return
	}

	reply := models.Reply{
		PostID:  post.ID,
		UserID:  &accountID,
		Content: utils.SanitizeText(req.Content),
	}
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reply).Error; err != nil {
			return err
		}
		return services.NewNotificationService(tx).NotifyOnReply(&post, accountID)
	})
	if err != nil {
		RenderServiceError(c, err)
		return
	}

	touchCaller(c)
	c.JSON(http.StatusOK, gin.H{"message": "reply created", "id": reply.ID, "content": reply.Content})
}

func (h *PostHandler) EditReply(c *gin.Context) {
	accountID, ok := RequireAccountID(c)
	if !ok {
		return
	}
	replyID, ok := utils.StringToUint(c.Param("replyId"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid reply id"})
		return
	}

	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var reply models.Reply
	if err := db.DB.First(&reply, replyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
			return
		}
		RenderServiceError(c, err)
		return
	}

	identity := middleware.CurrentIdentity(c)
	role, _ := models.ParseRole(identity.RoleName)
	if !models.CanModify(accountID, reply.UserID, role) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}

	if err := db.DB.Model(&reply).Update("content", utils.SanitizeText(req.Content)).Error; err != nil {
		RenderServiceError(c, err)
		return
	}

	touchCaller(c)
	c.JSON(http.StatusOK, gin.H{"message": "reply updated", "id": reply.ID})
}

func (h *PostHandler) DeleteReply(c *gin.Context) {
	accountID, ok := RequireAccountID(c)
	if !ok {
		return
	}
	replyID, ok := utils.StringToUint(c.Param("replyId"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid reply id"})
		return
	}

	var reply models.Reply
	if err := db.DB.First(&reply, replyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
			return
		}
		RenderServiceError(c, err)
		return
	}

	identity := middleware.CurrentIdentity(c)
	role, _ := models.ParseRole(identity.RoleName)
	if !models.CanModify(accountID, reply.UserID, role) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}

	if err := db.DB.Delete(&reply).Error; err != nil {
		RenderServiceError(c, err)
		return
	}

	touchCaller(c)
	c.JSON(http.StatusOK, gin.H{"message": "reply deleted"})
}

// AllReplies 管理員查看全站留言
func (h *PostHandler) AllReplies(c *gin.Context) {
	var replies []models.Reply
	err := db.DB.Preload("User").Preload("Post").
		Order("created_at DESC").
		Find(&replies).Error
	if err != nil {
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, replies)
}
