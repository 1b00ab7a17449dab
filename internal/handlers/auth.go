package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/leochenhaha/ForumAPI0924/internal/db"
	"github.com/leochenhaha/ForumAPI0924/internal/middleware"
	"github.com/leochenhaha/ForumAPI0924/internal/models"
	"github.com/leochenhaha/ForumAPI0924/internal/services"
	"github.com/leochenhaha/ForumAPI0924/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	tokens *services.TokenService
}

func NewAuthHandler(tokens *services.TokenService) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,max=20"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	db.DB.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username is already taken"})
		return
	}
	db.DB.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email is already registered"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		RenderServiceError(c, err)
		return
	}

	now := time.Now().UTC()
	user := models.User{
		Username:     username,
		Email:        email,
		Password:     hash,
		Role:         models.RoleUser,
		Status:       models.StatusActive,
		LastLoginAt:  &now,
		LastActiveAt: &now,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		// 唯一索引擋下並發註冊的同名帳號
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "username or email is already taken"})
			return
		}
		RenderServiceError(c, err)
		return
	}

	token, err := h.tokens.Issue(&user)
	if err != nil {
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "welcome " + user.Username,
		"token":   token,
		"user":    user,
	})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user models.User
	err := db.DB.Where("username = ?", strings.TrimSpace(req.Username)).First(&user).Error
	if err != nil || !utils.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "incorrect username or password"})
		return
	}

	if user.Status != models.StatusActive {
		c.JSON(http.StatusLocked, gin.H{"message": "account is not active, please contact support"})
		return
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	user.LastActiveAt = &now
	if err := db.DB.Model(&user).
		Updates(map[string]interface{}{"last_login_at": now, "last_active_at": now}).Error; err != nil {
		RenderServiceError(c, err)
		return
	}

	token, err := h.tokens.Issue(&user)
	if err != nil {
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "welcome " + user.Username,
		"token":   token,
		"user":    user,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	accountID, ok := RequireAccountID(c)
	if !ok {
		return
	}

	var user models.User
	if err := db.DB.First(&user, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
			return
		}
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateProfileRequest struct {
	Username string `json:"username" binding:"required,max=20"`
	Email    string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) UpdateMe(c *gin.Context) {
	accountID, ok := RequireAccountID(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user models.User
	if err := db.DB.First(&user, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
			return
		}
		RenderServiceError(c, err)
		return
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	db.DB.Model(&models.User{}).Where("username = ? AND id <> ?", username, user.ID).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username is already taken"})
		return
	}
	db.DB.Model(&models.User{}).Where("email = ? AND id <> ?", email, user.ID).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email is already registered"})
		return
	}

	now := time.Now().UTC()
	err := db.DB.Model(&user).Updates(map[string]interface{}{
		"username":       username,
		"email":          email,
		"last_active_at": now,
	}).Error
	if err != nil {
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated", "user": user})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	accountID, ok := RequireAccountID(c)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user models.User
	if err := db.DB.First(&user, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
			return
		}
		RenderServiceError(c, err)
		return
	}

	if !utils.CheckPasswordHash(req.CurrentPassword, user.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "current password is incorrect"})
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		RenderServiceError(c, err)
		return
	}
	now := time.Now().UTC()
	err = db.DB.Model(&user).Updates(map[string]interface{}{
		"password":       hash,
		"last_active_at": now,
	}).Error
	if err != nil {
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// ---- Admin 專用 ----

func (h *AuthHandler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := db.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AuthHandler) GetUser(c *gin.Context) {
	id, ok := utils.StringToUint(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
			return
		}
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type adminUpdateUserRequest struct {
	Role   models.Role          `json:"role"`
	Status models.AccountStatus `json:"status"`
}

func (h *AuthHandler) UpdateUser(c *gin.Context) {
	id, ok := utils.StringToUint(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
		return
	}

	var req adminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.Role < models.RoleGuest || req.Role > models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"message": "unknown role"})
		return
	}
	if req.Status < models.StatusActive || req.Status > models.StatusBanned {
		c.JSON(http.StatusBadRequest, gin.H{"message": "unknown status"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
			return
		}
		RenderServiceError(c, err)
		return
	}

	err := db.DB.Model(&user).Updates(map[string]interface{}{
		"role":   req.Role,
		"status": req.Status,
	}).Error
	if err != nil {
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user updated", "user": user})
}

func (h *AuthHandler) DeleteUser(c *gin.Context) {
	id, ok := utils.StringToUint(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
		return
	}

	result := db.DB.Delete(&models.User{}, id)
	if result.Error != nil {
		RenderServiceError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// touchCaller 主流程外盡力更新最後活躍時間
func touchCaller(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity.AccountID != nil {
		go services.Touch(db.DB, *identity.AccountID)
	}
}
