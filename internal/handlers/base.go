package handlers

import (
	"errors"
	"net/http"

	"github.com/leochenhaha/ForumAPI0924/internal/middleware"
	"github.com/leochenhaha/ForumAPI0924/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RenderServiceError 服務層錯誤統一映射為 HTTP 狀態碼。
// 未預期的存儲錯誤只記日誌，對外不洩漏細節
func RenderServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrTargetNotFound),
		errors.Is(err, services.ErrVoteNotFound),
		errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	case errors.Is(err, services.ErrDuplicateReport):
		c.JSON(http.StatusConflict, gin.H{"message": "you have already reported this target, please wait for review"})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}

// RequireAccountID 取當前帳號 id，匿名時回 401 並返回 false
func RequireAccountID(c *gin.Context) (uint, bool) {
	identity := middleware.CurrentIdentity(c)
	if identity.AccountID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return 0, false
	}
	return *identity.AccountID, true
}
