package middleware

import (
	"net/http"
	"strings"

	"github.com/leochenhaha/ForumAPI0924/internal/models"
	"github.com/leochenhaha/ForumAPI0924/internal/services"

	"github.com/gin-gonic/gin"
)

const IdentityKey = "identity"

// LoadIdentity 解析 Authorization: Bearer token 並把身份放進 context。
// 沒帶 token 或驗證失敗都當匿名處理，要不要拒絕由 RequireRole 決定
func LoadIdentity(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := models.Identity{}

		header := c.GetHeader("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			if parsed, err := tokens.Parse(strings.TrimSpace(token)); err == nil {
				identity = parsed
			}
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// CurrentIdentity retrieves the resolved identity from context.
func CurrentIdentity(c *gin.Context) models.Identity {
	if v, exists := c.Get(IdentityKey); exists {
		if identity, ok := v.(models.Identity); ok {
			return identity
		}
	}
	return models.Identity{}
}

// RequireRole 最低權限守衛，在 handler 執行前短路:
// 未登入(或 role claim 無法解析) 401，權限不足 403
func RequireRole(required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		switch err := models.AuthorizeMinimum(identity.ResolvedRole(), required); err {
		case nil:
			c.Next()
		case models.ErrUnauthenticated:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthorized",
				"detail":  "please log in before accessing this resource",
			})
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "Forbidden",
				"detail":  "insufficient permission to access this resource",
			})
		}
	}
}
