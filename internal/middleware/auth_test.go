package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/leochenhaha/ForumAPI0924/internal/config"
	"github.com/leochenhaha/ForumAPI0924/internal/models"
	"github.com/leochenhaha/ForumAPI0924/internal/services"

	"github.com/gin-gonic/gin"
)

func newGuardedRouter(t *testing.T, required models.Role) (*gin.Engine, *services.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := services.NewTokenService(&config.Config{
		JWTSecret: "test-secret",
		JWTIssuer: "forum-api",
		JWTTTL:    time.Hour,
	})

	r := gin.New()
	r.Use(LoadIdentity(tokens))
	r.GET("/guarded", RequireRole(required), func(c *gin.Context) {
		identity := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"role": identity.RoleName})
	})
	return r, tokens
}

func issueFor(t *testing.T, tokens *services.TokenService, role models.Role) string {
	t.Helper()
	user := &models.User{ID: 5, Username: "tester", Role: role}
	tokenString, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tokenString
}

func TestRequireRoleRejectsAnonymous(t *testing.T) {
	r, _ := newGuardedRouter(t, models.RoleUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireRoleRejectsGarbageToken(t *testing.T) {
	r, _ := newGuardedRouter(t, models.RoleUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	// 壞 token 等同匿名，而不是 403
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireRoleRejectsInsufficientRole(t *testing.T) {
	r, tokens := newGuardedRouter(t, models.RoleModerator)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+issueFor(t, tokens, models.RoleUser))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestRequireRoleAllowsSufficientRole(t *testing.T) {
	r, tokens := newGuardedRouter(t, models.RoleModerator)

	for _, role := range []models.Role{models.RoleModerator, models.RoleAdmin} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", "Bearer "+issueFor(t, tokens, role))
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("role %s: status = %d, want 200", role, w.Code)
		}
	}
}
