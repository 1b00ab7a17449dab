package services

import (
	"testing"
	"time"

	"github.com/leochenhaha/ForumAPI0924/internal/config"
	"github.com/leochenhaha/ForumAPI0924/internal/models"
)

func newTestTokenService(issuer string, ttl time.Duration) *TokenService {
	return NewTokenService(&config.Config{
		JWTSecret: "test-secret",
		JWTIssuer: issuer,
		JWTTTL:    ttl,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService("forum-api", 2*time.Hour)
	user := &models.User{Username: "alice", Role: models.RoleModerator}
	user.ID = 42

	tokenString, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue() = %v, want nil", err)
	}

	identity, err := svc.Parse(tokenString)
	if err != nil {
		t.Fatalf("Parse() = %v, want nil", err)
	}
	if identity.AccountID == nil || *identity.AccountID != 42 {
		t.Fatalf("account id = %v, want 42", identity.AccountID)
	}
	if identity.RoleName != "Moderator" {
		t.Fatalf("role name = %q, want Moderator", identity.RoleName)
	}
	role := identity.ResolvedRole()
	if role == nil || *role != models.RoleModerator {
		t.Fatalf("resolved role = %v, want Moderator", role)
	}
}

func TestParseRejectsTamperedToken(t *testing.T) {
	svc := newTestTokenService("forum-api", 2*time.Hour)
	user := &models.User{Username: "alice", Role: models.RoleUser}
	user.ID = 1

	tokenString, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue() = %v, want nil", err)
	}

	// 破壞簽名的最後一個字節
	tampered := tokenString[:len(tokenString)-2] + "xx"
	if _, err := svc.Parse(tampered); err == nil {
		t.Fatal("Parse(tampered) succeeded, want error")
	}
	if _, err := svc.Parse("not-a-token"); err == nil {
		t.Fatal("Parse(garbage) succeeded, want error")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	issuerA := newTestTokenService("forum-api", 2*time.Hour)
	issuerB := newTestTokenService("someone-else", 2*time.Hour)
	user := &models.User{Username: "alice", Role: models.RoleUser}
	user.ID = 1

	tokenString, err := issuerB.Issue(user)
	if err != nil {
		t.Fatalf("Issue() = %v, want nil", err)
	}
	if _, err := issuerA.Parse(tokenString); err == nil {
		t.Fatal("Parse(wrong issuer) succeeded, want error")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	svc := newTestTokenService("forum-api", -time.Minute)
	user := &models.User{Username: "alice", Role: models.RoleUser}
	user.ID = 1

	tokenString, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue() = %v, want nil", err)
	}
	if _, err := svc.Parse(tokenString); err == nil {
		t.Fatal("Parse(expired) succeeded, want error")
	}
}

func TestParseUnknownRoleResolvesToNothing(t *testing.T) {
	svc := newTestTokenService("forum-api", 2*time.Hour)
	user := &models.User{Username: "alice", Role: models.Role(99)}
	user.ID = 7

	tokenString, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue() = %v, want nil", err)
	}
	identity, err := svc.Parse(tokenString)
	if err != nil {
		t.Fatalf("Parse() = %v, want nil", err)
	}
	// 簽名有效但角色名字不認得，解析成無角色而非降級成 Guest
	if role := identity.ResolvedRole(); role != nil {
		t.Fatalf("resolved role = %v, want nil", *role)
	}
}
