package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/leochenhaha/ForumAPI0924/internal/config"
	"github.com/leochenhaha/ForumAPI0924/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService 簽發和驗證身份 token (JWT HS256)
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.JWTIssuer,
		ttl:    cfg.JWTTTL,
	}
}

func (s *TokenService) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":    user.Username,
		"userId": strconv.FormatUint(uint64(user.ID), 10),
		"role":   user.Role.String(),
		"iss":    s.issuer,
		"iat":    jwt.NewNumericDate(now),
		"exp":    jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse 驗證簽名、過期時間和發行者，通過後解析身份。
// 驗證失敗的 token 等同匿名，由守衛決定拒絕與否。
func (s *TokenService) Parse(tokenString string) (models.Identity, error) {
	token, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Identity{}, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Identity{}, fmt.Errorf("parse token: unexpected claims type")
	}
	return models.IdentityFromClaims(claims), nil
}
