package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/license-service/internal/domain"
)

// TokenManager handles issuing and validating JWT tokens for accounts and admins.
type TokenManager struct {
	secret     []byte
	accountTTL time.Duration
	adminTTL   time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, accountTTLHours, adminTTLHours int) *TokenManager {
	if accountTTLHours <= 0 {
		accountTTLHours = 168
	}
	if adminTTLHours <= 0 {
		adminTTLHours = 24
	}
	return &TokenManager{
		secret:     []byte(secret),
		accountTTL: time.Duration(accountTTLHours) * time.Hour,
		adminTTL:   time.Duration(adminTTLHours) * time.Hour,
	}
}

// Claims describes JWT payload.
type Claims struct {
	SubjectID string             `json:"sub"`
	Subject   domain.SubjectType `json:"subject"`
	jwt.RegisteredClaims
}

// GenerateToken builds and signs a JWT for the subject.
func (tm *TokenManager) GenerateToken(subjectID string, subject domain.SubjectType) (string, time.Time, error) {
	ttl := tm.accountTTL
	if subject == domain.SubjectTypeAdmin {
		ttl = tm.adminTTL
	}
	expiresAt := time.Now().Add(ttl)
	claims := &Claims{
		SubjectID: subjectID,
		Subject:   subject,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates and returns claims.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
