package account

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cafe-system/internal/models"
)

// Claims carries the session identity inside a signed token.
type Claims struct {
	Login string      `json:"login"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HMAC-signed session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a token manager with the given signing
// secret and token lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns the configured token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Issue signs a token for the session.
func (tm *TokenManager) Issue(sess models.Session) (string, error) {
	now := time.Now()
	claims := Claims{
		Login: sess.Login,
		Role:  sess.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "cafe-system",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the token signature and returns the embedded
// session.
func (tm *TokenManager) Parse(tokenString string) (models.Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return tm.secret, nil
	})
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return models.Session{}, jwt.ErrSignatureInvalid
	}

	role, err := models.ParseRole(string(claims.Role))
	if err != nil {
		return models.Session{}, fmt.Errorf("token carries invalid role: %w", err)
	}

	return models.Session{Login: claims.Login, Role: role}, nil
}
