package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultSecret = "shega-cafe-dev-secret"

var (
	jwtSecret = []byte(defaultSecret)
	tokenTTL  = 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid or expired token")

// ConfigureJWT replaces the signing secret and token lifetime. An empty
// secret keeps the development default.
func ConfigureJWT(secret string, ttl time.Duration) {
	if secret == "" {
		InfoLogger.Warn("JWT_SECRET not set, using development secret")
		secret = defaultSecret
	}
	jwtSecret = []byte(secret)
	if ttl > 0 {
		tokenTTL = ttl
	}
}

type CustomClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

func GenerateToken(userID uint, role, name string) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		UserID: userID,
		Role:   role,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "ShegaCafe",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		ErrorLogger.WithError(err).Error("signing token")
		return "", err
	}
	return tokenString, nil
}

func ParseToken(tokenString string) (*CustomClaims, error) {
	if IsTokenRevoked(tokenString) {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || claims.UserID == 0 {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
