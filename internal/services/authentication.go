package services

import (
	"errors"
	"strconv"
	"time"

	"workshop/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authentication issues and validates admin-panel tokens. The mini-app itself
// authenticates with Telegram initData, not JWT.
type Authentication struct {
	secret string
}

func NewAuthentication(secret string) (*Authentication, error) {
	return &Authentication{secret}, nil
}

func (authentication *Authentication) CreateToken(admin *models.Admin) (string, error) {
	claims := AdminClaims{
		Role: string(admin.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(admin.ID, 10),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(authentication.secret))
}

func (authentication *Authentication) Validate(token string) (int64, error) {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		return []byte(authentication.secret), nil
	}

	jwtToken, err := jwt.ParseWithClaims(token, &AdminClaims{}, keyFunc)
	if err != nil {
		return 0, err
	}

	claims, ok := jwtToken.Claims.(*AdminClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}

	return strconv.ParseInt(claims.Subject, 10, 64)
}
