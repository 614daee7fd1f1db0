package token

import (
	"errors"
	"fmt"
	"time"

	"bingo_caller/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

func GenerateAccessToken(host *model.Host, secretKey []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := model.HostClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   host.Login,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secretKey)
}

func VerifyToken(tokenStr string, secretKey []byte) (*model.HostClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &model.HostClaims{}, func(token *jwt.Token) (interface{}, error) {
		_, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok {
			return nil, errors.New("unexpected token signing method")
		}

		return secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*model.HostClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
