package auth

import (
	"errors"

	"bingo_caller/internal/model"
	"bingo_caller/pkg/token"
)

func (s *serv) Verify(accessToken string) (*model.Host, error) {
	claims, err := token.VerifyToken(accessToken, s.jwtConfig.AccessTokenSecretKey())
	if err != nil {
		return nil, err
	}

	if claims.Subject != s.hostConfig.Login() {
		return nil, errors.New("token issued for unknown host")
	}

	return &model.Host{Login: claims.Subject}, nil
}
