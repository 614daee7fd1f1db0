package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"bingo_caller/internal/model"
	"bingo_caller/pkg/pass"
	"bingo_caller/pkg/token"
)

var ErrInvalidCredentials = errors.New("invalid login or password")

func (s *serv) Login(_ context.Context, login, password string) (string, error) {
	// Логин сравниваем за постоянное время, пароль проверяет bcrypt
	loginOK := subtle.ConstantTimeCompare([]byte(login), []byte(s.hostConfig.Login())) == 1
	passOK := pass.VerifyPassword(s.hostConfig.PasswordHash(), password)
	if !loginOK || !passOK {
		return "", ErrInvalidCredentials
	}

	return token.GenerateAccessToken(
		&model.Host{Login: login},
		s.jwtConfig.AccessTokenSecretKey(),
		s.jwtConfig.AccessTokenDuration())
}
