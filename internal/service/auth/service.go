package auth

import (
	"bingo_caller/internal/config"
	"bingo_caller/internal/service"
)

type serv struct {
	hostConfig config.HostConfig
	jwtConfig  config.JWTConfig
}

// NewAuthService Авторизация ведущего игры
func NewAuthService(hostConfig config.HostConfig, jwtConfig config.JWTConfig) service.AuthService {
	return &serv{
		hostConfig: hostConfig,
		jwtConfig:  jwtConfig,
	}
}
