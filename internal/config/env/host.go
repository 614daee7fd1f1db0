package env

import (
	"errors"
	"os"

	"bingo_caller/internal/config"
)

const (
	hostLoginEnvName        = "HOST_LOGIN"
	hostPasswordHashEnvName = "HOST_PASSWORD_HASH"
)

type hostConfig struct {
	login        string
	passwordHash string
}

func NewHostConfig() (config.HostConfig, error) {
	login := os.Getenv(hostLoginEnvName)
	if len(login) == 0 {
		return nil, errors.New("host login not found")
	}

	hash := os.Getenv(hostPasswordHashEnvName)
	if len(hash) == 0 {
		return nil, errors.New("host password hash not found")
	}

	return &hostConfig{
		login:        login,
		passwordHash: hash,
	}, nil
}

func (cfg *hostConfig) Login() string {
	return cfg.login
}

func (cfg *hostConfig) PasswordHash() string {
	return cfg.passwordHash
}
