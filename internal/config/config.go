package config

import (
	"errors"
	"io/fs"
	"time"

	"bingo_caller/internal/model"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load загружает переменные окружения из .env, отсутствие файла не ошибка
func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

type DrawConfig interface {
	AnimationWindow() time.Duration
	MaxTickDelay() time.Duration
	MinTickDelay() time.Duration
	// Seed 0 - системная случайность
	Seed() uint64
	Columns() []model.ColumnBand
}

type HTTPConfig interface {
	Address() string
}

type LogConfig interface {
	Level() logrus.Level
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
}

type HostConfig interface {
	Login() string
	PasswordHash() string
}

type FeedConfig interface {
	Address() string
	Workers() int
}
