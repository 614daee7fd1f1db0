package env

import (
	"os"

	"bingo_caller/internal/config"
	"bingo_caller/pkg/logs"

	"github.com/sirupsen/logrus"
)

const logLevelEnvName = "LOG_LEVEL"

type logConfig struct {
	level logrus.Level
}

func NewLogConfig() (config.LogConfig, error) {
	level, err := logs.ParseLevel(os.Getenv(logLevelEnvName))
	if err != nil {
		return nil, err
	}
	return &logConfig{level: level}, nil
}

func (cfg *logConfig) Level() logrus.Level {
	return cfg.level
}
