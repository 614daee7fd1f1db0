package logs

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// formatter добавляет владельца логгера в каждое сообщение
type formatter struct {
	owner string
	lf    log.Formatter
}

// Format реализует log.Formatter
func (f *formatter) Format(e *log.Entry) ([]byte, error) {
	e.Message = fmt.Sprintf("[%s] %s", f.owner, e.Message)
	return f.lf.Format(e)
}

// NewLogger Создать логгер с префиксом владельца
func NewLogger(owner string) *log.Logger {
	logger := log.New()
	logger.SetFormatter(&formatter{
		owner: owner,
		lf: &log.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.StampMilli,
		},
	})
	logger.SetLevel(defaultLevel)
	return logger
}

var defaultLevel = log.InfoLevel

// SetDefaultLevel задаёт уровень для всех логгеров, созданных после вызова
func SetDefaultLevel(level log.Level) {
	defaultLevel = level
}

// ParseLevel разбирает уровень логирования (debug|info|warn|error)
func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DebugLevel, nil
	case "", "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("invalid log level %q", s)
	}
}
