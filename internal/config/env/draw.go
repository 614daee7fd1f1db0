package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"bingo_caller/internal/config"
	"bingo_caller/internal/model"

	"gopkg.in/yaml.v3"
)

const (
	defaultAnimationWindow = 3000 * time.Millisecond
	defaultMaxTickDelay    = 500 * time.Millisecond
	defaultMinTickDelay    = 50 * time.Millisecond
)

// Структура файла config.yaml
type drawFile struct {
	Seed      uint64 `yaml:"seed"`
	Animation struct {
		Window   string `yaml:"window"`
		MaxDelay string `yaml:"max_delay"`
		MinDelay string `yaml:"min_delay"`
	} `yaml:"animation"`
	Columns []struct {
		Label string `yaml:"label"`
		From  int    `yaml:"from"`
		To    int    `yaml:"to"`
	} `yaml:"columns"`
}

type drawConfig struct {
	window   time.Duration
	maxDelay time.Duration
	minDelay time.Duration
	seed     uint64
	columns  []model.ColumnBand
}

// NewDrawConfigFromYAML читает настройки розыгрыша, без файла - значения по умолчанию
func NewDrawConfigFromYAML(path string) (config.DrawConfig, error) {
	var file drawFile

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg := &drawConfig{seed: file.Seed}

	if cfg.window, err = durationOr(file.Animation.Window, defaultAnimationWindow); err != nil {
		return nil, fmt.Errorf("animation.window: %w", err)
	}
	if cfg.maxDelay, err = durationOr(file.Animation.MaxDelay, defaultMaxTickDelay); err != nil {
		return nil, fmt.Errorf("animation.max_delay: %w", err)
	}
	if cfg.minDelay, err = durationOr(file.Animation.MinDelay, defaultMinTickDelay); err != nil {
		return nil, fmt.Errorf("animation.min_delay: %w", err)
	}
	if cfg.window <= 0 || cfg.minDelay <= 0 {
		return nil, errors.New("animation window and min_delay must be positive")
	}
	if cfg.minDelay > cfg.maxDelay {
		return nil, fmt.Errorf("animation min_delay %s exceeds max_delay %s", cfg.minDelay, cfg.maxDelay)
	}

	for _, c := range file.Columns {
		if c.Label == "" {
			return nil, fmt.Errorf("column %d..%d has no label", c.From, c.To)
		}
		cfg.columns = append(cfg.columns, model.ColumnBand{
			Label: model.Column(c.Label),
			From:  c.From,
			To:    c.To,
		})
	}
	if len(cfg.columns) == 0 {
		cfg.columns = defaultColumns()
	}

	return cfg, nil
}

func durationOr(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	return time.ParseDuration(raw)
}

func defaultColumns() []model.ColumnBand {
	labels := []model.Column{model.ColumnB, model.ColumnI, model.ColumnN, model.ColumnG, model.ColumnO}
	width := model.PoolSize / len(labels)
	bands := make([]model.ColumnBand, 0, len(labels))
	for i, l := range labels {
		bands = append(bands, model.ColumnBand{Label: l, From: i*width + 1, To: (i + 1) * width})
	}
	return bands
}

func (cfg *drawConfig) AnimationWindow() time.Duration {
	return cfg.window
}

func (cfg *drawConfig) MaxTickDelay() time.Duration {
	return cfg.maxDelay
}

func (cfg *drawConfig) MinTickDelay() time.Duration {
	return cfg.minDelay
}

func (cfg *drawConfig) Seed() uint64 {
	return cfg.seed
}

func (cfg *drawConfig) Columns() []model.ColumnBand {
	out := make([]model.ColumnBand, len(cfg.columns))
	copy(out, cfg.columns)
	return out
}
