package env

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"bingo_caller/internal/config"
)

const (
	feedAddrEnvName    = "FEED_ADDR"
	feedWorkersEnvName = "FEED_WORKERS"

	defaultFeedWorkers = 8
)

type feedConfig struct {
	address string
	workers int
}

func NewFeedConfig() (config.FeedConfig, error) {
	address := os.Getenv(feedAddrEnvName)
	if len(address) == 0 {
		return nil, errors.New("feed address not found")
	}

	workers := defaultFeedWorkers
	if v := os.Getenv(feedWorkersEnvName); len(v) != 0 {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid %s %q", feedWorkersEnvName, v)
		}
		workers = n
	}

	return &feedConfig{
		address: address,
		workers: workers,
	}, nil
}

func (cfg *feedConfig) Address() string {
	return cfg.address
}

func (cfg *feedConfig) Workers() int {
	return cfg.workers
}
