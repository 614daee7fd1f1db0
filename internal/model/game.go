package model

import (
	"time"

	"github.com/google/uuid"
)

// Game Запись журнала об одной игре
type Game struct {
	ID         uuid.UUID
	StartedAt  time.Time
	Remaining  int
	LastNumber int
	FinishedAt *time.Time
}
