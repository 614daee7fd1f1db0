package repository

import (
	"context"
	"errors"
	"time"

	"bingo_caller/internal/model"

	"github.com/google/uuid"
)

// DrawJournalRepository Журнал розыгрыша, только запись
type DrawJournalRepository interface {
	CreateGame(ctx context.Context, game *model.Game) error
	AppendDraw(ctx context.Context, gameID uuid.UUID, draw model.DrawResult) error
	UpdateGame(ctx context.Context, gameID uuid.UUID, remaining, lastNumber int) error
	FinishGame(ctx context.Context, gameID uuid.UUID, at time.Time) error
}

var ErrNotFound = errors.New("not found")
