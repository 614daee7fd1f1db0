package journal_repo

import (
	"context"
	"fmt"
	"time"

	"bingo_caller/internal/model"
	"bingo_caller/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	gamesTable    = "games"
	colID         = "id"
	colStartedAt  = "started_at"
	colRemaining  = "remaining"
	colLastNumber = "last_number"
	colFinishedAt = "finished_at"

	drawsTable   = "draws"
	colGameID    = "game_id"
	colCycle     = "cycle"
	colNumber    = "number"
	colColumn    = "column_label"
	colDrawnAt   = "drawn_at"
	colRemainder = "remaining"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewJournalRepository(dbc *pgxpool.Pool) repository.DrawJournalRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// CreateGame - создаёт запись об игре
func (r *repo) CreateGame(ctx context.Context, game *model.Game) error {
	query := sq.Insert(gamesTable).
		Columns(colID, colStartedAt, colRemaining, colLastNumber).
		Values(game.ID, game.StartedAt, game.Remaining, game.LastNumber).
		PlaceholderFormat(sq.Dollar)

	return r.exec(ctx, query)
}

// AppendDraw - добавляет разыгранный номер
func (r *repo) AppendDraw(ctx context.Context, gameID uuid.UUID, draw model.DrawResult) error {
	query := sq.Insert(drawsTable).
		Columns(colGameID, colCycle, colNumber, colColumn, colRemainder, colDrawnAt).
		Values(gameID, draw.Cycle, draw.Number, string(draw.Column), draw.Remaining, draw.At).
		PlaceholderFormat(sq.Dollar)

	return r.exec(ctx, query)
}

// UpdateGame - остаток и последний номер игры
func (r *repo) UpdateGame(ctx context.Context, gameID uuid.UUID, remaining, lastNumber int) error {
	query := sq.Update(gamesTable).
		Set(colRemaining, remaining).
		Set(colLastNumber, lastNumber).
		Where(sq.Eq{colID: gameID}).
		PlaceholderFormat(sq.Dollar)

	return r.execOne(ctx, query)
}

// FinishGame - отмечает, что барабан пуст
func (r *repo) FinishGame(ctx context.Context, gameID uuid.UUID, at time.Time) error {
	query := sq.Update(gamesTable).
		Set(colFinishedAt, at).
		Where(sq.Eq{colID: gameID}).
		PlaceholderFormat(sq.Dollar)

	return r.execOne(ctx, query)
}

func (r *repo) exec(ctx context.Context, query sq.Sqlizer) error {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	// Внутри trm.Manager.Do запрос уйдёт в транзакцию
	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}

func (r *repo) execOne(ctx context.Context, query sq.Sqlizer) error {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("game not found: %w", repository.ErrNotFound)
	}
	return nil
}
