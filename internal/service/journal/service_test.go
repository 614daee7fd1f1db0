package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"bingo_caller/internal/model"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	games     []*model.Game
	draws     []model.DrawResult
	updates   [][2]int
	finished  []time.Time
	appendErr error
}

func (r *fakeRepo) CreateGame(_ context.Context, game *model.Game) error {
	r.games = append(r.games, game)
	return nil
}

func (r *fakeRepo) AppendDraw(_ context.Context, _ uuid.UUID, draw model.DrawResult) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.draws = append(r.draws, draw)
	return nil
}

func (r *fakeRepo) UpdateGame(_ context.Context, _ uuid.UUID, remaining, lastNumber int) error {
	r.updates = append(r.updates, [2]int{remaining, lastNumber})
	return nil
}

func (r *fakeRepo) FinishGame(_ context.Context, _ uuid.UUID, at time.Time) error {
	r.finished = append(r.finished, at)
	return nil
}

// passthroughManager выполняет fn без транзакции
type passthroughManager struct {
	calls int
}

func (m *passthroughManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

func (m *passthroughManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

func newTestJournal() (*serv, *fakeRepo, *passthroughManager) {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	repo := &fakeRepo{}
	tm := &passthroughManager{}
	return NewJournalService(repo, tm, logger).(*serv), repo, tm
}

func TestJournal_RecordsDrawsInTransaction(t *testing.T) {
	s, repo, tm := newTestJournal()
	require.NoError(t, s.Start(context.Background()))
	require.Len(t, repo.games, 1)
	assert.Equal(t, model.PoolSize, repo.games[0].Remaining)
	assert.Equal(t, repo.games[0].ID, s.gameID)

	s.Handle(model.Event{Kind: model.DrawStarted, Cycle: 1})
	s.Handle(model.Event{Kind: model.CandidateShown, Cycle: 1, Number: 9})
	s.Handle(model.Event{Kind: model.DrawCompleted, Cycle: 1, Number: 17, Column: model.ColumnI, Remaining: 74})

	require.Len(t, repo.draws, 1)
	assert.Equal(t, 17, repo.draws[0].Number)
	assert.Equal(t, [][2]int{{74, 17}}, repo.updates)
	assert.Equal(t, 1, tm.calls)
}

func TestJournal_FinishesOnce(t *testing.T) {
	s, repo, _ := newTestJournal()
	require.NoError(t, s.Start(context.Background()))

	at := time.Date(2026, 1, 1, 13, 0, 0, 0, time.UTC)
	s.Handle(model.Event{Kind: model.AllNumbersDrawn, Cycle: 75, At: at})
	s.Handle(model.Event{Kind: model.AllNumbersDrawn, At: at.Add(time.Minute)})
	s.Handle(model.Event{Kind: model.DrawCompleted, Cycle: 76, Number: 1})

	assert.Equal(t, []time.Time{at}, repo.finished)
	assert.Empty(t, repo.draws)
}

func TestJournal_IgnoresEventsBeforeStart(t *testing.T) {
	s, repo, tm := newTestJournal()

	s.Handle(model.Event{Kind: model.DrawCompleted, Cycle: 1, Number: 3})
	assert.Empty(t, repo.draws)
	assert.Zero(t, tm.calls)
}

func TestJournal_WriteErrorDoesNotPanic(t *testing.T) {
	s, repo, _ := newTestJournal()
	require.NoError(t, s.Start(context.Background()))
	repo.appendErr = errors.New("connection reset")

	require.NotPanics(t, func() {
		s.Handle(model.Event{Kind: model.DrawCompleted, Cycle: 1, Number: 3, Column: model.ColumnB, Remaining: 74})
	})
	assert.Empty(t, repo.updates)
}
