package journal

import (
	"context"
	"sync"
	"time"

	"bingo_caller/internal/model"
	"bingo_caller/internal/repository"
	"bingo_caller/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const writeTimeout = 5 * time.Second

type serv struct {
	repo      repository.DrawJournalRepository
	txManager trm.Manager
	logger    *logrus.Logger
	now       func() time.Time

	mtx      sync.Mutex
	gameID   uuid.UUID
	started  bool
	finished bool
}

// NewJournalService Журнал одной игры в Postgres
func NewJournalService(
	repo repository.DrawJournalRepository,
	txManager trm.Manager,
	logger *logrus.Logger,
) service.JournalService {
	return &serv{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
		now:       time.Now,
	}
}

// Start создаёт запись об игре с полным барабаном
func (s *serv) Start(ctx context.Context) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	game := &model.Game{
		ID:        uuid.New(),
		StartedAt: s.now(),
		Remaining: model.PoolSize,
	}
	if err := s.repo.CreateGame(ctx, game); err != nil {
		return err
	}

	s.gameID = game.ID
	s.started = true
	s.logger.Infof("journal: game %s started", game.ID)
	return nil
}

// Handle Записать событие. Ошибки только логируются: журнал не должен останавливать розыгрыш
func (s *serv) Handle(ev model.Event) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if !s.started || s.finished {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	switch ev.Kind {
	case model.DrawCompleted:
		draw := ev.Result()
		err := s.txManager.Do(ctx, func(txCtx context.Context) error {
			if err := s.repo.AppendDraw(txCtx, s.gameID, draw); err != nil {
				return err
			}
			return s.repo.UpdateGame(txCtx, s.gameID, draw.Remaining, draw.Number)
		})
		if err != nil {
			s.logger.Errorf("journal: cycle %d (%s): %v", draw.Cycle, draw.Label(), err)
		}
	case model.AllNumbersDrawn:
		if err := s.repo.FinishGame(ctx, s.gameID, ev.At); err != nil {
			s.logger.Errorf("journal: finish game %s: %v", s.gameID, err)
			return
		}
		s.finished = true
		s.logger.Infof("journal: game %s finished", s.gameID)
	}
}
