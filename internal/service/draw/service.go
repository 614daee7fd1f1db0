package draw

import (
	"context"

	"bingo_caller/internal/events"
	"bingo_caller/internal/metrics"
	"bingo_caller/internal/model"
	"bingo_caller/internal/service"

	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

type cycleResult struct {
	result *model.DrawResult
	err    error
}

type serv struct {
	pool      *Pool
	columns   *ColumnMap
	sequencer *Sequencer
	hub       *events.Hub
	metrics   *metrics.Metrics
	logger    *logrus.Logger

	// Итоги завершённых циклов и ожидающие их Await
	state *resultBook
}

// ServiceDeps Зависимости сервиса розыгрыша
type ServiceDeps struct {
	RNG     RNG
	Clock   clock.Clock
	Columns *ColumnMap
	Timing  Timing
	Hub     *events.Hub
	Metrics *metrics.Metrics
	Logger  *logrus.Logger
}

// NewDrawService Создать игру: полный барабан и секвенсор в состоянии Idle
func NewDrawService(deps ServiceDeps) service.DrawService {
	s := &serv{
		pool:    NewPool(deps.RNG),
		columns: deps.Columns,
		hub:     deps.Hub,
		metrics: deps.Metrics,
		logger:  deps.Logger,
		state:   newResultBook(),
	}
	s.sequencer = NewSequencer(SequencerDeps{
		Pool:    s.pool,
		Columns: deps.Columns,
		RNG:     deps.RNG,
		Clock:   deps.Clock,
		Emitter: EmitterFunc(s.emit),
		Timing:  deps.Timing,
		Logger:  deps.Logger,
	})
	return s
}

func (s *serv) RequestDraw(_ context.Context) (model.Outcome, uint64) {
	outcome, cycle := s.sequencer.RequestDraw()
	if s.metrics != nil {
		s.metrics.ObserveRequest(outcome)
	}
	return outcome, cycle
}

func (s *serv) Await(ctx context.Context, cycle uint64) (*model.DrawResult, error) {
	ch := s.state.wait(cycle)
	select {
	case res := <-ch:
		return res.result, res.err
	case <-ctx.Done():
		s.state.forget(cycle, ch)
		return nil, ctx.Err()
	}
}

func (s *serv) Snapshot() model.Snapshot {
	return model.Snapshot{
		Phase:     s.sequencer.Phase(),
		Remaining: s.pool.Remaining(),
		History:   s.pool.History(),
		Last:      s.state.last(),
	}
}

func (s *serv) Remaining() int {
	return s.pool.Remaining()
}

func (s *serv) History() []int {
	return s.pool.History()
}

func (s *serv) ColumnOf(n int) (model.Column, error) {
	return s.columns.ColumnOf(n)
}

func (s *serv) Subscribe(name string, handler events.Handler, kinds ...model.EventKind) func() {
	return s.hub.Subscribe(name, handler, kinds...)
}

// emit фиксирует итог цикла до рассылки, чтобы Await не пропустил его
func (s *serv) emit(ev model.Event) {
	switch ev.Kind {
	case model.DrawCompleted:
		res := ev.Result()
		s.state.finish(ev.Cycle, cycleResult{result: &res})
	case model.AllNumbersDrawn:
		if ev.Cycle != 0 {
			s.state.finish(ev.Cycle, cycleResult{err: ErrExhausted})
		}
	}
	s.hub.Emit(ev)
}
