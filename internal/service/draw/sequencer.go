package draw

import (
	"errors"
	"sync"
	"time"

	"bingo_caller/internal/model"

	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// Emitter Получатель событий цикла розыгрыша
type Emitter interface {
	Emit(ev model.Event)
}

// EmitterFunc адаптер функции к Emitter
type EmitterFunc func(ev model.Event)

func (f EmitterFunc) Emit(ev model.Event) { f(ev) }

// SequencerDeps Зависимости секвенсора
type SequencerDeps struct {
	Pool    *Pool
	Columns *ColumnMap
	RNG     RNG
	Clock   clock.Clock
	Emitter Emitter
	Timing  Timing
	Logger  *logrus.Logger
}

// Sequencer Управляет циклом розыгрыша: Idle -> Animating -> Committing -> Idle.
// Одновременно выполняется не больше одного цикла, лишние запросы отбрасываются.
type Sequencer struct {
	pool    *Pool
	columns *ColumnMap
	rng     RNG
	clock   clock.Clock
	emitter Emitter
	timing  Timing
	logger  *logrus.Logger

	mtx     sync.Mutex
	drawing bool
	phase   model.Phase
	cycle   uint64
	// Состояние текущей анимации
	startedAt     time.Time
	lastCandidate int
}

func NewSequencer(deps SequencerDeps) *Sequencer {
	return &Sequencer{
		pool:    deps.Pool,
		columns: deps.Columns,
		rng:     deps.RNG,
		clock:   deps.Clock,
		emitter: deps.Emitter,
		timing:  deps.Timing,
		logger:  deps.Logger,
		phase:   model.PhaseIdle,
	}
}

// RequestDraw Запросить розыгрыш одного номера.
// Возвращает сразу, номер приходит событием DrawCompleted.
func (s *Sequencer) RequestDraw() (model.Outcome, uint64) {
	s.mtx.Lock()
	if s.drawing {
		cycle := s.cycle
		s.mtx.Unlock()
		s.logger.Debugf("draw request dropped: cycle %d in flight", cycle)
		return model.OutcomeBusy, cycle
	}

	if s.pool.Remaining() == 0 {
		s.mtx.Unlock()
		s.logger.Info("draw requested but all numbers are drawn")
		s.emit(model.Event{Kind: model.AllNumbersDrawn})
		return model.OutcomeExhausted, 0
	}

	s.drawing = true
	s.phase = model.PhaseAnimating
	s.cycle++
	cycle := s.cycle
	s.startedAt = s.clock.Now()
	s.lastCandidate = 0
	s.mtx.Unlock()

	s.logger.Infof("cycle %d started, %d numbers left", cycle, s.pool.Remaining())
	s.emit(model.Event{Kind: model.DrawStarted, Cycle: cycle})

	// Первый кадр сразу, следующие по таймеру
	s.tick(cycle)
	return model.OutcomeAccepted, cycle
}

// Phase Текущая фаза
func (s *Sequencer) Phase() model.Phase {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.phase
}

// Drawing идёт ли цикл
func (s *Sequencer) Drawing() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.drawing
}

// Cycle Номер последнего запущенного цикла
func (s *Sequencer) Cycle() uint64 {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.cycle
}

// tick один кадр анимации, перепланирует себя до конца окна
func (s *Sequencer) tick(cycle uint64) {
	s.mtx.Lock()
	elapsed := s.clock.Since(s.startedAt)
	if s.timing.Done(elapsed) {
		s.phase = model.PhaseCommitting
		s.mtx.Unlock()
		s.commit(cycle)
		return
	}

	delay := s.timing.TickDelay(elapsed)

	// Кандидат из ещё не вынутых номеров, барабан не меняем
	candidate := 0
	if available := s.pool.PeekAvailable(); len(available) > 0 {
		n := available[s.rng.IntN(len(available))]
		if n != s.lastCandidate {
			s.lastCandidate = n
			candidate = n
		}
	}
	s.mtx.Unlock()

	if candidate != 0 {
		s.emit(model.Event{
			Kind:   model.CandidateShown,
			Cycle:  cycle,
			Number: candidate,
		})
	}

	s.logger.Debugf("cycle %d: elapsed %s, next tick in %s", cycle, elapsed, delay)
	s.schedule(cycle, delay)
}

// schedule следующий кадр ждёт таймер в своей горутине.
// Колбэк AfterFunc у FakeClock вызывается под его блокировкой, а tick сам обращается к часам.
func (s *Sequencer) schedule(cycle uint64, delay time.Duration) {
	timer := s.clock.NewTimer(delay)
	go func() {
		<-timer.C()
		s.tick(cycle)
	}()
}

// commit единственное место, где меняется барабан
func (s *Sequencer) commit(cycle uint64) {
	n, err := s.pool.DrawOne()
	if err != nil {
		if !errors.Is(err, ErrExhausted) {
			panic(err)
		}
		s.logger.Warnf("cycle %d: pool exhausted at commit", cycle)
		s.emit(model.Event{Kind: model.AllNumbersDrawn, Cycle: cycle})
		s.release()
		return
	}

	column, err := s.columns.ColumnOf(n)
	if err != nil {
		panic(err)
	}

	remaining := s.pool.Remaining()
	s.logger.Infof("cycle %d committed %s, %d left", cycle, model.FormatLabel(column, n), remaining)
	s.emit(model.Event{
		Kind:      model.DrawCompleted,
		Cycle:     cycle,
		Number:    n,
		Column:    column,
		Remaining: remaining,
	})
	if remaining == 0 {
		s.emit(model.Event{Kind: model.AllNumbersDrawn, Cycle: cycle})
	}
	s.release()
}

func (s *Sequencer) release() {
	s.mtx.Lock()
	s.drawing = false
	s.phase = model.PhaseIdle
	s.mtx.Unlock()
}

func (s *Sequencer) emit(ev model.Event) {
	ev.At = s.clock.Now()
	if s.emitter != nil {
		s.emitter.Emit(ev)
	}
}
