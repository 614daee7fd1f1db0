package metrics

import (
	"sync"
	"time"

	"bingo_caller/internal/model"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bingo"

// Metrics Счётчики розыгрыша
type Metrics struct {
	registry *prometheus.Registry

	requests   *prometheus.CounterVec
	candidates prometheus.Counter
	completed  prometheus.Counter
	remaining  prometheus.Gauge
	cycle      prometheus.Histogram

	mtx     sync.Mutex
	started map[uint64]time.Time
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "draw_requests_total",
			Help:      "Draw requests by outcome.",
		}, []string{"outcome"}),
		candidates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_shown_total",
			Help:      "Candidate numbers shown during draw animations.",
		}),
		completed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "draws_completed_total",
			Help:      "Committed draws.",
		}),
		remaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "numbers_remaining",
			Help:      "Numbers left in the pool.",
		}),
		cycle: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "draw_cycle_seconds",
			Help:      "Time from draw start to commit.",
			Buckets:   []float64{1, 2, 2.5, 3, 3.1, 3.25, 3.5, 4, 5},
		}),
		started: map[uint64]time.Time{},
	}
	m.remaining.Set(model.PoolSize)
	m.registry.MustRegister(m.requests, m.candidates, m.completed, m.remaining, m.cycle)
	return m
}

// Registry Реестр для promhttp
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest учитывает результат запроса на розыгрыш
func (m *Metrics) ObserveRequest(o model.Outcome) {
	m.requests.WithLabelValues(o.String()).Inc()
}

// Observe обработчик событий для подписки на Hub
func (m *Metrics) Observe(ev model.Event) {
	switch ev.Kind {
	case model.DrawStarted:
		m.mtx.Lock()
		m.started[ev.Cycle] = ev.At
		m.mtx.Unlock()
	case model.CandidateShown:
		m.candidates.Inc()
	case model.DrawCompleted:
		m.completed.Inc()
		m.remaining.Set(float64(ev.Remaining))
		m.finishCycle(ev)
	case model.AllNumbersDrawn:
		m.remaining.Set(0)
		m.finishCycle(ev)
	}
}

func (m *Metrics) finishCycle(ev model.Event) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	start, ok := m.started[ev.Cycle]
	if !ok {
		return
	}
	delete(m.started, ev.Cycle)
	m.cycle.Observe(ev.At.Sub(start).Seconds())
}

// Requests счётчик запросов с указанным результатом
func (m *Metrics) Requests(o model.Outcome) prometheus.Counter {
	return m.requests.WithLabelValues(o.String())
}
