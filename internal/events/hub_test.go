package events

import (
	"sync"
	"testing"
	"time"

	"bingo_caller/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	return l
}

func collect(t *testing.T, ch <-chan model.Event, n int) []model.Event {
	t.Helper()
	out := make([]model.Event, 0, n)
	for len(out) < n {
		select {
		case ev := <-ch:
			out = append(out, ev)
		case <-time.After(2 * time.Second):
			t.Fatalf("got %d of %d events", len(out), n)
		}
	}
	return out
}

func TestHub_DeliversInOrder(t *testing.T) {
	hub := NewHub(quietLogger())
	defer hub.Close()

	ch := make(chan model.Event, 100)
	hub.Subscribe("all", func(ev model.Event) { ch <- ev })

	hub.Emit(model.Event{Kind: model.DrawStarted, Cycle: 1})
	for n := 1; n <= 20; n++ {
		hub.Emit(model.Event{Kind: model.CandidateShown, Cycle: 1, Number: n})
	}
	hub.Emit(model.Event{Kind: model.DrawCompleted, Cycle: 1, Number: 7})

	got := collect(t, ch, 22)
	assert.Equal(t, model.DrawStarted, got[0].Kind)
	for i := 1; i <= 20; i++ {
		assert.Equal(t, i, got[i].Number)
	}
	assert.Equal(t, model.DrawCompleted, got[21].Kind)
}

func TestHub_FiltersByKind(t *testing.T) {
	hub := NewHub(quietLogger())
	defer hub.Close()

	ch := make(chan model.Event, 10)
	hub.Subscribe("completed", func(ev model.Event) { ch <- ev }, model.DrawCompleted)

	hub.Emit(model.Event{Kind: model.DrawStarted})
	hub.Emit(model.Event{Kind: model.CandidateShown, Number: 3})
	hub.Emit(model.Event{Kind: model.DrawCompleted, Number: 5})

	got := collect(t, ch, 1)
	assert.Equal(t, 5, got[0].Number)
	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %v", ev.Kind)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_Unsubscribe(t *testing.T) {
	hub := NewHub(quietLogger())
	defer hub.Close()

	var mtx sync.Mutex
	count := 0
	unsubscribe := hub.Subscribe("counter", func(model.Event) {
		mtx.Lock()
		count++
		mtx.Unlock()
	})

	hub.Emit(model.Event{Kind: model.DrawStarted})
	unsubscribe()
	// Повторная отписка безопасна
	unsubscribe()
	hub.Emit(model.Event{Kind: model.DrawStarted})

	mtx.Lock()
	defer mtx.Unlock()
	assert.Equal(t, 1, count)
}

func TestHub_RepeatedKindsDeliverOnceAndUnsubscribeCleanly(t *testing.T) {
	hub := NewHub(quietLogger())
	defer hub.Close()

	ch := make(chan model.Event, 10)
	unsubscribe := hub.Subscribe("dup", func(ev model.Event) { ch <- ev }, model.DrawCompleted, model.DrawCompleted)

	hub.Emit(model.Event{Kind: model.DrawCompleted, Number: 12})
	got := collect(t, ch, 1)
	assert.Equal(t, 12, got[0].Number)

	unsubscribe()
	assert.Empty(t, ch)
	require.NotPanics(t, func() { hub.Emit(model.Event{Kind: model.DrawCompleted, Number: 13}) })
	assert.Empty(t, ch)
}

func TestHub_DropsCandidatesForLaggingListener(t *testing.T) {
	hub := NewHubWithQueueSize(quietLogger(), 1)

	busy := make(chan struct{}, 1)
	release := make(chan struct{})
	ch := make(chan model.Event, 10)
	hub.Subscribe("slow", func(ev model.Event) {
		busy <- struct{}{}
		<-release
		ch <- ev
	})

	// Первое событие занимает обработчик, второе - очередь, остальные теряются
	hub.Emit(model.Event{Kind: model.CandidateShown, Number: 1})
	<-busy
	for n := 2; n <= 5; n++ {
		hub.Emit(model.Event{Kind: model.CandidateShown, Number: n})
	}
	close(release)

	got := collect(t, ch, 2)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Number)
	hub.Close()
	assert.Len(t, ch, 0)
}
