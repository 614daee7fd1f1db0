package events

import (
	"sync"

	"bingo_caller/internal/model"

	"github.com/sirupsen/logrus"
)

const defaultQueueSize = 1024

// Handler Обработчик событий подписчика
type Handler func(ev model.Event)

// Hub Реестр подписчиков по типам событий.
// У каждого подписчика своя очередь и своя горутина, порядок событий сохраняется.
type Hub struct {
	listenersMutex sync.RWMutex
	listeners      map[model.EventKind][]*listener
	queueSize      int
	logger         *logrus.Logger
	nextID         uint64
}

type listener struct {
	id      uint64
	name    string
	queue   chan model.Event
	handler Handler
	done    chan struct{}
}

func NewHub(logger *logrus.Logger) *Hub {
	return NewHubWithQueueSize(logger, defaultQueueSize)
}

func NewHubWithQueueSize(logger *logrus.Logger, queueSize int) *Hub {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Hub{
		listeners: map[model.EventKind][]*listener{},
		queueSize: queueSize,
		logger:    logger,
	}
}

// Subscribe Подписать обработчик на события указанных типов (все типы, если не указаны).
// Возвращает функцию отписки, которая дожидается обработки уже принятых событий.
func (hub *Hub) Subscribe(name string, handler Handler, kinds ...model.EventKind) (unsubscribe func()) {
	if len(kinds) == 0 {
		kinds = model.AllEventKinds
	}

	hub.listenersMutex.Lock()
	hub.nextID++
	l := &listener{
		id:      hub.nextID,
		name:    name,
		queue:   make(chan model.Event, hub.queueSize),
		handler: handler,
		done:    make(chan struct{}),
	}
	seen := make(map[model.EventKind]bool, len(kinds))
	for _, k := range kinds {
		if seen[k] {
			continue
		}
		seen[k] = true
		hub.listeners[k] = append(hub.listeners[k], l)
	}
	hub.listenersMutex.Unlock()

	go l.run()
	hub.logger.Debugf("listener %s subscribed to %v", name, kinds)

	var once sync.Once
	return func() {
		once.Do(func() { hub.remove(l) })
	}
}

// Emit Разослать событие подписчикам
func (hub *Hub) Emit(ev model.Event) {
	hub.listenersMutex.RLock()
	defer hub.listenersMutex.RUnlock()

	for _, l := range hub.listeners[ev.Kind] {
		if ev.Kind == model.CandidateShown {
			// Промежуточные кадры можно потерять, финальный номер - нет
			select {
			case l.queue <- ev:
			default:
				hub.logger.Warnf("listener %s is lagging, candidate %d dropped", l.name, ev.Number)
			}
			continue
		}
		l.queue <- ev
	}
}

// Close Отписать всех
func (hub *Hub) Close() {
	hub.listenersMutex.Lock()
	all := map[uint64]*listener{}
	for _, ls := range hub.listeners {
		for _, l := range ls {
			all[l.id] = l
		}
	}
	hub.listeners = map[model.EventKind][]*listener{}
	hub.listenersMutex.Unlock()

	for _, l := range all {
		close(l.queue)
		<-l.done
	}
}

func (hub *Hub) remove(target *listener) {
	hub.listenersMutex.Lock()
	found := false
	for kind, ls := range hub.listeners {
		kept := ls[:0]
		for _, l := range ls {
			if l.id == target.id {
				found = true
				continue
			}
			kept = append(kept, l)
		}
		if len(kept) == 0 {
			delete(hub.listeners, kind)
		} else {
			hub.listeners[kind] = kept
		}
	}
	hub.listenersMutex.Unlock()

	// Уже закрыт через Close
	if !found {
		return
	}
	close(target.queue)
	<-target.done
	hub.logger.Debugf("listener %s unsubscribed", target.name)
}

func (l *listener) run() {
	defer close(l.done)
	for ev := range l.queue {
		l.handler(ev)
	}
}
