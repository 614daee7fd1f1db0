package model

import (
	"fmt"
	"time"
)

// EventKind Тип события розыгрыша
type EventKind uint8

const (
	DrawStarted EventKind = iota + 1
	CandidateShown
	DrawCompleted
	AllNumbersDrawn
)

// AllEventKinds Все типы событий в порядке объявления
var AllEventKinds = []EventKind{DrawStarted, CandidateShown, DrawCompleted, AllNumbersDrawn}

func (k EventKind) String() string {
	switch k {
	case DrawStarted:
		return "draw_started"
	case CandidateShown:
		return "candidate_shown"
	case DrawCompleted:
		return "draw_completed"
	case AllNumbersDrawn:
		return "all_numbers_drawn"
	default:
		return fmt.Sprintf("event(%d)", uint8(k))
	}
}

// Event Событие, которое секвенсор отдаёт подписчикам (звук, экран, журнал).
// Number и Column заполнены только для CandidateShown и DrawCompleted,
// Remaining - только для DrawCompleted.
// Cycle равен нулю для AllNumbersDrawn, выпущенного на отклонённый запрос.
type Event struct {
	Kind      EventKind
	Cycle     uint64
	Number    int
	Column    Column
	Remaining int
	At        time.Time
}

// Result превращает DrawCompleted в DrawResult
func (e Event) Result() DrawResult {
	return DrawResult{
		Cycle:     e.Cycle,
		Number:    e.Number,
		Column:    e.Column,
		Remaining: e.Remaining,
		At:        e.At,
	}
}
