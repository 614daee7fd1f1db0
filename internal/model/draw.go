package model

import (
	"fmt"
	"time"
)

const (
	// Наименьший номер в барабане
	MinNumber = 1
	// Наибольший номер в барабане
	MaxNumber = 75
	// Размер барабана
	PoolSize = MaxNumber - MinNumber + 1
)

// Column Буква колонки бинго-билета
type Column string

const (
	ColumnB Column = "B"
	ColumnI Column = "I"
	ColumnN Column = "N"
	ColumnG Column = "G"
	ColumnO Column = "O"
)

// ColumnBand Диапазон номеров [From, To], помеченный буквой колонки
type ColumnBand struct {
	Label Column
	From  int
	To    int
}

// Contains проверяет попадание номера в диапазон
func (b ColumnBand) Contains(n int) bool {
	return n >= b.From && n <= b.To
}

// Phase Фаза цикла розыгрыша
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAnimating
	PhaseCommitting
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAnimating:
		return "animating"
	case PhaseCommitting:
		return "committing"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Outcome Результат запроса на розыгрыш
type Outcome int

const (
	// Цикл запущен
	OutcomeAccepted Outcome = iota
	// Уже идёт другой цикл, запрос отброшен
	OutcomeBusy
	// Все номера разыграны
	OutcomeExhausted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeBusy:
		return "busy"
	case OutcomeExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// DrawResult Зафиксированный номер
type DrawResult struct {
	Cycle     uint64
	Number    int
	Column    Column
	Remaining int
	At        time.Time
}

// Label возвращает подпись вида "B - 12"
func (r DrawResult) Label() string {
	return FormatLabel(r.Column, r.Number)
}

// FormatLabel форматирует номер с буквой колонки
func FormatLabel(c Column, n int) string {
	return fmt.Sprintf("%s - %d", c, n)
}

// Snapshot Состояние игры для отображения
type Snapshot struct {
	Phase     Phase
	Remaining int
	History   []int
	Last      *DrawResult
}
