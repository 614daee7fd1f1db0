package draw

import "time"

// Timing Параметры анимации "прокрутки"
type Timing struct {
	// Полная длительность анимации
	Window time.Duration
	// Пауза между кандидатами в начале анимации
	MaxDelay time.Duration
	// Нижняя граница паузы
	MinDelay time.Duration
}

// DefaultTiming 3 секунды, замедление с 500мс до 50мс
func DefaultTiming() Timing {
	return Timing{
		Window:   3000 * time.Millisecond,
		MaxDelay: 500 * time.Millisecond,
		MinDelay: 50 * time.Millisecond,
	}
}

// Done анимация закончена
func (t Timing) Done(elapsed time.Duration) bool {
	return elapsed >= t.Window
}

// TickDelay Пауза до следующего кандидата: max(min, max * (1 - progress)^2)
func (t Timing) TickDelay(elapsed time.Duration) time.Duration {
	progress := float64(elapsed) / float64(t.Window)
	if progress < 0 {
		progress = 0
	}
	rest := 1 - progress
	delay := time.Duration(float64(t.MaxDelay) * rest * rest)
	if delay < t.MinDelay {
		return t.MinDelay
	}
	return delay
}
