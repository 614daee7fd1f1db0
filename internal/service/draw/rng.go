package draw

import (
	"math/rand/v2"
	"sync"
)

// RNG абстракция генератора случайных чисел для детерминированных тестов
type RNG interface {
	// IntN возвращает случайное число в [0, n)
	IntN(n int) int
}

type systemRNG struct{}

func (systemRNG) IntN(n int) int { return rand.IntN(n) }

// SystemRNG Генератор на math/rand/v2 с автоматическим сидом
func SystemRNG() RNG { return systemRNG{} }

// lockedRNG потокобезопасная обёртка над *rand.Rand
type lockedRNG struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededRNG Воспроизводимый генератор (PCG) для повторяемых игр
func NewSeededRNG(seed uint64) RNG {
	return &lockedRNG{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *lockedRNG) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}
