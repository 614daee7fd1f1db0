package draw

import (
	"errors"
	"fmt"
	"sync"

	"bingo_caller/internal/model"
)

// ErrExhausted в барабане не осталось номеров
var ErrExhausted = errors.New("draw pool exhausted")

// Pool Барабан: неразыгранные номера и история разыгранных.
// Изменяется только через DrawOne.
type Pool struct {
	mtx       sync.RWMutex
	rng       RNG
	available []int
	drawn     []int
}

// NewPool Создать полный барабан 1..75
func NewPool(rng RNG) *Pool {
	available := make([]int, 0, model.PoolSize)
	for n := model.MinNumber; n <= model.MaxNumber; n++ {
		available = append(available, n)
	}
	return &Pool{
		rng:       rng,
		available: available,
		drawn:     make([]int, 0, model.PoolSize),
	}
}

// PeekAvailable Копия неразыгранных номеров, барабан не меняется
func (p *Pool) PeekAvailable() []int {
	p.mtx.RLock()
	defer p.mtx.RUnlock()
	out := make([]int, len(p.available))
	copy(out, p.available)
	return out
}

// DrawOne Вынуть случайный номер без возврата
func (p *Pool) DrawOne() (int, error) {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if len(p.available) == 0 {
		return 0, ErrExhausted
	}

	// Равномерный выбор, удаляем перестановкой с последним элементом
	idx := p.rng.IntN(len(p.available))
	n := p.available[idx]
	last := len(p.available) - 1
	p.available[idx] = p.available[last]
	p.available = p.available[:last]
	p.drawn = append(p.drawn, n)

	p.mustBeConsistent()
	return n, nil
}

// Remaining Количество неразыгранных номеров
func (p *Pool) Remaining() int {
	p.mtx.RLock()
	defer p.mtx.RUnlock()
	return len(p.available)
}

// History Разыгранные номера в порядке розыгрыша (последний - в конце)
func (p *Pool) History() []int {
	p.mtx.RLock()
	defer p.mtx.RUnlock()
	out := make([]int, len(p.drawn))
	copy(out, p.drawn)
	return out
}

// mustBeConsistent |available| + |drawn| = 75, вызывать под блокировкой
func (p *Pool) mustBeConsistent() {
	if len(p.available)+len(p.drawn) != model.PoolSize {
		panic(fmt.Sprintf("draw pool corrupted: %d available + %d drawn != %d",
			len(p.available), len(p.drawn), model.PoolSize))
	}
}
