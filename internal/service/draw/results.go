package draw

import (
	"sync"

	"bingo_caller/internal/model"
)

// resultBook Итоги циклов по номеру цикла. Циклов не больше, чем номеров в барабане
// (плюс циклы, упёршиеся в пустой барабан), поэтому храним все.
type resultBook struct {
	mtx      sync.Mutex
	done     map[uint64]cycleResult
	waiters  map[uint64][]chan cycleResult
	lastDraw *model.DrawResult
}

func newResultBook() *resultBook {
	return &resultBook{
		done:    map[uint64]cycleResult{},
		waiters: map[uint64][]chan cycleResult{},
	}
}

// finish первый итог цикла окончательный
func (b *resultBook) finish(cycle uint64, res cycleResult) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if _, ok := b.done[cycle]; ok {
		return
	}
	b.done[cycle] = res
	if res.result != nil {
		b.lastDraw = res.result
	}
	for _, ch := range b.waiters[cycle] {
		ch <- res
	}
	delete(b.waiters, cycle)
}

// wait канал получит итог цикла ровно один раз
func (b *resultBook) wait(cycle uint64) chan cycleResult {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	ch := make(chan cycleResult, 1)
	if res, ok := b.done[cycle]; ok {
		ch <- res
		return ch
	}
	b.waiters[cycle] = append(b.waiters[cycle], ch)
	return ch
}

func (b *resultBook) forget(cycle uint64, target chan cycleResult) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	ws := b.waiters[cycle]
	for idx, ch := range ws {
		if ch == target {
			b.waiters[cycle] = append(ws[:idx], ws[idx+1:]...)
			break
		}
	}
	if len(b.waiters[cycle]) == 0 {
		delete(b.waiters, cycle)
	}
}

func (b *resultBook) last() *model.DrawResult {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	if b.lastDraw == nil {
		return nil
	}
	res := *b.lastDraw
	return &res
}
