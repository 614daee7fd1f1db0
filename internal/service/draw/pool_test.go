package draw

import (
	"sort"
	"testing"

	"bingo_caller/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_DrawOnce(t *testing.T) {
	p := NewPool(NewSeededRNG(1))

	n, err := p.DrawOne()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, model.MinNumber)
	assert.LessOrEqual(t, n, model.MaxNumber)
	assert.Equal(t, 74, p.Remaining())
	assert.Equal(t, []int{n}, p.History())
	assert.NotContains(t, p.PeekAvailable(), n)
}

func TestPool_DrainYieldsEveryNumberOnce(t *testing.T) {
	p := NewPool(NewSeededRNG(42))

	seen := make(map[int]bool, model.PoolSize)
	var order []int
	for i := 0; i < model.PoolSize; i++ {
		before := p.Remaining()
		n, err := p.DrawOne()
		require.NoError(t, err)
		require.False(t, seen[n], "number %d drawn twice", n)
		seen[n] = true
		order = append(order, n)
		require.Equal(t, before-1, p.Remaining())
	}

	assert.Equal(t, 0, p.Remaining())
	assert.Empty(t, p.PeekAvailable())
	assert.Equal(t, order, p.History())

	sorted := append([]int(nil), order...)
	sort.Ints(sorted)
	for i, n := range sorted {
		assert.Equal(t, i+1, n)
	}

	_, err := p.DrawOne()
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Len(t, p.History(), model.PoolSize)
}

func TestPool_PeekDoesNotMutate(t *testing.T) {
	p := NewPool(NewSeededRNG(7))
	_, err := p.DrawOne()
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		snapshot := p.PeekAvailable()
		require.Len(t, snapshot, 74)
		// Изменение копии не влияет на барабан
		snapshot[0] = -1
	}
	assert.Equal(t, 74, p.Remaining())
	assert.NotContains(t, p.PeekAvailable(), -1)
}

func TestPool_HistoryIsACopy(t *testing.T) {
	p := NewPool(NewSeededRNG(3))
	n, err := p.DrawOne()
	require.NoError(t, err)

	h := p.History()
	h[0] = 0
	assert.Equal(t, []int{n}, p.History())
}

// fixedRNG всегда выбирает один и тот же индекс
type fixedRNG struct{ val int }

func (r fixedRNG) IntN(n int) int { return r.val % n }

func TestPool_UsesInjectedRNG(t *testing.T) {
	p := NewPool(fixedRNG{val: 0})

	first, err := p.DrawOne()
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	// После перестановки на место первого встаёт последний
	second, err := p.DrawOne()
	require.NoError(t, err)
	assert.Equal(t, 75, second)
}

func TestSeededRNG_IsReplicable(t *testing.T) {
	a, b := NewPool(NewSeededRNG(99)), NewPool(NewSeededRNG(99))
	for i := 0; i < 20; i++ {
		x, err := a.DrawOne()
		require.NoError(t, err)
		y, err := b.DrawOne()
		require.NoError(t, err)
		require.Equal(t, x, y)
	}
}
