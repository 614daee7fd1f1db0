package draw

import (
	"errors"
	"fmt"
	"sort"

	"bingo_caller/internal/model"
)

var ErrNumberOutOfRange = errors.New("number out of range 1..75")

// DefaultBands Классическая разметка B/I/N/G/O по 15 номеров
func DefaultBands() []model.ColumnBand {
	return []model.ColumnBand{
		{Label: model.ColumnB, From: 1, To: 15},
		{Label: model.ColumnI, From: 16, To: 30},
		{Label: model.ColumnN, From: 31, To: 45},
		{Label: model.ColumnG, From: 46, To: 60},
		{Label: model.ColumnO, From: 61, To: 75},
	}
}

// ColumnMap Статическое отображение номер -> колонка
type ColumnMap struct {
	labels [model.PoolSize]model.Column
}

// NewColumnMap проверяет, что диапазоны непрерывны, не пересекаются и покрывают 1..75
func NewColumnMap(bands []model.ColumnBand) (*ColumnMap, error) {
	if len(bands) == 0 {
		return nil, errors.New("no column bands configured")
	}

	sorted := make([]model.ColumnBand, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].From < sorted[j].From })

	cm := &ColumnMap{}
	next := model.MinNumber
	for _, b := range sorted {
		if b.Label == "" {
			return nil, fmt.Errorf("band %d..%d has empty label", b.From, b.To)
		}
		if b.From > b.To {
			return nil, fmt.Errorf("band %s: from %d > to %d", b.Label, b.From, b.To)
		}
		if b.From != next {
			return nil, fmt.Errorf("band %s starts at %d, expected %d", b.Label, b.From, next)
		}
		if b.To > model.MaxNumber {
			return nil, fmt.Errorf("band %s ends at %d, beyond %d", b.Label, b.To, model.MaxNumber)
		}
		for n := b.From; n <= b.To; n++ {
			cm.labels[n-model.MinNumber] = b.Label
		}
		next = b.To + 1
	}
	if next != model.MaxNumber+1 {
		return nil, fmt.Errorf("bands cover up to %d, expected %d", next-1, model.MaxNumber)
	}

	return cm, nil
}

// MustDefaultColumnMap Разметка по умолчанию
func MustDefaultColumnMap() *ColumnMap {
	cm, err := NewColumnMap(DefaultBands())
	if err != nil {
		panic(err)
	}
	return cm
}

// ColumnOf Буква колонки для номера
func (c *ColumnMap) ColumnOf(n int) (model.Column, error) {
	if n < model.MinNumber || n > model.MaxNumber {
		return "", fmt.Errorf("%w: %d", ErrNumberOutOfRange, n)
	}
	return c.labels[n-model.MinNumber], nil
}
