package draw

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTiming_TickDelay(t *testing.T) {
	tm := DefaultTiming()

	cases := []struct {
		name    string
		elapsed time.Duration
		want    time.Duration
	}{
		{"start", 0, 500 * time.Millisecond},
		{"quarter", 750 * time.Millisecond, 281250 * time.Microsecond},
		{"half", 1500 * time.Millisecond, 125 * time.Millisecond},
		{"floor reached", 2000 * time.Millisecond, 55555555 * time.Nanosecond},
		{"floor", 2500 * time.Millisecond, 50 * time.Millisecond},
		{"end", 2999 * time.Millisecond, 50 * time.Millisecond},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tm.TickDelay(tc.elapsed)
			assert.InDelta(t, float64(tc.want), float64(got), float64(time.Microsecond))
		})
	}
}

func TestTiming_DelayNeverIncreases(t *testing.T) {
	tm := DefaultTiming()
	prev := tm.TickDelay(0)
	for e := time.Duration(0); e < tm.Window; e += 10 * time.Millisecond {
		d := tm.TickDelay(e)
		assert.LessOrEqual(t, d, prev)
		assert.GreaterOrEqual(t, d, tm.MinDelay)
		prev = d
	}
}

func TestTiming_Done(t *testing.T) {
	tm := DefaultTiming()
	assert.False(t, tm.Done(2999*time.Millisecond))
	assert.True(t, tm.Done(3000*time.Millisecond))
	assert.True(t, tm.Done(3100*time.Millisecond))
}
