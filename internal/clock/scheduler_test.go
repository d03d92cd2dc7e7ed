package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVirtualEveryFiresEachInterval(t *testing.T) {
	v := NewVirtual()
	count := 0
	v.Every(time.Second, func() { count++ })

	v.Advance(999 * time.Millisecond)
	assert.Equal(t, 0, count)

	v.Advance(time.Millisecond)
	assert.Equal(t, 1, count)

	v.Advance(3500 * time.Millisecond)
	assert.Equal(t, 4, count)
	assert.Equal(t, 4500*time.Millisecond, v.Now())
}

func TestVirtualAfterFiresOnce(t *testing.T) {
	v := NewVirtual()
	count := 0
	v.After(950*time.Millisecond, func() { count++ })
	require.Equal(t, 1, v.Live())

	v.Advance(2 * time.Second)
	assert.Equal(t, 1, count)
	assert.Equal(t, 0, v.Live())
}

func TestVirtualCancelStopsCallback(t *testing.T) {
	v := NewVirtual()
	fired := false
	tok := v.After(time.Second, func() { fired = true })
	v.Cancel(tok)
	v.Cancel(tok)
	v.Cancel(Token(999))

	v.Advance(5 * time.Second)
	assert.False(t, fired)
	assert.Equal(t, 0, v.Live())
}

func TestVirtualOrderingByDueThenRegistration(t *testing.T) {
	v := NewVirtual()
	var order []string
	v.After(2*time.Second, func() { order = append(order, "late") })
	v.After(time.Second, func() { order = append(order, "first") })
	v.After(time.Second, func() { order = append(order, "second") })

	v.Advance(3 * time.Second)
	assert.Equal(t, []string{"first", "second", "late"}, order)
}

func TestVirtualCancelAllFromCallback(t *testing.T) {
	v := NewVirtual()
	var fired []string
	v.Every(time.Second, func() {
		fired = append(fired, "tick")
		v.CancelAll()
	})
	v.After(time.Second, func() { fired = append(fired, "expiry") })
	v.After(1500*time.Millisecond, func() { fired = append(fired, "later") })

	v.Advance(10 * time.Second)
	assert.Equal(t, []string{"tick"}, fired)
	assert.Equal(t, 0, v.Live())
}

func TestVirtualCallbackSchedulesWithinAdvance(t *testing.T) {
	v := NewVirtual()
	var at []time.Duration
	v.After(time.Second, func() {
		at = append(at, v.Now())
		v.After(500*time.Millisecond, func() { at = append(at, v.Now()) })
	})

	v.Advance(2 * time.Second)
	assert.Equal(t, []time.Duration{time.Second, 1500 * time.Millisecond}, at)
}

func TestVirtualIgnoresNonPositiveInterval(t *testing.T) {
	v := NewVirtual()
	fired := 0
	assert.Equal(t, Token(0), v.Every(0, func() { fired++ }))
	assert.Equal(t, Token(0), v.Every(-time.Second, func() { fired++ }))
	assert.Equal(t, 0, v.Live())

	v.Advance(time.Minute)
	assert.Equal(t, 0, fired)
}
