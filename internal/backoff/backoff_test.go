package backoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLinearDelay(t *testing.T) {
	b := NewLinear(10*time.Microsecond, func(int64) {})

	assert.Equal(t, time.Duration(0), b.Delay(0))
	assert.Equal(t, 10*time.Microsecond, b.Delay(1))
	assert.Equal(t, 20*time.Microsecond, b.Delay(2))
	assert.Equal(t, 50*time.Microsecond, b.Delay(5))
}

func TestLinearWait(t *testing.T) {
	var slept []int64
	b := NewLinear(time.Microsecond, func(ns int64) {
		slept = append(slept, ns)
	})

	b.Wait(0)
	for attempt := 1; attempt <= 3; attempt++ {
		b.Wait(attempt)
	}
	assert.Equal(t, []int64{1000, 2000, 3000}, slept)
}
