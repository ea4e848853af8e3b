package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStepClock_StartsAtEpoch(t *testing.T) {
	clock := NewStepClock(time.Millisecond)
	assert.Equal(t, Epoch, clock.Current())
	assert.Equal(t, int64(0), clock.Calls())
}

func TestStepClock_NowAdvancesBySteps(t *testing.T) {
	clock := NewStepClock(2 * time.Millisecond)

	first := clock.Now()
	second := clock.Now()

	assert.Equal(t, Epoch.Add(2*time.Millisecond), first)
	assert.Equal(t, 2*time.Millisecond, second.Sub(first))
	assert.Equal(t, int64(2), clock.Calls())
}

func TestStepClock_Advance(t *testing.T) {
	clock := NewStepClock(time.Millisecond)

	start := clock.Now()
	clock.Advance(5 * time.Millisecond)
	end := clock.Now()

	// 5ms of simulated work plus one step
	assert.Equal(t, 6*time.Millisecond, end.Sub(start))
	assert.Equal(t, int64(2), clock.Calls())
}

func TestStepClock_Reset(t *testing.T) {
	clock := NewStepClock(time.Second)
	clock.Now()
	clock.Now()

	clock.Reset()
	assert.Equal(t, Epoch, clock.Current())
	assert.Equal(t, int64(0), clock.Calls())
	assert.Equal(t, Epoch.Add(time.Second), clock.Now())
}

func TestStepClock_ThreadSafe(t *testing.T) {
	clock := NewStepClock(time.Microsecond)
	const numGoroutines = 50
	const callsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < callsPerGoroutine; j++ {
				clock.Now()
			}
		}()
	}
	wg.Wait()

	total := int64(numGoroutines * callsPerGoroutine)
	assert.Equal(t, total, clock.Calls())
	assert.Equal(t, Epoch.Add(time.Duration(total)*time.Microsecond), clock.Current())
}
