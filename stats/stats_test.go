package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTracker_Update(t *testing.T) {
	started := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	counters := New("boot", started)

	var observed []Counters
	counters.OnChange(func(c Counters) {
		observed = append(observed, c)
	})

	counters.Update(Delta{Forks: 2})
	counters.Update(Delta{Exits: 1, Abandoned: 1, Reaps: 1})
	counters.Update(Delta{Dispatches: 3, Preempts: 2, Idle: 1})

	snapshot := counters.Snapshot()
	assert.Equal(t, "boot", snapshot.BootID)
	assert.Equal(t, started, snapshot.StartedAt)
	assert.Equal(t, 2, snapshot.Forks)
	assert.Equal(t, 1, snapshot.Exits)
	assert.Equal(t, 1, snapshot.Abandoned)
	assert.Equal(t, 1, snapshot.Reaps)
	assert.Equal(t, 3, snapshot.Dispatches)
	assert.Equal(t, 2, snapshot.Preempts)
	assert.Equal(t, 1, snapshot.Idle)

	if assert.Len(t, observed, 3) {
		assert.Equal(t, 2, observed[0].Forks)
		assert.Equal(t, 0, observed[0].Exits)
	}
}

func TestTracker_Nil(t *testing.T) {
	var tracker *Tracker
	tracker.Update(Delta{Forks: 1})
	tracker.OnChange(func(Counters) {})
	assert.Equal(t, Counters{}, tracker.Snapshot())
}

func TestTracker_Concurrent(t *testing.T) {
	counters := New("boot", time.Now())
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			counters.Update(Delta{Dispatches: 1})
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, counters.Snapshot().Dispatches)
}
