package tests

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskman"
)

func TestCancelDiscardsQueuedTasks(t *testing.T) {
	m, err := taskman.New(taskman.WithWorkerCount(2))
	require.NoError(t, err)
	defer m.Close()

	// occupy both workers so subsequent submissions stay queued
	release := make(chan struct{})
	var started sync.WaitGroup
	started.Add(2)
	for i := 0; i < 2; i++ {
		require.True(t, m.Submit(func(any) {
			started.Done()
			<-release
		}))
	}
	started.Wait()

	var ran atomic.Int64
	for i := 0; i < 5; i++ {
		require.True(t, m.Submit(func(any) { ran.Add(1) }))
	}
	require.Equal(t, 5, m.QueuedTaskCount())

	go func() {
		time.Sleep(20 * time.Millisecond)
		close(release)
	}()
	m.Cancel()

	require.Equal(t, 0, m.QueuedTaskCount())
	require.Equal(t, int64(0), ran.Load(), "discarded tasks must never run")
}

func TestCancelWaitsForInFlightTasks(t *testing.T) {
	m, err := taskman.New(taskman.WithWorkerCount(1))
	require.NoError(t, err)
	defer m.Close()

	var finished atomic.Bool
	started := make(chan struct{})
	require.True(t, m.Submit(func(any) {
		close(started)
		time.Sleep(30 * time.Millisecond)
		finished.Store(true)
	}))
	<-started

	m.Cancel()
	require.True(t, finished.Load(), "Cancel must wait for the in-flight task")
}

func TestPoolUsableAfterCancel(t *testing.T) {
	m, err := taskman.New(taskman.WithWorkerCount(2))
	require.NoError(t, err)
	defer m.Close()

	m.Cancel()

	var counter atomic.Int64
	for i := 0; i < 10; i++ {
		require.True(t, m.Submit(func(any) { counter.Add(1) }))
	}
	m.Wait()
	require.Equal(t, int64(10), counter.Load())
}
