package tests

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"taskman"
)

func TestPanicHandlerReceivesWrappedError(t *testing.T) {
	var mu sync.Mutex
	var caught []error
	m, err := taskman.New(
		taskman.WithWorkerCount(1),
		taskman.WithPanicHandler(func(e error) {
			mu.Lock()
			caught = append(caught, e)
			mu.Unlock()
		}),
	)
	require.NoError(t, err)
	defer m.Close()

	require.True(t, m.Submit(func(any) { panic("boom") }))
	m.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, caught, 1)
	require.ErrorIs(t, caught[0], taskman.ErrTaskPanicked)
	require.Contains(t, caught[0].Error(), "boom")
}

func TestWorkerSurvivesTaskPanic(t *testing.T) {
	m, err := taskman.New(
		taskman.WithWorkerCount(1),
		taskman.WithPanicHandler(func(error) {}),
	)
	require.NoError(t, err)
	defer m.Close()

	var counter atomic.Int64
	require.True(t, m.Submit(func(any) { panic("first") }))
	for i := 0; i < 5; i++ {
		require.True(t, m.Submit(func(any) { counter.Add(1) }))
	}
	m.Wait()

	require.Equal(t, int64(5), counter.Load(), "the worker must keep consuming after a panic")
	require.Equal(t, 1, m.WorkerCount())
}

func TestPanicWithoutHandlerIsSwallowed(t *testing.T) {
	m, err := taskman.New(taskman.WithWorkerCount(2))
	require.NoError(t, err)
	defer m.Close()

	var counter atomic.Int64
	require.True(t, m.Submit(func(any) { panic("ignored") }))
	require.True(t, m.Submit(func(any) { counter.Add(1) }))
	m.Wait()

	require.Equal(t, int64(1), counter.Load())
}

func TestZeroWorkerPanicRecoveredInline(t *testing.T) {
	var caught atomic.Int64
	m, err := taskman.New(
		taskman.WithWorkerCount(0),
		taskman.WithPanicHandler(func(error) { caught.Add(1) }),
	)
	require.NoError(t, err)
	defer m.Close()

	// the panic must not escape to the submitting goroutine
	require.True(t, m.Submit(func(any) { panic("inline") }))
	require.Equal(t, int64(1), caught.Load())
}
