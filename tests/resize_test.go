package tests

import (
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskman"
)

func TestResizeChangesWorkerCount(t *testing.T) {
	m, err := taskman.New(taskman.WithWorkerCount(2))
	require.NoError(t, err)
	defer m.Close()

	m.Resize(5, true)
	require.Equal(t, 5, m.WorkerCount())

	m.Resize(1, true)
	require.Equal(t, 1, m.WorkerCount())

	m.Resize(-1, true)
	require.Equal(t, runtime.NumCPU(), m.WorkerCount())
}

func TestResizeToZeroIsSynchronous(t *testing.T) {
	m, err := taskman.New(taskman.WithWorkerCount(3))
	require.NoError(t, err)
	defer m.Close()

	m.Resize(0, true)
	require.Equal(t, 0, m.WorkerCount())

	ran := false
	require.True(t, m.Submit(func(any) { ran = true }))
	require.True(t, ran, "zero-worker Submit must run the task before returning")
}

func TestResizeWithDrainExecutesQueued(t *testing.T) {
	m, err := taskman.New(taskman.WithWorkerCount(1))
	require.NoError(t, err)
	defer m.Close()

	var counter atomic.Int64
	const n = 50
	for i := 0; i < n; i++ {
		require.True(t, m.Submit(func(any) { counter.Add(1) }))
	}

	m.Resize(4, true)

	require.Equal(t, int64(n), counter.Load(), "drain must run every queued task before joining")
	require.Equal(t, 0, m.QueuedTaskCount())
}

func TestResizeWithoutDrainDiscardsQueued(t *testing.T) {
	m, err := taskman.New(taskman.WithWorkerCount(2))
	require.NoError(t, err)
	defer m.Close()

	// gate the workers so submissions pile up in the queue
	release := make(chan struct{})
	acquired := make(chan struct{}, 2)
	for i := 0; i < 2; i++ {
		require.True(t, m.Submit(func(any) {
			acquired <- struct{}{}
			<-release
		}))
	}
	<-acquired
	<-acquired

	var ran atomic.Int64
	for i := 0; i < 10; i++ {
		require.True(t, m.Submit(func(any) { ran.Add(1) }))
	}

	// release the gated workers only after Resize has cleared the queue
	go func() {
		time.Sleep(20 * time.Millisecond)
		close(release)
	}()
	m.Resize(3, false)

	require.Equal(t, 3, m.WorkerCount())
	require.Equal(t, 0, m.QueuedTaskCount())
	require.Equal(t, int64(0), ran.Load(), "queued tasks must be discarded without drain")
}

func TestResizeSameCountNoop(t *testing.T) {
	m, err := taskman.New(taskman.WithWorkerCount(2))
	require.NoError(t, err)
	defer m.Close()

	var counter atomic.Int64
	require.True(t, m.Submit(func(any) { counter.Add(1) }))
	m.Resize(2, true)
	m.Wait()

	require.Equal(t, 2, m.WorkerCount())
	require.Equal(t, int64(1), counter.Load())
}

func TestTasksSurviveAcrossResizes(t *testing.T) {
	m, err := taskman.New(taskman.WithWorkerCount(1))
	require.NoError(t, err)
	defer m.Close()

	var counter atomic.Int64
	submit := func(k int) {
		for i := 0; i < k; i++ {
			require.True(t, m.Submit(func(any) { counter.Add(1) }))
		}
	}

	submit(20)
	m.Resize(4, true)
	submit(20)
	m.Resize(2, true)
	submit(20)
	m.Wait()

	require.Equal(t, int64(60), counter.Load())
}
