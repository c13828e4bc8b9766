package persistence

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tasktracker/internal/repositories/metadata"
)

func TestWriter_FlushWaitsForScheduledWrite(t *testing.T) {
	repo := metadata.NewMemoryRepository()
	var value atomic.Int64

	w := NewWriter(context.Background(), "counter", func(ctx context.Context) error {
		return repo.Set(ctx, "counter", []byte(strconv.FormatInt(value.Load(), 10)))
	}, nil)
	defer w.Close(context.Background())

	value.Store(42)
	w.Schedule()
	require.NoError(t, w.Flush(context.Background()))

	raw, err := repo.Get(context.Background(), "counter")
	require.NoError(t, err)
	assert.Equal(t, "42", string(raw))
}

func TestWriter_ConcurrentSchedulesNeverLoseTheLastUpdate(t *testing.T) {
	repo := metadata.NewMemoryRepository()

	var mu sync.Mutex
	items := []string{}

	w := NewWriter(context.Background(), "items", func(ctx context.Context) error {
		mu.Lock()
		n := len(items)
		mu.Unlock()
		time.Sleep(time.Millisecond)
		return repo.Set(ctx, "items", []byte(strconv.Itoa(n)))
	}, nil)
	defer w.Close(context.Background())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			mu.Lock()
			items = append(items, strconv.Itoa(i))
			mu.Unlock()
			w.Schedule()
		}(i)
	}
	wg.Wait()

	require.NoError(t, w.Flush(context.Background()))
	raw, err := repo.Get(context.Background(), "items")
	require.NoError(t, err)
	assert.Equal(t, "50", string(raw))
}

func TestWriter_CoalescesAndNeverOverlaps(t *testing.T) {
	var inFlight, maxInFlight, calls atomic.Int32
	release := make(chan struct{})

	w := NewWriter(context.Background(), "k", func(ctx context.Context) error {
		n := inFlight.Add(1)
		if n > maxInFlight.Load() {
			maxInFlight.Store(n)
		}
		if calls.Add(1) == 1 {
			<-release
		}
		inFlight.Add(-1)
		return nil
	}, nil)
	defer w.Close(context.Background())

	w.Schedule()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	for i := 0; i < 10; i++ {
		w.Schedule()
	}
	close(release)

	require.NoError(t, w.Flush(context.Background()))
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, int32(1), maxInFlight.Load())
}

func TestWriter_ErrorsAreLoggedNotReturned(t *testing.T) {
	var calls atomic.Int32
	w := NewWriter(context.Background(), "k", func(ctx context.Context) error {
		calls.Add(1)
		return errors.New("unavailable")
	}, nil)

	w.Schedule()
	require.NoError(t, w.Flush(context.Background()))
	require.NoError(t, w.Close(context.Background()))
	assert.Equal(t, int32(1), calls.Load())
}

func TestWriter_CloseWritesPendingAndStops(t *testing.T) {
	var calls atomic.Int32
	w := NewWriter(context.Background(), "k", func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}, nil)

	w.Schedule()
	require.NoError(t, w.Close(context.Background()))
	assert.Equal(t, int32(1), calls.Load())

	w.Schedule()
	require.NoError(t, w.Flush(context.Background()))
	require.NoError(t, w.Close(context.Background()))
	assert.Equal(t, int32(1), calls.Load())
}

func TestWriter_FlushHonorsContext(t *testing.T) {
	block := make(chan struct{})
	w := NewWriter(context.Background(), "k", func(ctx context.Context) error {
		<-block
		return nil
	}, nil)
	defer func() {
		close(block)
		_ = w.Close(context.Background())
	}()

	w.Schedule()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, w.Flush(ctx), context.DeadlineExceeded)
}
