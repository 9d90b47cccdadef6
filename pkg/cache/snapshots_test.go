package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
	"github.com/wildlifewatch/conservation-hub/pkg/sheetsdata"
)

type countingLoader struct {
	calls   atomic.Int32
	err     error
	release chan struct{}
}

func (l *countingLoader) Load(ctx context.Context) (*sheetsdata.Dataset, error) {
	n := l.calls.Add(1)
	if l.release != nil {
		<-l.release
	}
	if l.err != nil {
		return nil, l.err
	}
	return &sheetsdata.Dataset{
		Organizations: []model.Organization{{ID: "org"}},
		LoadedAt:      time.Unix(int64(n), 0),
	}, nil
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestSnapshots(loader Loader) (*Snapshots, *testClock) {
	clock := &testClock{now: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
	s := New(loader, time.Minute, zap.NewNop())
	s.now = clock.Now
	return s, clock
}

func TestGet_CachesUntilTTL(t *testing.T) {
	loader := &countingLoader{}
	s, clock := newTestSnapshots(loader)
	ctx := context.Background()

	first, err := s.Get(ctx)
	require.NoError(t, err)
	second, err := s.Get(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), loader.calls.Load())

	clock.Advance(2 * time.Minute)
	third, err := s.Get(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, int32(2), loader.calls.Load())
}

func TestInvalidate(t *testing.T) {
	loader := &countingLoader{}
	s, _ := newTestSnapshots(loader)
	ctx := context.Background()

	_, err := s.Get(ctx)
	require.NoError(t, err)
	_, ok := s.LoadedAt()
	assert.True(t, ok)

	s.Invalidate()
	_, ok = s.LoadedAt()
	assert.False(t, ok)

	_, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), loader.calls.Load())
}

func TestRefresh_ReplacesCurrent(t *testing.T) {
	loader := &countingLoader{}
	s, _ := newTestSnapshots(loader)
	ctx := context.Background()

	first, err := s.Get(ctx)
	require.NoError(t, err)
	refreshed, err := s.Refresh(ctx)
	require.NoError(t, err)
	current, err := s.Get(ctx)
	require.NoError(t, err)

	assert.NotSame(t, first, refreshed)
	assert.Same(t, refreshed, current)
}

func TestGet_ServesStaleOnFailure(t *testing.T) {
	loader := &countingLoader{}
	s, clock := newTestSnapshots(loader)
	ctx := context.Background()

	first, err := s.Get(ctx)
	require.NoError(t, err)

	loader.err = errors.New("sheet unavailable")
	clock.Advance(2 * time.Minute)

	stale, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Same(t, first, stale)
}

func TestGet_ErrorWithoutCachedData(t *testing.T) {
	s, _ := newTestSnapshots(&countingLoader{err: errors.New("boom")})

	_, err := s.Get(context.Background())

	assert.ErrorContains(t, err, "failed to load dataset")
}

func TestGet_ConcurrentMissesShareOneLoad(t *testing.T) {
	loader := &countingLoader{release: make(chan struct{})}
	s, _ := newTestSnapshots(loader)

	var wg sync.WaitGroup
	results := make([]*sheetsdata.Dataset, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			dataset, err := s.Get(context.Background())
			assert.NoError(t, err)
			results[i] = dataset
		}(i)
	}

	// Let the goroutines pile up on the in-flight load
	time.Sleep(50 * time.Millisecond)
	close(loader.release)
	wg.Wait()

	assert.Equal(t, int32(1), loader.calls.Load())
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}

func TestInvalidate_DuringLoadDoesNotRepopulate(t *testing.T) {
	loader := &countingLoader{release: make(chan struct{})}
	s, _ := newTestSnapshots(loader)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.Get(context.Background())
	}()

	time.Sleep(20 * time.Millisecond)
	s.Invalidate()
	close(loader.release)
	<-done

	_, ok := s.LoadedAt()
	assert.False(t, ok)
}
