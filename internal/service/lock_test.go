package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventLocker_MutualExclusion(t *testing.T) {
	locker := NewEventLocker()

	var inside, maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			unlock, err := locker.Lock(context.Background(), "event-1")
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			n := atomic.AddInt32(&inside, 1)
			for {
				cur := atomic.LoadInt32(&maxInside)
				if n <= cur || atomic.CompareAndSwapInt32(&maxInside, cur, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Equal(t, 0, locker.Len())
}

func TestEventLocker_IndependentEvents(t *testing.T) {
	locker := NewEventLocker()

	unlockA, err := locker.Lock(context.Background(), "event-a")
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	unlockB, err := locker.Lock(ctx, "event-b")
	require.NoError(t, err)
	unlockB()

	assert.Equal(t, 1, locker.Len())
}

func TestEventLocker_ContextCancelled(t *testing.T) {
	locker := NewEventLocker()

	unlock, err := locker.Lock(context.Background(), "event-1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = locker.Lock(ctx, "event-1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	assert.Equal(t, 0, locker.Len())
}

func TestEventLocker_UnlockTwice(t *testing.T) {
	locker := NewEventLocker()

	unlock, err := locker.Lock(context.Background(), "event-1")
	require.NoError(t, err)

	unlock()
	unlock()

	again, err := locker.Lock(context.Background(), "event-1")
	require.NoError(t, err)
	again()

	assert.Equal(t, 0, locker.Len())
}
