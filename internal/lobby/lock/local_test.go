package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "frontdesk/pkg/domain-errors"
)

func TestLocalMutualExclusion(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Lock(ctx, Key("visitor"))
			if !assert.NoError(t, err) {
				return
			}
			n := inside.Add(1)
			for {
				cur := maxInside.Load()
				if n <= cur || maxInside.CompareAndSwap(cur, n) {
					break
				}
			}
			time.Sleep(100 * time.Microsecond)
			inside.Add(-1)
			release()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside.Load())
}

func TestLocalAcquireHonoursContext(t *testing.T) {
	l := NewLocal()
	release, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "k")

	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
}

func TestLocalReleaseAllowsNextHolder(t *testing.T) {
	l := NewLocal()
	release, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	release()

	release, err = l.Lock(context.Background(), "k")
	require.NoError(t, err)
	release()
}

func TestHashKeyIsFNV1a(t *testing.T) {
	assert.Equal(t, uint32(0x811c9dc5), hashKey(""))
	assert.Equal(t, uint32(0xe40c292c), hashKey("a"))
	assert.Equal(t, hashKey(Key("visitor")), hashKey(Key("visitor")))
}
