package lock

import (
	"context"
	"hash/fnv"
)

const numShards = 64

// Local is an in-process Locker. Keys hash onto a fixed set of shards, so
// unrelated keys may occasionally share one.
type Local struct {
	shards [numShards]chan struct{}
}

func NewLocal() *Local {
	l := &Local{}
	for i := range l.shards {
		l.shards[i] = make(chan struct{}, 1)
	}
	return l
}

func (l *Local) Lock(ctx context.Context, key string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, acquireTimeout(err)
	}
	shard := l.shards[hashKey(key)%numShards]
	select {
	case shard <- struct{}{}:
		return func() { <-shard }, nil
	case <-ctx.Done():
		return nil, acquireTimeout(ctx.Err())
	}
}

func hashKey(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
