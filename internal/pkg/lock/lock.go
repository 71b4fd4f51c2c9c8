package lock

import (
	"context"
	"court-booking-service/internal/pkg/errors"
	"court-booking-service/internal/pkg/log"
	"fmt"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	goredislib "github.com/redis/go-redis/v9"
)

// UnlockFunc releases a held lock. It is safe to call more than once.
type UnlockFunc func()

// Locker gives mutual exclusion per key. Admission holds one key per
// (court, date) across its check-and-insert.
type Locker interface {
	Lock(ctx context.Context, key string) (UnlockFunc, error)
}

type redisLocker struct {
	rs     *redsync.Redsync
	expiry time.Duration
	log    log.Logger
}

func NewRedisLocker(client *goredislib.Client, expiry time.Duration, log log.Logger) Locker {
	pool := goredis.NewPool(client)
	return &redisLocker{
		rs:     redsync.New(pool),
		expiry: expiry,
		log:    log,
	}
}

func (l *redisLocker) Lock(ctx context.Context, key string) (UnlockFunc, error) {
	mutex := l.rs.NewMutex(key,
		redsync.WithExpiry(l.expiry),
		redsync.WithTries(64),
		redsync.WithRetryDelay(50*time.Millisecond),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, errors.Wrap(err, "error acquire lock")
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// a failed unlock leaves the key to expire on its own
			if _, err := mutex.UnlockContext(context.Background()); err != nil {
				l.log.Warn(ctx, fmt.Sprintf("error release lock %s", key), err)
			}
		})
	}, nil
}

// localLocker serializes callers inside one process. Entries are reference
// counted so the map does not grow with every (court, date) ever seen.
type localLocker struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker() Locker {
	return &localLocker{locks: make(map[string]*entry)}
}

func (l *localLocker) Lock(ctx context.Context, key string) (UnlockFunc, error) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e)
		return nil, errors.Wrap(ctx.Err(), "error acquire lock")
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.release(key, e)
		})
	}, nil
}

func (l *localLocker) release(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}
