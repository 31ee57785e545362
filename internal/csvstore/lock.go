package csvstore

import (
	"context"
	"sync"
)

// Locker serializes read-modify-write cycles on a table. Lock blocks until
// the table is free or ctx is done; the returned func releases it.
type Locker interface {
	Lock(ctx context.Context, table string) (unlock func(), err error)
}

// LocalLocker serializes writers within one process.
type LocalLocker struct {
	sems sync.Map // table -> chan struct{}
}

// NewLocalLocker creates an in-process table locker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{}
}

// Lock implements Locker.
func (l *LocalLocker) Lock(ctx context.Context, table string) (func(), error) {
	v, _ := l.sems.LoadOrStore(table, make(chan struct{}, 1))
	sem := v.(chan struct{})
	select {
	case sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	var once sync.Once
	return func() {
		once.Do(func() { <-sem })
	}, nil
}
