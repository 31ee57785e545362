package csvstore

import (
	"context"
	"time"
)

// Operation names a store mutation in activity events.
type Operation string

const (
	OpInsert Operation = "INSERT"
	OpUpdate Operation = "UPDATE"
	OpDelete Operation = "DELETE"
	OpSave   Operation = "SAVE"
	OpLoad   Operation = "LOAD"
)

// Event describes one store operation.
type Event struct {
	Time      time.Time
	Actor     string
	Table     string
	Operation Operation
	RecordID  int64
	Affected  int
	Err       error
}

// Sink receives activity events. Record must not block for long; failures
// inside a sink are its own business and never reach the caller of the store.
type Sink interface {
	Record(ctx context.Context, ev Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, ev Event)

// Record implements Sink.
func (f SinkFunc) Record(ctx context.Context, ev Event) { f(ctx, ev) }

type actorKey struct{}

// WithActor attaches the acting username to ctx for activity events.
func WithActor(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, actorKey{}, username)
}

// ActorFrom returns the acting username, or "system".
func ActorFrom(ctx context.Context) string {
	if v, ok := ctx.Value(actorKey{}).(string); ok && v != "" {
		return v
	}
	return "system"
}
