package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clubportal/internal/errors"
	"clubportal/internal/model"
)

// ActivityRecorder records user actions. activity.Logger implements it.
type ActivityRecorder interface {
	Log(ctx context.Context, username, activityType, description, target string, err error)
}

type nopRecorder struct{}

func (nopRecorder) Log(context.Context, string, string, string, string, error) {}

func recorderOrNop(r ActivityRecorder) ActivityRecorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}

// Clock returns the current time. Tests replace it.
type Clock func() time.Time

func clockOrNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errors.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func forbidden(action string) error {
	return fmt.Errorf("%w: %s", errors.ErrForbidden, action)
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid("%s is required", field)
	}
	return nil
}

// requireManager checks that actor may manage records of club.
func requireManager(actor model.Principal, club, action string) error {
	if !actor.CanManage(club) {
		return forbidden(action)
	}
	return nil
}

func requireTeacher(actor model.Principal, action string) error {
	if !actor.IsTeacher() {
		return forbidden(action)
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
