package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubportal/internal/errors"
	"clubportal/internal/model"
)

func TestAttendanceService_RecordRoster_Upserts(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewAttendanceService(env.tables, env.users, fixedClock)

	n, err := svc.RecordRoster(ctx, president, "코딩", fixedNow, []AttendanceEntry{
		{Username: "kim", Status: model.AttendancePresent},
		{Username: "lee", Status: model.AttendanceLate, Note: "버스"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = svc.RecordRoster(ctx, president, "코딩", fixedNow.Add(3*time.Hour), []AttendanceEntry{
		{Username: "lee", Status: model.AttendancePresent},
	})
	require.NoError(t, err)

	records, err := env.tables.Attendance.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	byUser := map[string]model.Attendance{}
	for _, r := range records {
		byUser[r.Username] = r
	}
	assert.Equal(t, model.AttendancePresent, byUser["lee"].Status)
	assert.Equal(t, president.Name, byUser["lee"].RecordedBy)
	assert.Equal(t, "2025-03-14", byUser["lee"].Date.Format("2006-01-02"))
}

func TestAttendanceService_RecordRoster_Rejects(t *testing.T) {
	tests := []struct {
		name          string
		actor         model.Principal
		club          string
		entries       []AttendanceEntry
		expectedError error
	}{
		{
			name:          "member",
			actor:         member,
			club:          "코딩",
			entries:       []AttendanceEntry{{Username: "lee", Status: model.AttendancePresent}},
			expectedError: errors.ErrForbidden,
		},
		{
			name:          "officer of another club",
			actor:         president,
			club:          "댄스",
			entries:       []AttendanceEntry{{Username: "park", Status: model.AttendancePresent}},
			expectedError: errors.ErrForbidden,
		},
		{
			name:          "unknown status",
			actor:         teacher,
			club:          "코딩",
			entries:       []AttendanceEntry{{Username: "lee", Status: "present"}},
			expectedError: errors.ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			svc := NewAttendanceService(env.tables, env.users, fixedClock)

			_, err := svc.RecordRoster(context.Background(), tt.actor, tt.club, fixedNow, tt.entries)

			assert.ErrorIs(t, err, tt.expectedError)
		})
	}
}

func TestAttendanceService_CheckIn(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewAttendanceService(env.tables, env.users, fixedClock)

	rec, err := svc.CheckIn(ctx, member, model.AttendanceLate, "")
	require.NoError(t, err)
	assert.Equal(t, "코딩", rec.Club)

	_, err = svc.CheckIn(ctx, member, model.AttendancePresent, "")
	assert.ErrorIs(t, err, errors.ErrAlreadyCheckedIn)

	_, err = svc.CheckIn(ctx, president, model.AttendanceAbsent, "")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = svc.CheckIn(ctx, teacher, model.AttendancePresent, "")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestAttendanceService_Stats(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewAttendanceService(env.tables, env.users, fixedClock)
	days := []struct {
		offset int
		lee    model.AttendanceStatus
	}{
		{0, model.AttendancePresent},
		{-7, model.AttendanceAbsent},
		{-14, model.AttendancePresent},
		{-21, model.AttendanceEarlyLeave},
	}
	for _, d := range days {
		_, err := svc.RecordRoster(ctx, teacher, "코딩", fixedNow.AddDate(0, 0, d.offset), []AttendanceEntry{
			{Username: "lee", Status: d.lee},
			{Username: "kim", Status: model.AttendancePresent},
		})
		require.NoError(t, err)
	}

	stats, err := svc.UserStats(ctx, member, "")
	require.NoError(t, err)
	assert.Equal(t, &AttendanceStats{Username: "lee", Total: 4, Present: 2, Absent: 1, EarlyLeave: 1, Rate: 50}, stats)

	_, err = svc.UserStats(ctx, member, "kim")
	assert.ErrorIs(t, err, errors.ErrForbidden)

	club, err := svc.ClubStats(ctx, president, "코딩")
	require.NoError(t, err)
	require.Len(t, club, 2)
	assert.Equal(t, "kim", club[0].Username)
	assert.InDelta(t, 100.0, club[0].Rate, 0.001)

	list, err := svc.List(ctx, member, "코딩", fixedNow.AddDate(0, 0, -10), time.Time{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].Date.After(list[1].Date))
}
