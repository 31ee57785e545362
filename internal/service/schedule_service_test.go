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

func TestScheduleService_Create(t *testing.T) {
	tests := []struct {
		name          string
		actor         model.Principal
		input         ScheduleInput
		wantDates     []string
		expectedError error
	}{
		{
			name:      "single",
			actor:     president,
			input:     ScheduleInput{Title: "정기 모임", Club: "코딩", Date: fixedNow, Time: "15:30"},
			wantDates: []string{"2025-03-14"},
		},
		{
			name:      "weekly",
			actor:     president,
			input:     ScheduleInput{Title: "정기 모임", Club: "코딩", Date: fixedNow, Recurrence: RecurWeekly, Repeat: 2},
			wantDates: []string{"2025-03-14", "2025-03-21", "2025-03-28"},
		},
		{
			name:      "monthly",
			actor:     teacher,
			input:     ScheduleInput{Title: "발표회", Club: "전체", Date: fixedNow, Recurrence: RecurMonthly, Repeat: 1},
			wantDates: []string{"2025-03-14", "2025-04-14"},
		},
		{
			name:          "bad time",
			actor:         president,
			input:         ScheduleInput{Title: "t", Club: "코딩", Date: fixedNow, Time: "25:00"},
			expectedError: errors.ErrInvalidInput,
		},
		{
			name:          "unknown recurrence",
			actor:         president,
			input:         ScheduleInput{Title: "t", Club: "코딩", Date: fixedNow, Recurrence: "hourly", Repeat: 2},
			expectedError: errors.ErrInvalidInput,
		},
		{
			name:          "member",
			actor:         member,
			input:         ScheduleInput{Title: "t", Club: "코딩", Date: fixedNow},
			expectedError: errors.ErrForbidden,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			svc := NewScheduleService(env.tables, nil)

			entries, err := svc.Create(context.Background(), tt.actor, tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			var dates []string
			for _, e := range entries {
				assert.Positive(t, e.ID)
				dates = append(dates, e.Date.Format("2006-01-02"))
			}
			assert.Equal(t, tt.wantDates, dates)
		})
	}
}

func TestScheduleService_ListAndNotify(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewScheduleService(env.tables, env.notifier())
	_, err := svc.Create(ctx, president, ScheduleInput{Title: "코딩 모임", Club: "코딩", Date: fixedNow, Time: "16:00", Recurrence: RecurDaily, Repeat: 3})
	require.NoError(t, err)
	_, err = svc.Create(ctx, teacher, ScheduleInput{Title: "전체 조회", Club: "전체", Date: fixedNow, Time: "09:00"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, teacher, ScheduleInput{Title: "댄스 연습", Club: "댄스", Date: fixedNow})
	require.NoError(t, err)

	assert.Len(t, env.notificationsFor(t, member.Username), 2)

	entries, err := svc.List(ctx, member, "", fixedNow, fixedNow.AddDate(0, 0, 1))
	require.NoError(t, err)
	var titles []string
	for _, e := range entries {
		titles = append(titles, e.Title)
	}
	assert.Equal(t, []string{"전체 조회", "코딩 모임", "코딩 모임"}, titles)

	_, err = svc.List(ctx, member, "댄스", time.Time{}, time.Time{})
	assert.ErrorIs(t, err, errors.ErrForbidden)
}

func TestScheduleService_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewScheduleService(env.tables, nil)
	entries, err := svc.Create(ctx, president, ScheduleInput{Title: "모임", Club: "코딩", Date: fixedNow})
	require.NoError(t, err)
	id := entries[0].ID

	updated, err := svc.Update(ctx, president, id, ScheduleInput{Title: "장소 변경", Date: fixedNow.AddDate(0, 0, 2), Location: "과학실"})
	require.NoError(t, err)
	assert.Equal(t, "장소 변경", updated.Title)
	assert.Equal(t, "과학실", updated.Location)
	assert.Equal(t, "2025-03-16", updated.Date.Format("2006-01-02"))

	_, err = svc.Update(ctx, president, id, ScheduleInput{Title: "t", Club: "댄스", Date: fixedNow})
	assert.ErrorIs(t, err, errors.ErrForbidden)

	assert.ErrorIs(t, svc.Delete(ctx, member, id), errors.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, president, id))
	_, err = env.tables.Schedule.Get(ctx, id)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}
