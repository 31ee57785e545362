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

func TestNotificationService_Notify(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     int
	}{
		{name: "single user", username: "lee", want: 1},
		{name: "everyone", username: model.NotifyAll, want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			svc := env.notifier()

			n, err := svc.Notify(context.Background(), tt.username, "제목", "내용", "bogus")

			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
			items := env.notificationsFor(t, "lee")
			require.Len(t, items, 1)
			assert.Equal(t, model.NotificationInfo, items[0].Type)
			assert.False(t, items[0].Read)
		})
	}
}

func TestNotificationService_NotifyClub(t *testing.T) {
	env := newTestEnv(t)
	svc := env.notifier()

	n, err := svc.NotifyClub(context.Background(), "코딩", "모임", "오늘 모임", model.NotificationSuccess)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Empty(t, env.notificationsFor(t, outsider.Username))
}

func TestNotificationService_ReadAndDelete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := env.notifier()
	for i := 0; i < 3; i++ {
		_, err := svc.Notify(ctx, "lee", "알림", "내용", model.NotificationWarning)
		require.NoError(t, err)
	}
	items, err := svc.List(ctx, member, false)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.ErrorIs(t, svc.MarkRead(ctx, president, items[0].ID), errors.ErrForbidden)
	require.NoError(t, svc.MarkRead(ctx, member, items[0].ID))

	unread, err := svc.List(ctx, member, true)
	require.NoError(t, err)
	assert.Len(t, unread, 2)

	n, err := svc.MarkAllRead(ctx, member)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, svc.Delete(ctx, member, items[1].ID))
	stats, err := svc.Stats(ctx, member)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 0, stats.Unread)
	assert.Equal(t, 2, stats.RecentWeek)
	assert.Equal(t, map[string]int{model.NotificationWarning: 2}, stats.ByType)
	assert.InDelta(t, 100.0, stats.ReadRate, 0.001)
}

func TestNotificationService_Reminders(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := env.notifier()
	tomorrow := fixedNow.Add(24 * time.Hour)
	_, err := env.tables.Assignments.Insert(ctx, &model.Assignment{
		Title: "파이썬 숙제", Club: "코딩", DueDate: tomorrow, Status: model.StatusActive,
	})
	require.NoError(t, err)
	_, err = env.tables.Assignments.Insert(ctx, &model.Assignment{
		Title: "다음주 숙제", Club: "코딩", DueDate: fixedNow.Add(7 * 24 * time.Hour), Status: model.StatusActive,
	})
	require.NoError(t, err)
	_, err = env.tables.Schedule.Insert(ctx, &model.ScheduleEntry{
		Title: "공연 연습", Club: "댄스", Date: tomorrow, Time: "15:30", Location: "강당",
	})
	require.NoError(t, err)

	_, err = svc.SendDeadlineReminders(ctx, president)
	assert.ErrorIs(t, err, errors.ErrForbidden)

	n, err := svc.SendDeadlineReminders(ctx, teacher)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	items := env.notificationsFor(t, member.Username)
	require.Len(t, items, 1)
	assert.Equal(t, "⏰ 과제 마감 임박: 파이썬 숙제", items[0].Title)

	n, err = svc.SendScheduleReminders(ctx, teacher)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	items = env.notificationsFor(t, outsider.Username)
	require.Len(t, items, 1)
	assert.Contains(t, items[0].Message, "3월 15일")
	assert.Contains(t, items[0].Message, "장소: 강당")
}
