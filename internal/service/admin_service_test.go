package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clubportal/internal/errors"
	"clubportal/internal/model"
	"clubportal/internal/repository"
)

func TestWarnings(t *testing.T) {
	clubs := []model.Club{{Name: "코딩", MaxMembers: 1}, {Name: "댄스", MaxMembers: 15}}
	users := []model.User{
		{Username: "admin", Role: model.RoleTeacher},
		{Username: "all", Role: model.RoleMember, ClubName: model.ClubAll},
		{Username: "kim", Role: model.RolePresident, ClubName: "코딩"},
		{Username: "lee", Role: model.RoleMember, ClubName: "코딩"},
		{Username: "choi", Role: model.RoleMember},
		{Username: "jung", Role: model.RoleMember, ClubName: "미술"},
	}

	got := warnings(users, clubs)

	require.Len(t, got, 3)
	assert.Equal(t, Warning{Kind: WarnNoClub, Subject: "choi", Message: got[0].Message}, got[0])
	assert.Equal(t, WarnUnknownClub, got[1].Kind)
	assert.Equal(t, "jung", got[1].Subject)
	assert.Equal(t, WarnOverCapacity, got[2].Kind)
	assert.Equal(t, "코딩", got[2].Subject)

	assert.NotNil(t, warnings(nil, nil))
}

func TestAdminService_Dashboard(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	seedActivity(t, env)
	_, err := env.tables.Votes.Insert(ctx, &model.Vote{Title: "v", Club: "코딩", Options: []string{"a", "b"},
		Status: model.StatusActive, EndDate: fixedNow.AddDate(0, 0, 1)})
	require.NoError(t, err)
	_, err = env.tables.Votes.Insert(ctx, &model.Vote{Title: "old", Club: "코딩", Options: []string{"a", "b"},
		Status: model.StatusActive, EndDate: fixedNow.AddDate(0, 0, -1)})
	require.NoError(t, err)
	_, err = env.notifier().Notify(ctx, "lee", "t", "m", model.NotificationInfo)
	require.NoError(t, err)
	svc := NewAdminService(env.tables, env.users, env.clubs, &MockActivityLog{}, fixedClock)

	d, err := svc.Dashboard(ctx, teacher)

	require.NoError(t, err)
	assert.Equal(t, 4, d.Users)
	assert.Equal(t, 2, d.Clubs)
	assert.Equal(t, 2, d.Posts)
	assert.Equal(t, 1, d.ActiveVotes)
	assert.Equal(t, 2, d.AttendanceToday)
	assert.Equal(t, 1, d.UnreadNotifications)
	assert.Equal(t, 2, d.MembersByClub["코딩"])
	assert.Equal(t, 1, d.MembersByClub["댄스"])
	assert.Empty(t, d.Warnings)

	_, err = svc.Dashboard(ctx, president)
	assert.ErrorIs(t, err, errors.ErrForbidden)
}

func TestAdminService_Logs(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	logs := new(MockActivityLog)
	filter := repository.ActivityLogFilter{Username: "lee", Limit: 10}
	logs.On("Query", mock.Anything, filter).Return([]model.ActivityLog{{Username: "lee", ActivityType: ActivityLogin}}, nil)
	logs.On("Cleanup", mock.Anything, 30).Return(4, nil)
	svc := NewAdminService(env.tables, env.users, env.clubs, logs, fixedClock)

	entries, err := svc.Logs(ctx, teacher, filter)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	removed, err := svc.CleanupLogs(ctx, teacher, 30)
	require.NoError(t, err)
	assert.Equal(t, 4, removed)

	_, err = svc.Logs(ctx, member, filter)
	assert.ErrorIs(t, err, errors.ErrForbidden)
	_, err = svc.CleanupLogs(ctx, member, 30)
	assert.ErrorIs(t, err, errors.ErrForbidden)

	logs.AssertExpectations(t)
}
