package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubportal/internal/errors"
)

func TestClubService_CreateClub(t *testing.T) {
	tests := []struct {
		name          string
		input         ClubInput
		expectedError error
	}{
		{name: "new club", input: ClubInput{Name: "만들기", Icon: "🔨", MaxMembers: 12}},
		{name: "duplicate name", input: ClubInput{Name: "코딩"}, expectedError: errors.ErrClubAlreadyExists},
		{name: "reserved name", input: ClubInput{Name: "전체"}, expectedError: errors.ErrInvalidInput},
		{name: "blank name", input: ClubInput{Name: "  "}, expectedError: errors.ErrInvalidInput},
		{name: "negative capacity", input: ClubInput{Name: "줄넘기", MaxMembers: -1}, expectedError: errors.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			svc := NewClubService(env.clubs, env.users)

			club, err := svc.CreateClub(context.Background(), teacher, tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input.Name, club.Name)
			assert.Positive(t, club.ID)
		})
	}
}

func TestClubService_CreateClub_TeacherOnly(t *testing.T) {
	env := newTestEnv(t)
	svc := NewClubService(env.clubs, env.users)

	_, err := svc.CreateClub(context.Background(), president, ClubInput{Name: "만들기"})

	assert.ErrorIs(t, err, errors.ErrForbidden)
}

func TestClubService_DeleteClub_BlockedWhileMembersExist(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewClubService(env.clubs, env.users)
	dance, err := env.clubs.FindByName(ctx, "댄스")
	require.NoError(t, err)

	err = svc.DeleteClub(ctx, teacher, dance.ID)
	assert.ErrorIs(t, err, errors.ErrClubHasMembers)
	_, err = env.clubs.FindByID(ctx, dance.ID)
	require.NoError(t, err, "club must survive a rejected delete")

	require.NoError(t, env.users.Delete(ctx, outsider.Username))
	require.NoError(t, svc.DeleteClub(ctx, teacher, dance.ID))
	_, err = env.clubs.FindByID(ctx, dance.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestClubService_UpdateClub(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewClubService(env.clubs, env.users)
	coding, err := env.clubs.FindByName(ctx, "코딩")
	require.NoError(t, err)

	updated, err := svc.UpdateClub(ctx, president, coding.ID, ClubInput{Description: "파이썬 공부", MaxMembers: 25})
	require.NoError(t, err)
	assert.Equal(t, "파이썬 공부", updated.Description)
	assert.Equal(t, 25, updated.MaxMembers)
	assert.Equal(t, "💻", updated.Icon)

	_, err = svc.UpdateClub(ctx, president, coding.ID, ClubInput{Name: "코딩2"})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = svc.UpdateClub(ctx, member, coding.ID, ClubInput{Description: "x"})
	assert.ErrorIs(t, err, errors.ErrForbidden)
}

func TestClubService_ListClubs_CountsMembers(t *testing.T) {
	env := newTestEnv(t)
	svc := NewClubService(env.clubs, env.users)

	clubs, err := svc.ListClubs(context.Background())

	require.NoError(t, err)
	counts := map[string]int{}
	for _, c := range clubs {
		counts[c.Name] = c.MemberCount
	}
	assert.Equal(t, map[string]int{"코딩": 2, "댄스": 1}, counts)
}

func TestClubService_Members(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewClubService(env.clubs, env.users)
	coding, err := env.clubs.FindByName(ctx, "코딩")
	require.NoError(t, err)

	members, err := svc.Members(ctx, member, coding.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	_, err = svc.Members(ctx, outsider, coding.ID)
	assert.ErrorIs(t, err, errors.ErrForbidden)
}

func TestClubService_WriteMeetQRCode(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewClubService(env.clubs, env.users)
	coding, err := env.clubs.FindByName(ctx, "코딩")
	require.NoError(t, err)
	dance, err := env.clubs.FindByName(ctx, "댄스")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteMeetQRCode(ctx, coding.ID, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	assert.ErrorIs(t, svc.WriteMeetQRCode(ctx, dance.ID, &bytes.Buffer{}), errors.ErrInvalidInput)
}
