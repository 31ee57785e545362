package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"clubportal/internal/csvstore"
	"clubportal/internal/model"
	"clubportal/internal/repository"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

var (
	teacher   = model.Principal{Username: "admin", Name: "조성우", Role: model.RoleTeacher, Club: model.ClubAll}
	president = model.Principal{Username: "kim", Name: "김보경", Role: model.RolePresident, Club: "코딩"}
	member    = model.Principal{Username: "lee", Name: "이서준", Role: model.RoleMember, Club: "코딩"}
	outsider  = model.Principal{Username: "park", Name: "박하은", Role: model.RoleMember, Club: "댄스"}
)

type testEnv struct {
	store  *csvstore.Store
	tables *repository.Tables
	users  repository.UserRepository
	clubs  repository.ClubRepository
}

// newTestEnv returns a store with clubs 코딩 and 댄스 and one user per
// test principal.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := csvstore.New(t.TempDir(),
		csvstore.WithClock(fixedClock),
		csvstore.WithLocation(time.UTC))
	env := &testEnv{
		store:  store,
		tables: repository.NewTables(store),
		users:  repository.NewUserRepository(store, nil),
		clubs:  repository.NewClubRepository(store),
	}
	ctx := context.Background()
	for _, c := range []model.Club{
		{Name: "코딩", Icon: "💻", MaxMembers: 20, MeetLink: "https://meet.google.com/dbx-ozrs-bma"},
		{Name: "댄스", Icon: "💃", MaxMembers: 15},
	} {
		_, err := env.clubs.Create(ctx, &c)
		require.NoError(t, err)
	}
	for _, p := range []model.Principal{teacher, president, member, outsider} {
		env.addUser(t, p)
	}
	return env
}

func (e *testEnv) addUser(t *testing.T, p model.Principal) {
	t.Helper()
	require.NoError(t, e.users.Create(context.Background(), &model.User{
		Username: p.Username,
		Password: "1234",
		Name:     p.Name,
		Role:     p.Role,
		ClubName: p.Club,
		ClubRole: p.Role,
	}))
}

func (e *testEnv) notifier() NotificationService {
	return NewNotificationService(e.tables, e.users, fixedClock)
}

func (e *testEnv) notificationsFor(t *testing.T, username string) []model.Notification {
	t.Helper()
	items, err := e.tables.Notifications.Filter(context.Background(), func(n *model.Notification) bool {
		return n.Username == username
	})
	require.NoError(t, err)
	return items
}
