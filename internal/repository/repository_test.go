package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubportal/internal/csvstore"
	"clubportal/internal/model"
)

func newStore(t *testing.T) *csvstore.Store {
	t.Helper()
	return csvstore.New(t.TempDir())
}

func TestTable_CRUD(t *testing.T) {
	ctx := context.Background()
	posts := NewTable[model.Post](newStore(t), "posts")

	id, err := posts.Insert(ctx, &model.Post{Title: "공지", Content: "내일 모임", Author: "kim", Club: "코딩"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := posts.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "공지", got.Title)
	assert.False(t, got.CreatedDate.IsZero())

	require.NoError(t, posts.Update(ctx, id, csvstore.Row{"likes": got.Likes + 1}))
	got, err = posts.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Likes)

	require.NoError(t, posts.Delete(ctx, id))
	_, err = posts.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTable_FilterAndFirst(t *testing.T) {
	ctx := context.Background()
	chat := NewTable[model.ChatMessage](newStore(t), "chat_logs")
	for _, m := range []model.ChatMessage{
		{Username: "a", Club: "코딩", Message: "1"},
		{Username: "b", Club: "댄스", Message: "2"},
		{Username: "c", Club: "코딩", Message: "3"},
	} {
		m := m
		_, err := chat.Insert(ctx, &m)
		require.NoError(t, err)
	}

	coding, err := chat.Filter(ctx, func(m *model.ChatMessage) bool { return m.Club == "코딩" })
	require.NoError(t, err)
	assert.Len(t, coding, 2)

	first, err := chat.First(ctx, func(m *model.ChatMessage) bool { return m.Username == "b" })
	require.NoError(t, err)
	assert.Equal(t, int64(2), first.ID)

	_, err = chat.First(ctx, func(m *model.ChatMessage) bool { return m.Username == "zzz" })
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := chat.DeleteWhere(ctx, "username", "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestTable_SkipsMalformedJSONRows(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	content := "\ufeffid,title,club,creator,questions,status\n" +
		"1,파이썬 기초,코딩,kim,\"[{\"\"question\"\":\"\"print?\"\",\"\"correct\"\":\"\"1\"\"}]\",active\n" +
		"2,깨진 퀴즈,코딩,kim,not-json,active\n" +
		"3,댄스 용어,댄스,park,[],active\n"
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "quizzes.csv"), []byte(content), 0o644))

	quizzes := NewTable[model.Quiz](store, "quizzes")

	items, err := quizzes.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Len(t, items[0].Questions, 1)
	assert.Equal(t, int64(3), items[1].ID)

	first, err := quizzes.First(ctx, func(q *model.Quiz) bool { return q.Club == "댄스" })
	require.NoError(t, err)
	assert.Equal(t, "댄스 용어", first.Title)

	_, err = quizzes.Get(ctx, 2)
	assert.Error(t, err)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newStore(t), nil)

	require.NoError(t, repo.Create(ctx, &model.User{Username: "kim", Password: "hash", Name: "김", Role: model.RoleMember, ClubName: "코딩"}))
	assert.ErrorIs(t, repo.Create(ctx, &model.User{Username: "kim"}), ErrDuplicate)

	u, err := repo.FindByUsername(ctx, "kim")
	require.NoError(t, err)
	assert.Equal(t, "hash", u.Password)
	assert.Equal(t, model.RoleMember, u.Role)

	require.NoError(t, repo.Update(ctx, "kim", csvstore.Row{"role": model.RolePresident}))
	u, err = repo.FindByUsername(ctx, "kim")
	require.NoError(t, err)
	assert.Equal(t, model.RolePresident, u.Role)

	require.NoError(t, repo.Delete(ctx, "kim"))
	_, err = repo.FindByUsername(ctx, "kim")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClubRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewClubRepository(newStore(t))

	id, err := repo.Create(ctx, &model.Club{Name: "코딩", Icon: "💻", MaxMembers: 20})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &model.Club{Name: "코딩"})
	assert.ErrorIs(t, err, ErrDuplicate)

	c, err := repo.FindByName(ctx, "코딩")
	require.NoError(t, err)
	assert.Equal(t, id, c.ID)
	assert.Equal(t, 20, c.MaxMembers)

	require.NoError(t, repo.Update(ctx, id, csvstore.Row{"max_members": 25}))
	c, err = repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 25, c.MaxMembers)
}
