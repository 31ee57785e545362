package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubportal/internal/errors"
	"clubportal/internal/model"
)

func portfolioInput(title, category, status string) PortfolioInput {
	return PortfolioInput{
		Title:        title,
		Category:     category,
		Description:  "파이썬으로 만든 동아리 출석 도우미",
		Technologies: "Python, Streamlit",
		Status:       status,
		Tags:         " 웹개발, ,AI ",
	}
}

func TestPortfolioService_Add(t *testing.T) {
	tests := []struct {
		name          string
		input         PortfolioInput
		wantStatus    string
		expectedError error
	}{
		{
			name:       "defaults to in progress",
			input:      portfolioInput("출석 도우미", "프로그래밍 프로젝트", ""),
			wantStatus: model.PortfolioInProgress,
		},
		{
			name:       "public",
			input:      portfolioInput("출석 도우미", "팀 프로젝트", model.PortfolioPublic),
			wantStatus: model.PortfolioPublic,
		},
		{
			name:          "missing title",
			input:         portfolioInput(" ", "프로그래밍 프로젝트", ""),
			expectedError: errors.ErrInvalidInput,
		},
		{
			name:          "unknown category",
			input:         portfolioInput("출석 도우미", "요리", ""),
			expectedError: errors.ErrInvalidInput,
		},
		{
			name:          "unknown status",
			input:         portfolioInput("출석 도우미", "개인 작품", "보류"),
			expectedError: errors.ErrInvalidInput,
		},
		{
			name: "bad project url",
			input: func() PortfolioInput {
				in := portfolioInput("출석 도우미", "개인 작품", "")
				in.ProjectURL = "javascript:alert(1)"
				return in
			}(),
			expectedError: errors.ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			svc := NewPortfolioService(env.tables, env.users, fixedClock)

			item, err := svc.Add(context.Background(), member, tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Positive(t, item.ID)
			assert.Equal(t, member.Username, item.Username)
			assert.Equal(t, tt.wantStatus, item.Status)
			assert.Equal(t, "웹개발,AI", item.Tags)
			assert.Equal(t, []string{"웹개발", "AI"}, item.TagList())
		})
	}
}

func TestPortfolioService_AddAwardsCreatorBadgeOnce(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPortfolioService(env.tables, env.users, fixedClock)
	ctx := context.Background()

	_, err := svc.Add(ctx, member, portfolioInput("첫 작품", "개인 작품", ""))
	require.NoError(t, err)
	_, err = svc.Add(ctx, member, portfolioInput("두 번째 작품", "개인 작품", ""))
	require.NoError(t, err)

	badges, err := env.tables.Badges.Filter(ctx, func(b *model.Badge) bool { return b.Username == member.Username })
	require.NoError(t, err)
	require.Len(t, badges, 1)
	assert.Equal(t, CreatorBadge, badges[0].BadgeName)
	assert.Equal(t, SystemAwarder, badges[0].AwardedBy)
}

func TestPortfolioService_ListsAndStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for _, it := range []model.PortfolioItem{
		{Username: member.Username, Title: "출석 도우미", Category: "프로그래밍 프로젝트", Status: model.PortfolioPublic, CreatedDate: fixedNow.AddDate(0, 0, -2)},
		{Username: member.Username, Title: "발표 자료", Category: "발표/프레젠테이션", Status: model.PortfolioPrivate, CreatedDate: fixedNow.AddDate(0, 0, -1)},
		{Username: member.Username, Title: "퀴즈 봇", Category: "프로그래밍 프로젝트", Status: model.PortfolioDone, CreatedDate: fixedNow},
		{Username: outsider.Username, Title: "안무 영상", Category: "창작 활동", Status: model.PortfolioPublic, CreatedDate: fixedNow},
	} {
		_, err := env.tables.Portfolio.Insert(ctx, &it)
		require.NoError(t, err)
	}
	svc := NewPortfolioService(env.tables, env.users, fixedClock)

	t.Run("own items newest first", func(t *testing.T) {
		items, err := svc.ListOwn(ctx, member, "")
		require.NoError(t, err)
		var titles []string
		for _, it := range items {
			titles = append(titles, it.Title)
		}
		assert.Equal(t, []string{"퀴즈 봇", "발표 자료", "출석 도우미"}, titles)

		items, err = svc.ListOwn(ctx, member, "프로그래밍 프로젝트")
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("featured shows public items with creator names", func(t *testing.T) {
		items, err := svc.Featured(ctx, president, "")
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "안무 영상", items[0].Title)
		assert.Equal(t, outsider.Name, items[0].CreatorName)
		assert.Equal(t, member.Name, items[1].CreatorName)

		items, err = svc.Featured(ctx, president, "창작 활동")
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("stats", func(t *testing.T) {
		stats, err := svc.Stats(ctx, member)
		require.NoError(t, err)
		assert.Equal(t, 4, stats.Total)
		assert.Equal(t, 2, stats.Public)
		assert.Equal(t, 3, stats.Mine)
		assert.Equal(t, 3, stats.Categories)
		assert.Equal(t, 2, stats.ByCategory["프로그래밍 프로젝트"])
		require.Len(t, stats.TopCreators, 2)
		assert.Equal(t, model.PortfolioCreator{Username: member.Username, Name: member.Name, Count: 3}, stats.TopCreators[0])
	})
}

func TestPortfolioService_OwnershipChecks(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPortfolioService(env.tables, env.users, fixedClock)
	ctx := context.Background()

	item, err := svc.Add(ctx, member, portfolioInput("출석 도우미", "프로그래밍 프로젝트", model.PortfolioPrivate))
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, president, item.ID, model.PortfolioPublic)
	assert.ErrorIs(t, err, errors.ErrForbidden)

	_, err = svc.SetStatus(ctx, member, item.ID, "보류")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	updated, err := svc.SetStatus(ctx, member, item.ID, model.PortfolioPublic)
	require.NoError(t, err)
	assert.Equal(t, model.PortfolioPublic, updated.Status)

	assert.ErrorIs(t, svc.Delete(ctx, outsider, item.ID), errors.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, teacher, item.ID))

	_, err = env.tables.Portfolio.Get(ctx, item.ID)
	assert.Error(t, err)
}
