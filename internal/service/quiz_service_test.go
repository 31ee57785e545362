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

func newQuiz(t *testing.T, svc QuizService, attempts int) *model.Quiz {
	t.Helper()
	quiz, err := svc.CreateQuiz(context.Background(), president, QuizInput{
		Title: "파이썬 기초",
		Club:  "코딩",
		Questions: []model.Question{
			{Question: "print()의 역할은?", Options: []string{"저장", "출력", "삭제"}, Correct: "선택지 2"},
			{Question: "1+1", Correct: "2"},
		},
		AttemptsAllowed: attempts,
	})
	require.NoError(t, err)
	return quiz
}

func TestQuizService_CreateQuiz(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewQuizService(env.tables, fixedClock)

	quiz := newQuiz(t, svc, 0)
	assert.Equal(t, 3, quiz.AttemptsAllowed)
	assert.Len(t, quiz.Questions, 2)
	assert.Equal(t, model.StatusActive, quiz.Status)

	_, err := svc.CreateQuiz(ctx, president, QuizInput{Title: "빈 퀴즈", Club: "코딩"})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = svc.CreateQuiz(ctx, member, QuizInput{Title: "t", Club: "코딩", Questions: []model.Question{{Question: "q", Correct: "a"}}})
	assert.ErrorIs(t, err, errors.ErrForbidden)
}

func TestQuizService_Take(t *testing.T) {
	tests := []struct {
		name      string
		answers   []string
		wantScore int
		wantBadge bool
	}{
		{name: "perfect", answers: []string{"출력", "2"}, wantScore: 2, wantBadge: true},
		{name: "option reference", answers: []string{"선택지 2", " 2 "}, wantScore: 2, wantBadge: true},
		{name: "half", answers: []string{"저장", "2"}, wantScore: 1},
		{name: "none", answers: []string{"삭제", "3"}, wantScore: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			env := newTestEnv(t)
			svc := NewQuizService(env.tables, fixedClock)
			quiz := newQuiz(t, svc, 3)

			result, err := svc.Take(ctx, member, quiz.ID, QuizAttempt{
				Answers:   tt.answers,
				StartedAt: fixedNow.Add(-90 * time.Second),
			})

			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, result.Response.Score)
			assert.Equal(t, 2, result.Response.TotalQuestions)
			assert.InDelta(t, 1.5, result.Response.TimeTaken, 0.001)
			assert.Equal(t, tt.wantBadge, result.BadgeAwarded)

			badges, err := env.tables.Badges.List(ctx)
			require.NoError(t, err)
			if !tt.wantBadge {
				assert.Empty(t, badges)
				return
			}
			require.Len(t, badges, 1)
			assert.Equal(t, QuizMasterBadge, badges[0].BadgeName)
			assert.Equal(t, QuizMasterIcon, badges[0].BadgeIcon)
			assert.Equal(t, SystemAwarder, badges[0].AwardedBy)
			assert.Equal(t, "파이썬 기초 만점 달성", badges[0].Description)
		})
	}
}

func TestQuizService_Take_Limits(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewQuizService(env.tables, fixedClock)
	quiz := newQuiz(t, svc, 1)

	_, err := svc.Take(ctx, member, quiz.ID, QuizAttempt{Answers: []string{"출력"}})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = svc.Take(ctx, member, quiz.ID, QuizAttempt{Answers: []string{"출력", "3"}})
	require.NoError(t, err)

	_, err = svc.Take(ctx, member, quiz.ID, QuizAttempt{Answers: []string{"출력", "2"}})
	assert.ErrorIs(t, err, errors.ErrAttemptsExceeded)

	require.NoError(t, svc.SetActive(ctx, president, quiz.ID, false))
	_, err = svc.Take(ctx, president, quiz.ID, QuizAttempt{Answers: []string{"출력", "2"}})
	assert.ErrorIs(t, err, errors.ErrQuizInactive)

	_, err = svc.Take(ctx, outsider, quiz.ID, QuizAttempt{Answers: []string{"출력", "2"}})
	assert.ErrorIs(t, err, errors.ErrForbidden)
}

func TestQuizService_ResultsAndDelete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewQuizService(env.tables, fixedClock)
	quiz := newQuiz(t, svc, 3)
	for _, answers := range [][]string{{"출력", "2"}, {"저장", "2"}} {
		_, err := svc.Take(ctx, member, quiz.ID, QuizAttempt{Answers: answers})
		require.NoError(t, err)
	}
	_, err := svc.Take(ctx, president, quiz.ID, QuizAttempt{Answers: []string{"삭제", "0"}})
	require.NoError(t, err)

	summary, err := svc.Results(ctx, president, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Attempts)
	assert.Equal(t, 2, summary.Participants)
	assert.Equal(t, 1, summary.PerfectCount)
	assert.InDelta(t, 1.0, summary.AverageScore, 0.001)
	assert.Equal(t, 2, summary.Responses[0].Score)

	_, err = svc.Results(ctx, member, quiz.ID)
	assert.ErrorIs(t, err, errors.ErrForbidden)

	mine, err := svc.MyResponses(ctx, member)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	assert.ErrorIs(t, svc.DeleteQuiz(ctx, member, quiz.ID), errors.ErrForbidden)
	require.NoError(t, svc.DeleteQuiz(ctx, president, quiz.ID))
	responses, err := env.tables.QuizResponses.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, responses)
}
