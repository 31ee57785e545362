package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"clubportal/internal/csvstore"
	"clubportal/internal/errors"
	"clubportal/internal/model"
	"clubportal/internal/repository"
)

// Perfect-score badge.
const (
	QuizMasterBadge = "퀴즈 마스터"
	QuizMasterIcon  = "🏆"
	SystemAwarder   = "System"
)

const defaultAttempts = 3

// QuizInput holds the fields of a new quiz.
type QuizInput struct {
	Title           string
	Description     string
	Club            string
	Questions       []model.Question
	TimeLimit       int
	AttemptsAllowed int
}

// QuizAttempt is one set of answers. StartedAt may be zero.
type QuizAttempt struct {
	Answers   []string
	StartedAt time.Time
}

// QuizResult describes a graded attempt.
type QuizResult struct {
	Response     model.QuizResponse `json:"response"`
	Percentage   float64            `json:"percentage"`
	BadgeAwarded bool               `json:"badge_awarded"`
}

// QuizSummary aggregates the responses of one quiz.
type QuizSummary struct {
	Quiz         model.Quiz           `json:"quiz"`
	Attempts     int                  `json:"attempts"`
	Participants int                  `json:"participants"`
	AverageScore float64              `json:"average_score"`
	PerfectCount int                  `json:"perfect_count"`
	Responses    []model.QuizResponse `json:"responses"`
}

// QuizService manages quizzes and their attempts.
type QuizService interface {
	CreateQuiz(ctx context.Context, actor model.Principal, in QuizInput) (*model.Quiz, error)
	ListQuizzes(ctx context.Context, actor model.Principal, activeOnly bool) ([]model.Quiz, error)
	GetQuiz(ctx context.Context, actor model.Principal, id int64) (*model.Quiz, error)
	Take(ctx context.Context, actor model.Principal, quizID int64, attempt QuizAttempt) (*QuizResult, error)
	SetActive(ctx context.Context, actor model.Principal, quizID int64, active bool) error
	DeleteQuiz(ctx context.Context, actor model.Principal, quizID int64) error
	Results(ctx context.Context, actor model.Principal, quizID int64) (*QuizSummary, error)
	MyResponses(ctx context.Context, actor model.Principal) ([]model.QuizResponse, error)
}

type quizService struct {
	quizzes   *repository.Table[model.Quiz]
	responses *repository.Table[model.QuizResponse]
	badges    *repository.Table[model.Badge]
	now       Clock
}

// NewQuizService creates a new quiz service.
func NewQuizService(tables *repository.Tables, now Clock) QuizService {
	return &quizService{
		quizzes:   tables.Quizzes,
		responses: tables.QuizResponses,
		badges:    tables.Badges,
		now:       clockOrNow(now),
	}
}

func (s *quizService) CreateQuiz(ctx context.Context, actor model.Principal, in QuizInput) (*model.Quiz, error) {
	if err := requireText("title", in.Title); err != nil {
		return nil, err
	}
	if err := requireText("club", in.Club); err != nil {
		return nil, err
	}
	if err := requireManager(actor, in.Club, "create quiz"); err != nil {
		return nil, err
	}
	if len(in.Questions) == 0 {
		return nil, invalid("a quiz needs at least one question")
	}
	for i, q := range in.Questions {
		if strings.TrimSpace(q.Question) == "" || strings.TrimSpace(q.Correct) == "" {
			return nil, invalid("question %d needs text and a correct answer", i+1)
		}
	}
	if in.AttemptsAllowed <= 0 {
		in.AttemptsAllowed = defaultAttempts
	}
	if in.TimeLimit < 0 {
		return nil, invalid("time limit cannot be negative")
	}
	quiz := &model.Quiz{
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		Club:            in.Club,
		Creator:         actor.Username,
		Questions:       in.Questions,
		TimeLimit:       in.TimeLimit,
		AttemptsAllowed: in.AttemptsAllowed,
		Status:          model.StatusActive,
	}
	id, err := s.quizzes.Insert(ctx, quiz)
	if err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}
	return s.quizzes.Get(ctx, id)
}

func (s *quizService) ListQuizzes(ctx context.Context, actor model.Principal, activeOnly bool) ([]model.Quiz, error) {
	quizzes, err := s.quizzes.Filter(ctx, func(q *model.Quiz) bool {
		return actor.CanSee(q.Club) && (!activeOnly || q.Status == model.StatusActive)
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(quizzes, func(i, j int) bool { return quizzes[i].CreatedDate.After(quizzes[j].CreatedDate) })
	return quizzes, nil
}

func (s *quizService) GetQuiz(ctx context.Context, actor model.Principal, id int64) (*model.Quiz, error) {
	quiz, err := s.quizzes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanSee(quiz.Club) {
		return nil, forbidden("view quiz")
	}
	return quiz, nil
}

// Take grades the attempt, stores it and awards the quiz master badge on a
// perfect score.
func (s *quizService) Take(ctx context.Context, actor model.Principal, quizID int64, attempt QuizAttempt) (*QuizResult, error) {
	quiz, err := s.GetQuiz(ctx, actor, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.Status != model.StatusActive {
		return nil, errors.ErrQuizInactive
	}
	if len(attempt.Answers) != len(quiz.Questions) {
		return nil, invalid("expected %d answers, got %d", len(quiz.Questions), len(attempt.Answers))
	}
	previous, err := s.responses.Filter(ctx, func(r *model.QuizResponse) bool {
		return r.QuizID == quizID && r.Username == actor.Username
	})
	if err != nil {
		return nil, err
	}
	if quiz.AttemptsAllowed > 0 && len(previous) >= quiz.AttemptsAllowed {
		return nil, errors.ErrAttemptsExceeded
	}

	var score int
	for i, q := range quiz.Questions {
		if q.IsCorrect(attempt.Answers[i]) {
			score++
		}
	}
	now := s.now()
	var taken float64
	if !attempt.StartedAt.IsZero() && now.After(attempt.StartedAt) {
		taken = math.Round(now.Sub(attempt.StartedAt).Minutes()*100) / 100
	}
	resp := &model.QuizResponse{
		QuizID:         quizID,
		Username:       actor.Username,
		Answers:        attempt.Answers,
		Score:          score,
		TotalQuestions: len(quiz.Questions),
		CompletedDate:  now,
		TimeTaken:      taken,
	}
	id, err := s.responses.Insert(ctx, resp)
	if err != nil {
		return nil, fmt.Errorf("save quiz response: %w", err)
	}
	resp.ID = id

	result := &QuizResult{
		Response:   *resp,
		Percentage: float64(score) / float64(len(quiz.Questions)) * 100,
	}
	if score == len(quiz.Questions) {
		badge := &model.Badge{
			Username:    actor.Username,
			BadgeName:   QuizMasterBadge,
			BadgeIcon:   QuizMasterIcon,
			Description: fmt.Sprintf("%s 만점 달성", quiz.Title),
			AwardedDate: now,
			AwardedBy:   SystemAwarder,
		}
		if _, err := s.badges.Insert(ctx, badge); err != nil {
			slog.WarnContext(ctx, "award quiz badge", slog.Int64("quiz_id", quizID), slog.Any("err", err))
		} else {
			result.BadgeAwarded = true
		}
	}
	return result, nil
}

func (s *quizService) owned(ctx context.Context, actor model.Principal, quizID int64, action string) error {
	quiz, err := s.quizzes.Get(ctx, quizID)
	if err != nil {
		return err
	}
	if quiz.Creator != actor.Username && !actor.CanManage(quiz.Club) {
		return forbidden(action)
	}
	return nil
}

func (s *quizService) SetActive(ctx context.Context, actor model.Principal, quizID int64, active bool) error {
	if err := s.owned(ctx, actor, quizID, "change quiz"); err != nil {
		return err
	}
	status := model.StatusInactive
	if active {
		status = model.StatusActive
	}
	return s.quizzes.Update(ctx, quizID, csvstore.Row{"status": status})
}

// DeleteQuiz removes the quiz and its responses.
func (s *quizService) DeleteQuiz(ctx context.Context, actor model.Principal, quizID int64) error {
	if err := s.owned(ctx, actor, quizID, "delete quiz"); err != nil {
		return err
	}
	if err := s.quizzes.Delete(ctx, quizID); err != nil {
		return err
	}
	if _, err := s.responses.DeleteWhere(ctx, "quiz_id", fmt.Sprint(quizID)); err != nil {
		return fmt.Errorf("delete quiz responses: %w", err)
	}
	return nil
}

func (s *quizService) Results(ctx context.Context, actor model.Principal, quizID int64) (*QuizSummary, error) {
	quiz, err := s.quizzes.Get(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if err := requireManager(actor, quiz.Club, "view quiz results"); err != nil {
		return nil, err
	}
	responses, err := s.responses.Filter(ctx, func(r *model.QuizResponse) bool { return r.QuizID == quizID })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(responses, func(i, j int) bool {
		if responses[i].Score != responses[j].Score {
			return responses[i].Score > responses[j].Score
		}
		return responses[i].TimeTaken < responses[j].TimeTaken
	})
	summary := &QuizSummary{Quiz: *quiz, Attempts: len(responses), Responses: responses}
	users := make(map[string]struct{})
	var total int
	for _, r := range responses {
		users[r.Username] = struct{}{}
		total += r.Score
		if r.TotalQuestions > 0 && r.Score == r.TotalQuestions {
			summary.PerfectCount++
		}
	}
	summary.Participants = len(users)
	if len(responses) > 0 {
		summary.AverageScore = float64(total) / float64(len(responses))
	}
	return summary, nil
}

func (s *quizService) MyResponses(ctx context.Context, actor model.Principal) ([]model.QuizResponse, error) {
	responses, err := s.responses.Filter(ctx, func(r *model.QuizResponse) bool { return r.Username == actor.Username })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(responses, func(i, j int) bool { return responses[i].CompletedDate.After(responses[j].CompletedDate) })
	return responses, nil
}
