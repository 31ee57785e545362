package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"clubportal/internal/model"
	"clubportal/internal/repository"
)

// Points per activity.
const (
	PointsAttendance = 10
	PointsSubmission = 20
	PointsPost       = 5
	PointsQuiz       = 15

	pointsPerLevel = 100
)

// Level returns the level reached with points.
func Level(points int) int {
	return points/pointsPerLevel + 1
}

// PointsToNextLevel returns how many points are missing for the next level.
func PointsToNextLevel(points int) int {
	return Level(points)*pointsPerLevel - points
}

// GamificationService computes activity points and manages badges.
type GamificationService interface {
	Points(ctx context.Context, username string) (*model.UserPoints, error)
	Ranking(ctx context.Context, actor model.Principal, club string, limit int) ([]model.UserPoints, error)
	Badges(ctx context.Context, username string) ([]model.Badge, error)
	AwardBadge(ctx context.Context, actor model.Principal, username, name, icon, description string) (*model.Badge, error)
}

type gamificationService struct {
	tables *repository.Tables
	users  repository.UserRepository
	now    Clock
}

// NewGamificationService creates a new gamification service.
func NewGamificationService(tables *repository.Tables, users repository.UserRepository, now Clock) GamificationService {
	return &gamificationService{tables: tables, users: users, now: clockOrNow(now)}
}

// activity holds per-user counts of every scored table.
type activity struct {
	present     map[string]int
	submissions map[string]int
	posts       map[string]int
	quizzes     map[string]int
	badges      map[string]int
}

// count loads the scored tables concurrently.
func (s *gamificationService) count(ctx context.Context) (*activity, error) {
	a := &activity{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.tables.Attendance.Filter(ctx, func(r *model.Attendance) bool { return r.Status == model.AttendancePresent })
		a.present = tally(rows, func(r model.Attendance) string { return r.Username })
		return err
	})
	g.Go(func() error {
		rows, err := s.tables.Submissions.List(ctx)
		a.submissions = tally(rows, func(r model.Submission) string { return r.Username })
		return err
	})
	g.Go(func() error {
		rows, err := s.tables.Posts.List(ctx)
		a.posts = tally(rows, func(r model.Post) string { return r.Author })
		return err
	})
	g.Go(func() error {
		rows, err := s.tables.QuizResponses.List(ctx)
		a.quizzes = tally(rows, func(r model.QuizResponse) string { return r.Username })
		return err
	})
	g.Go(func() error {
		rows, err := s.tables.Badges.List(ctx)
		a.badges = tally(rows, func(r model.Badge) string { return r.Username })
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load activity: %w", err)
	}
	return a, nil
}

func tally[T any](rows []T, key func(T) string) map[string]int {
	out := make(map[string]int)
	for _, r := range rows {
		out[key(r)]++
	}
	return out
}

func (a *activity) score(u model.User) model.UserPoints {
	p := model.UserPoints{
		Username:      u.Username,
		Name:          u.Name,
		Club:          u.ClubName,
		Attendance:    a.present[u.Username],
		Submissions:   a.submissions[u.Username],
		Posts:         a.posts[u.Username],
		QuizResponses: a.quizzes[u.Username],
		BadgeCount:    a.badges[u.Username],
	}
	p.Points = p.Attendance*PointsAttendance + p.Submissions*PointsSubmission +
		p.Posts*PointsPost + p.QuizResponses*PointsQuiz
	p.Level = Level(p.Points)
	p.PointsToNext = PointsToNextLevel(p.Points)
	return p
}

func (s *gamificationService) Points(ctx context.Context, username string) (*model.UserPoints, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	a, err := s.count(ctx)
	if err != nil {
		return nil, err
	}
	p := a.score(*user)
	return &p, nil
}

// Ranking orders users by points. Teachers are not ranked. An empty club
// ranks everyone; limit <= 0 returns all.
func (s *gamificationService) Ranking(ctx context.Context, actor model.Principal, club string, limit int) ([]model.UserPoints, error) {
	if club != "" && club != model.ClubAll && !actor.CanSee(club) {
		return nil, forbidden("view ranking")
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	a, err := s.count(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.UserPoints, 0, len(users))
	for _, u := range users {
		if u.Role == model.RoleTeacher {
			continue
		}
		if club != "" && club != model.ClubAll && u.ClubName != club {
			continue
		}
		out = append(out, a.score(u))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].Username < out[j].Username
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Badges returns the badges of username, newest first.
func (s *gamificationService) Badges(ctx context.Context, username string) ([]model.Badge, error) {
	badges, err := s.tables.Badges.Filter(ctx, func(b *model.Badge) bool { return b.Username == username })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(badges, func(i, j int) bool { return badges[i].AwardedDate.After(badges[j].AwardedDate) })
	return badges, nil
}

func (s *gamificationService) AwardBadge(ctx context.Context, actor model.Principal, username, name, icon, description string) (*model.Badge, error) {
	if err := requireTeacher(actor, "award badge"); err != nil {
		return nil, err
	}
	if err := requireText("badge name", name); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByUsername(ctx, username); err != nil {
		return nil, err
	}
	badge := &model.Badge{
		Username:    username,
		BadgeName:   strings.TrimSpace(name),
		BadgeIcon:   icon,
		Description: description,
		AwardedDate: s.now(),
		AwardedBy:   actor.Name,
	}
	id, err := s.tables.Badges.Insert(ctx, badge)
	if err != nil {
		return nil, fmt.Errorf("award badge: %w", err)
	}
	badge.ID = id
	return badge, nil
}
