package service

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"clubportal/internal/model"
	"clubportal/internal/repository"
)

// Dashboard holds the portal-wide counts shown to teachers.
type Dashboard struct {
	Users               int            `json:"users"`
	Clubs               int            `json:"clubs"`
	Posts               int            `json:"posts"`
	ActiveAssignments   int            `json:"active_assignments"`
	ActiveVotes         int            `json:"active_votes"`
	ActiveQuizzes       int            `json:"active_quizzes"`
	AttendanceToday     int            `json:"attendance_today"`
	ChatMessagesToday   int            `json:"chat_messages_today"`
	UnreadNotifications int            `json:"unread_notifications"`
	MembersByClub       map[string]int `json:"members_by_club"`
	Warnings            []Warning      `json:"warnings"`
}

// Warning kinds.
const (
	WarnNoClub       = "user_without_club"
	WarnUnknownClub  = "user_unknown_club"
	WarnOverCapacity = "club_over_capacity"
)

// Warning flags a data inconsistency the store does not prevent.
type Warning struct {
	Kind    string `json:"kind"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ActivityLog is the audit log as seen by admins. activity.Logger implements it.
type ActivityLog interface {
	Query(ctx context.Context, filter repository.ActivityLogFilter) ([]model.ActivityLog, error)
	Cleanup(ctx context.Context, daysToKeep int) (int, error)
}

// AdminService serves the teacher dashboard and audit log.
type AdminService interface {
	Dashboard(ctx context.Context, actor model.Principal) (*Dashboard, error)
	Warnings(ctx context.Context, actor model.Principal) ([]Warning, error)
	Logs(ctx context.Context, actor model.Principal, filter repository.ActivityLogFilter) ([]model.ActivityLog, error)
	CleanupLogs(ctx context.Context, actor model.Principal, daysToKeep int) (int, error)
}

type adminService struct {
	tables *repository.Tables
	users  repository.UserRepository
	clubs  repository.ClubRepository
	logs   ActivityLog
	now    Clock
}

// NewAdminService creates a new admin service.
func NewAdminService(tables *repository.Tables, users repository.UserRepository, clubs repository.ClubRepository, logs ActivityLog, now Clock) AdminService {
	return &adminService{tables: tables, users: users, clubs: clubs, logs: logs, now: clockOrNow(now)}
}

func (s *adminService) Dashboard(ctx context.Context, actor model.Principal) (*Dashboard, error) {
	if err := requireTeacher(actor, "view dashboard"); err != nil {
		return nil, err
	}
	var (
		d     Dashboard
		users []model.User
		clubs []model.Club
	)
	now := s.now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.users.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		clubs, err = s.clubs.List(gctx)
		return err
	})
	g.Go(func() error {
		posts, err := s.tables.Posts.List(gctx)
		d.Posts = len(posts)
		return err
	})
	g.Go(func() error {
		items, err := s.tables.Assignments.Filter(gctx, func(a *model.Assignment) bool {
			return a.Status == model.StatusActive && a.DueDate.After(now)
		})
		d.ActiveAssignments = len(items)
		return err
	})
	g.Go(func() error {
		items, err := s.tables.Votes.Filter(gctx, func(v *model.Vote) bool {
			return v.Status == model.StatusActive && v.EndDate.After(now)
		})
		d.ActiveVotes = len(items)
		return err
	})
	g.Go(func() error {
		items, err := s.tables.Quizzes.Filter(gctx, func(q *model.Quiz) bool { return q.Status == model.StatusActive })
		d.ActiveQuizzes = len(items)
		return err
	})
	g.Go(func() error {
		items, err := s.tables.Attendance.Filter(gctx, func(a *model.Attendance) bool { return sameDay(a.Date, now) })
		d.AttendanceToday = len(items)
		return err
	})
	g.Go(func() error {
		items, err := s.tables.Chat.Filter(gctx, func(m *model.ChatMessage) bool { return !m.Deleted && sameDay(m.Timestamp, now) })
		d.ChatMessagesToday = len(items)
		return err
	})
	g.Go(func() error {
		items, err := s.tables.Notifications.Filter(gctx, func(n *model.Notification) bool { return !n.Read })
		d.UnreadNotifications = len(items)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}

	d.Users = len(users)
	d.Clubs = len(clubs)
	d.MembersByClub = make(map[string]int, len(clubs))
	for _, u := range users {
		if u.ClubName != "" {
			d.MembersByClub[u.ClubName]++
		}
	}
	d.Warnings = warnings(users, clubs)
	return &d, nil
}

func (s *adminService) Warnings(ctx context.Context, actor model.Principal) ([]Warning, error) {
	if err := requireTeacher(actor, "view warnings"); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	clubs, err := s.clubs.List(ctx)
	if err != nil {
		return nil, err
	}
	return warnings(users, clubs), nil
}

// warnings reports users without a club, users of a club that does not
// exist and clubs with more members than their capacity.
func warnings(users []model.User, clubs []model.Club) []Warning {
	known := make(map[string]model.Club, len(clubs))
	for _, c := range clubs {
		known[c.Name] = c
	}
	out := []Warning{}
	members := make(map[string]int)
	for _, u := range users {
		switch {
		case u.ClubName == "":
			if u.Role != model.RoleTeacher {
				out = append(out, Warning{Kind: WarnNoClub, Subject: u.Username,
					Message: fmt.Sprintf("%s(%s) has no club", u.Name, u.Username)})
			}
		case u.ClubName == model.ClubAll:
		default:
			if _, ok := known[u.ClubName]; !ok {
				out = append(out, Warning{Kind: WarnUnknownClub, Subject: u.Username,
					Message: fmt.Sprintf("%s(%s) belongs to unknown club %q", u.Name, u.Username, u.ClubName)})
				continue
			}
			members[u.ClubName]++
		}
	}
	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := known[name]
		if c.MaxMembers > 0 && members[name] > c.MaxMembers {
			out = append(out, Warning{Kind: WarnOverCapacity, Subject: name,
				Message: fmt.Sprintf("%s has %d members for %d places", name, members[name], c.MaxMembers)})
		}
	}
	return out
}

func (s *adminService) Logs(ctx context.Context, actor model.Principal, filter repository.ActivityLogFilter) ([]model.ActivityLog, error) {
	if err := requireTeacher(actor, "view activity log"); err != nil {
		return nil, err
	}
	return s.logs.Query(ctx, filter)
}

func (s *adminService) CleanupLogs(ctx context.Context, actor model.Principal, daysToKeep int) (int, error) {
	if err := requireTeacher(actor, "clean activity log"); err != nil {
		return 0, err
	}
	return s.logs.Cleanup(ctx, daysToKeep)
}
