package service

import (
	"context"
	"fmt"
	"sort"

	"clubportal/internal/csvstore"
	"clubportal/internal/model"
	"clubportal/internal/repository"
)

// Notifier delivers notifications on behalf of other features.
type Notifier interface {
	NotifyClub(ctx context.Context, club, title, message, kind string) (int, error)
}

// NotificationService manages per-user notifications.
type NotificationService interface {
	Notifier
	// Notify sends to one user, or to every user when username is model.NotifyAll.
	Notify(ctx context.Context, username, title, message, kind string) (int, error)
	List(ctx context.Context, actor model.Principal, unreadOnly bool) ([]model.Notification, error)
	MarkRead(ctx context.Context, actor model.Principal, id int64) error
	MarkAllRead(ctx context.Context, actor model.Principal) (int, error)
	Delete(ctx context.Context, actor model.Principal, id int64) error
	Stats(ctx context.Context, actor model.Principal) (*model.NotificationStats, error)
	SendDeadlineReminders(ctx context.Context, actor model.Principal) (int, error)
	SendScheduleReminders(ctx context.Context, actor model.Principal) (int, error)
}

type notificationService struct {
	notifications *repository.Table[model.Notification]
	assignments   *repository.Table[model.Assignment]
	schedule      *repository.Table[model.ScheduleEntry]
	users         repository.UserRepository
	now           Clock
}

// NewNotificationService creates a new notification service.
func NewNotificationService(tables *repository.Tables, users repository.UserRepository, now Clock) NotificationService {
	return &notificationService{
		notifications: tables.Notifications,
		assignments:   tables.Assignments,
		schedule:      tables.Schedule,
		users:         users,
		now:           clockOrNow(now),
	}
}

func validKind(kind string) string {
	switch kind {
	case model.NotificationInfo, model.NotificationSuccess, model.NotificationWarning, model.NotificationError:
		return kind
	}
	return model.NotificationInfo
}

func (s *notificationService) Notify(ctx context.Context, username, title, message, kind string) (int, error) {
	if err := requireText("title", title); err != nil {
		return 0, err
	}
	if username != model.NotifyAll {
		if err := requireText("username", username); err != nil {
			return 0, err
		}
		return s.send(ctx, []string{username}, title, message, kind)
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return 0, err
	}
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
	}
	return s.send(ctx, names, title, message, kind)
}

// NotifyClub sends to every member of club, or to every user for model.ClubAll.
func (s *notificationService) NotifyClub(ctx context.Context, club, title, message, kind string) (int, error) {
	if club == model.ClubAll {
		return s.Notify(ctx, model.NotifyAll, title, message, kind)
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return 0, err
	}
	var names []string
	for _, u := range users {
		if u.ClubName == club {
			names = append(names, u.Username)
		}
	}
	return s.send(ctx, names, title, message, kind)
}

func (s *notificationService) send(ctx context.Context, usernames []string, title, message, kind string) (int, error) {
	if len(usernames) == 0 {
		return 0, nil
	}
	kind = validKind(kind)
	items := make([]model.Notification, 0, len(usernames))
	for _, name := range usernames {
		items = append(items, model.Notification{
			Username: name,
			Title:    title,
			Message:  message,
			Type:     kind,
		})
	}
	ids, err := s.notifications.InsertMany(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("add notifications: %w", err)
	}
	return len(ids), nil
}

// List returns the actor's notifications, newest first.
func (s *notificationService) List(ctx context.Context, actor model.Principal, unreadOnly bool) ([]model.Notification, error) {
	items, err := s.notifications.Filter(ctx, func(n *model.Notification) bool {
		return n.Username == actor.Username && (!unreadOnly || !n.Read)
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedDate.After(items[j].CreatedDate)
	})
	return items, nil
}

func (s *notificationService) owned(ctx context.Context, actor model.Principal, id int64) (*model.Notification, error) {
	n, err := s.notifications.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.Username != actor.Username {
		return nil, forbidden("access notification")
	}
	return n, nil
}

func (s *notificationService) MarkRead(ctx context.Context, actor model.Principal, id int64) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.notifications.Update(ctx, id, csvstore.Row{"read": true})
}

func (s *notificationService) MarkAllRead(ctx context.Context, actor model.Principal) (int, error) {
	unread, err := s.List(ctx, actor, true)
	if err != nil {
		return 0, err
	}
	var n int
	for _, item := range unread {
		if err := s.notifications.Update(ctx, item.ID, csvstore.Row{"read": true}); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (s *notificationService) Delete(ctx context.Context, actor model.Principal, id int64) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.notifications.Delete(ctx, id)
}

// Stats covers every notification for teachers and the actor's own otherwise.
func (s *notificationService) Stats(ctx context.Context, actor model.Principal) (*model.NotificationStats, error) {
	items, err := s.notifications.Filter(ctx, func(n *model.Notification) bool {
		return actor.IsTeacher() || n.Username == actor.Username
	})
	if err != nil {
		return nil, err
	}
	weekAgo := s.now().AddDate(0, 0, -7)
	stats := &model.NotificationStats{ByType: map[string]int{}}
	for _, n := range items {
		stats.Total++
		if !n.Read {
			stats.Unread++
		}
		stats.ByType[n.Type]++
		if !n.CreatedDate.Before(weekAgo) {
			stats.RecentWeek++
		}
	}
	if stats.Total > 0 {
		stats.ReadRate = float64(stats.Total-stats.Unread) / float64(stats.Total) * 100
	}
	return stats, nil
}

// SendDeadlineReminders warns clubs about active assignments due tomorrow.
func (s *notificationService) SendDeadlineReminders(ctx context.Context, actor model.Principal) (int, error) {
	if err := requireTeacher(actor, "send reminders"); err != nil {
		return 0, err
	}
	tomorrow := s.now().AddDate(0, 0, 1)
	due, err := s.assignments.Filter(ctx, func(a *model.Assignment) bool {
		return a.Status == model.StatusActive && sameDay(a.DueDate.In(tomorrow.Location()), tomorrow)
	})
	if err != nil {
		return 0, err
	}
	var sent int
	for _, a := range due {
		title := fmt.Sprintf("⏰ 과제 마감 임박: %s", a.Title)
		message := fmt.Sprintf("내일(%d월 %d일) 마감되는 과제가 있습니다. 서둘러 제출해주세요!", tomorrow.Month(), tomorrow.Day())
		n, err := s.NotifyClub(ctx, a.Club, title, message, model.NotificationWarning)
		if err != nil {
			return sent, err
		}
		sent += n
	}
	return sent, nil
}

// SendScheduleReminders reminds clubs of tomorrow's events.
func (s *notificationService) SendScheduleReminders(ctx context.Context, actor model.Principal) (int, error) {
	if err := requireTeacher(actor, "send reminders"); err != nil {
		return 0, err
	}
	tomorrow := s.now().AddDate(0, 0, 1)
	events, err := s.schedule.Filter(ctx, func(e *model.ScheduleEntry) bool {
		return sameDay(e.Date.In(tomorrow.Location()), tomorrow)
	})
	if err != nil {
		return 0, err
	}
	var sent int
	for _, e := range events {
		title := fmt.Sprintf("📅 내일 일정 알림: %s", e.Title)
		message := fmt.Sprintf("내일(%d월 %d일) %s에 '%s' 일정이 있습니다.\n장소: %s", tomorrow.Month(), tomorrow.Day(), e.Time, e.Title, e.Location)
		n, err := s.NotifyClub(ctx, e.Club, title, message, model.NotificationInfo)
		if err != nil {
			return sent, err
		}
		sent += n
	}
	return sent, nil
}
