package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"clubportal/internal/csvstore"
	"clubportal/internal/model"
	"clubportal/internal/repository"
)

// Recurrence repeats a schedule entry.
type Recurrence string

const (
	RecurNone    Recurrence = ""
	RecurDaily   Recurrence = "daily"
	RecurWeekly  Recurrence = "weekly"
	RecurMonthly Recurrence = "monthly"
)

const maxOccurrences = 52

var clockTime = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ScheduleInput holds the fields of a schedule entry. Repeat occurrences
// are created after the first one when Recurrence is set.
type ScheduleInput struct {
	Title       string
	Description string
	Club        string
	Date        time.Time
	Time        string
	Location    string
	Recurrence  Recurrence
	Repeat      int
}

// ScheduleService manages the club calendar.
type ScheduleService interface {
	Create(ctx context.Context, actor model.Principal, in ScheduleInput) ([]model.ScheduleEntry, error)
	List(ctx context.Context, actor model.Principal, club string, from, to time.Time) ([]model.ScheduleEntry, error)
	Update(ctx context.Context, actor model.Principal, id int64, in ScheduleInput) (*model.ScheduleEntry, error)
	Delete(ctx context.Context, actor model.Principal, id int64) error
}

type scheduleService struct {
	schedule *repository.Table[model.ScheduleEntry]
	notifier Notifier
}

// NewScheduleService creates a new schedule service. notifier may be nil.
func NewScheduleService(tables *repository.Tables, notifier Notifier) ScheduleService {
	return &scheduleService{schedule: tables.Schedule, notifier: notifier}
}

func validateSchedule(in ScheduleInput) error {
	if err := requireText("title", in.Title); err != nil {
		return err
	}
	if err := requireText("club", in.Club); err != nil {
		return err
	}
	if in.Date.IsZero() {
		return invalid("date is required")
	}
	if in.Time != "" && !clockTime.MatchString(in.Time) {
		return invalid("time must look like 15:30")
	}
	return nil
}

// occurrences returns the dates of the first entry and its repeats.
func occurrences(start time.Time, r Recurrence, repeat int) ([]time.Time, error) {
	dates := []time.Time{start}
	if r == RecurNone {
		return dates, nil
	}
	if repeat < 0 || repeat > maxOccurrences {
		return nil, invalid("repeat must be between 0 and %d", maxOccurrences)
	}
	for i := 1; i <= repeat; i++ {
		switch r {
		case RecurDaily:
			dates = append(dates, start.AddDate(0, 0, i))
		case RecurWeekly:
			dates = append(dates, start.AddDate(0, 0, 7*i))
		case RecurMonthly:
			dates = append(dates, start.AddDate(0, i, 0))
		default:
			return nil, invalid("unknown recurrence %q", r)
		}
	}
	return dates, nil
}

// Create adds the entry and its repeats in one write and notifies the club.
func (s *scheduleService) Create(ctx context.Context, actor model.Principal, in ScheduleInput) ([]model.ScheduleEntry, error) {
	if err := validateSchedule(in); err != nil {
		return nil, err
	}
	if err := requireManager(actor, in.Club, "create schedule"); err != nil {
		return nil, err
	}
	start := startOfDay(in.Date)
	dates, err := occurrences(start, in.Recurrence, in.Repeat)
	if err != nil {
		return nil, err
	}
	entries := make([]model.ScheduleEntry, 0, len(dates))
	for _, d := range dates {
		entries = append(entries, model.ScheduleEntry{
			Title:       strings.TrimSpace(in.Title),
			Description: in.Description,
			Club:        in.Club,
			Date:        d,
			Time:        in.Time,
			Location:    in.Location,
			Creator:     actor.Username,
		})
	}
	ids, err := s.schedule.InsertMany(ctx, entries)
	if err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}
	for i, id := range ids {
		entries[i].ID = id
	}
	if s.notifier != nil {
		title := fmt.Sprintf("새 일정: %s", entries[0].Title)
		message := fmt.Sprintf("%s님이 새 일정을 등록했습니다. 날짜: %s", actor.Name, start.Format(csvstore.DateLayout))
		if _, err := s.notifier.NotifyClub(ctx, in.Club, title, message, model.NotificationInfo); err != nil {
			slog.WarnContext(ctx, "notify new schedule", slog.Any("err", err))
		}
	}
	return entries, nil
}

// List returns entries of club between from and to inclusive, in date and
// time order. An empty club lists every visible club.
func (s *scheduleService) List(ctx context.Context, actor model.Principal, club string, from, to time.Time) ([]model.ScheduleEntry, error) {
	if club != "" && !actor.CanSee(club) {
		return nil, forbidden("view schedule")
	}
	entries, err := s.schedule.Filter(ctx, func(e *model.ScheduleEntry) bool {
		if club != "" && e.Club != club && e.Club != model.ClubAll {
			return false
		}
		if !actor.CanSee(e.Club) {
			return false
		}
		if !from.IsZero() && e.Date.Before(startOfDay(from)) {
			return false
		}
		return to.IsZero() || !e.Date.After(startOfDay(to))
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].Time < entries[j].Time
	})
	return entries, nil
}

func (s *scheduleService) Update(ctx context.Context, actor model.Principal, id int64, in ScheduleInput) (*model.ScheduleEntry, error) {
	entry, err := s.schedule.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireManager(actor, entry.Club, "update schedule"); err != nil {
		return nil, err
	}
	if in.Club == "" {
		in.Club = entry.Club
	}
	if err := validateSchedule(in); err != nil {
		return nil, err
	}
	if in.Club != entry.Club {
		if err := requireManager(actor, in.Club, "move schedule"); err != nil {
			return nil, err
		}
	}
	err = s.schedule.Update(ctx, id, csvstore.Row{
		"title":       strings.TrimSpace(in.Title),
		"description": in.Description,
		"club":        in.Club,
		"date":        startOfDay(in.Date),
		"time":        in.Time,
		"location":    in.Location,
	})
	if err != nil {
		return nil, err
	}
	return s.schedule.Get(ctx, id)
}

func (s *scheduleService) Delete(ctx context.Context, actor model.Principal, id int64) error {
	entry, err := s.schedule.Get(ctx, id)
	if err != nil {
		return err
	}
	if entry.Creator != actor.Username && !actor.CanManage(entry.Club) {
		return forbidden("delete schedule")
	}
	return s.schedule.Delete(ctx, id)
}
