package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"clubportal/internal/csvstore"
	"clubportal/internal/errors"
	"clubportal/internal/model"
	"clubportal/internal/repository"
)

var attendanceKey = []string{"username", "club", "date"}

// AttendanceEntry is one member's status in a roster.
type AttendanceEntry struct {
	Username string
	Status   model.AttendanceStatus
	Note     string
}

// AttendanceStats counts one member's records.
type AttendanceStats struct {
	Username   string  `json:"username"`
	Total      int     `json:"total"`
	Present    int     `json:"present"`
	Late       int     `json:"late"`
	Absent     int     `json:"absent"`
	EarlyLeave int     `json:"early_leave"`
	Rate       float64 `json:"rate"`
}

func (st *AttendanceStats) add(status model.AttendanceStatus) {
	st.Total++
	switch status {
	case model.AttendancePresent:
		st.Present++
	case model.AttendanceLate:
		st.Late++
	case model.AttendanceAbsent:
		st.Absent++
	case model.AttendanceEarlyLeave:
		st.EarlyLeave++
	}
	st.Rate = float64(st.Present) / float64(st.Total) * 100
}

// AttendanceService records club attendance. There is one record per
// member, club and day; recording again replaces it.
type AttendanceService interface {
	RecordRoster(ctx context.Context, actor model.Principal, club string, date time.Time, entries []AttendanceEntry) (int, error)
	CheckIn(ctx context.Context, actor model.Principal, status model.AttendanceStatus, note string) (*model.Attendance, error)
	List(ctx context.Context, actor model.Principal, club string, from, to time.Time) ([]model.Attendance, error)
	UserStats(ctx context.Context, actor model.Principal, username string) (*AttendanceStats, error)
	ClubStats(ctx context.Context, actor model.Principal, club string) ([]AttendanceStats, error)
}

type attendanceService struct {
	attendance *repository.Table[model.Attendance]
	users      repository.UserRepository
	now        Clock
}

// NewAttendanceService creates a new attendance service.
func NewAttendanceService(tables *repository.Tables, users repository.UserRepository, now Clock) AttendanceService {
	return &attendanceService{attendance: tables.Attendance, users: users, now: clockOrNow(now)}
}

func (s *attendanceService) RecordRoster(ctx context.Context, actor model.Principal, club string, date time.Time, entries []AttendanceEntry) (int, error) {
	if err := requireText("club", club); err != nil {
		return 0, err
	}
	if err := requireManager(actor, club, "record attendance"); err != nil {
		return 0, err
	}
	if date.IsZero() {
		return 0, invalid("date is required")
	}
	date = startOfDay(date)
	for _, e := range entries {
		if !e.Status.Valid() {
			return 0, invalid("unknown attendance status %q for %s", e.Status, e.Username)
		}
		if err := requireText("username", e.Username); err != nil {
			return 0, err
		}
	}

	existing, err := s.attendance.Filter(ctx, func(a *model.Attendance) bool {
		return a.Club == club && sameDay(a.Date, date)
	})
	if err != nil {
		return 0, err
	}
	byUser := make(map[string]int64, len(existing))
	for _, a := range existing {
		byUser[a.Username] = a.ID
	}

	var n int
	for _, e := range entries {
		rec := &model.Attendance{
			Username:   e.Username,
			Club:       club,
			Date:       date,
			Status:     e.Status,
			Note:       e.Note,
			RecordedBy: actor.Name,
		}
		if err := s.upsert(ctx, byUser[e.Username], rec); err != nil {
			return n, fmt.Errorf("record attendance for %s: %w", e.Username, err)
		}
		n++
	}
	return n, nil
}

func (s *attendanceService) upsert(ctx context.Context, id int64, rec *model.Attendance) error {
	if id == 0 {
		_, err := s.attendance.InsertUniqueBy(ctx, attendanceKey, rec)
		if !errors.Is(err, repository.ErrDuplicate) {
			return err
		}
		// recorded concurrently; fall through to update
		found, err := s.attendance.First(ctx, func(a *model.Attendance) bool {
			return a.Username == rec.Username && a.Club == rec.Club && sameDay(a.Date, rec.Date)
		})
		if err != nil {
			return err
		}
		id = found.ID
	}
	return s.attendance.Update(ctx, id, csvstore.Row{
		"status":      rec.Status,
		"note":        rec.Note,
		"recorded_by": rec.RecordedBy,
		"timestamp":   s.now(),
	})
}

// CheckIn records the actor as present or late in their own club today.
func (s *attendanceService) CheckIn(ctx context.Context, actor model.Principal, status model.AttendanceStatus, note string) (*model.Attendance, error) {
	if status != model.AttendancePresent && status != model.AttendanceLate {
		return nil, invalid("self check-in accepts present or late")
	}
	if actor.Club == "" || actor.Club == model.ClubAll {
		return nil, invalid("no club to check in to")
	}
	rec := &model.Attendance{
		Username:   actor.Username,
		Club:       actor.Club,
		Date:       startOfDay(s.now()),
		Status:     status,
		Note:       note,
		RecordedBy: actor.Name,
	}
	id, err := s.attendance.InsertUniqueBy(ctx, attendanceKey, rec)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errors.ErrAlreadyCheckedIn
		}
		return nil, fmt.Errorf("check in: %w", err)
	}
	return s.attendance.Get(ctx, id)
}

// List returns records of club between from and to inclusive, newest day
// first. Zero bounds are open.
func (s *attendanceService) List(ctx context.Context, actor model.Principal, club string, from, to time.Time) ([]model.Attendance, error) {
	if club == "" {
		club = actor.Club
	}
	if !actor.CanSee(club) {
		return nil, forbidden("view attendance")
	}
	officer := actor.CanManage(club)
	records, err := s.attendance.Filter(ctx, func(a *model.Attendance) bool {
		if club != model.ClubAll && a.Club != club {
			return false
		}
		if !officer && a.Username != actor.Username {
			return false
		}
		if !from.IsZero() && a.Date.Before(startOfDay(from)) {
			return false
		}
		return to.IsZero() || !a.Date.After(startOfDay(to))
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].Date.After(records[j].Date) })
	return records, nil
}

func (s *attendanceService) UserStats(ctx context.Context, actor model.Principal, username string) (*AttendanceStats, error) {
	if username == "" {
		username = actor.Username
	}
	if username != actor.Username {
		user, err := s.users.FindByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if !actor.CanManage(user.ClubName) {
			return nil, forbidden("view attendance")
		}
	}
	records, err := s.attendance.Filter(ctx, func(a *model.Attendance) bool { return a.Username == username })
	if err != nil {
		return nil, err
	}
	stats := &AttendanceStats{Username: username}
	for _, a := range records {
		stats.add(a.Status)
	}
	return stats, nil
}

// ClubStats returns per-member statistics for club, best rate first.
func (s *attendanceService) ClubStats(ctx context.Context, actor model.Principal, club string) ([]AttendanceStats, error) {
	if err := requireManager(actor, club, "view club attendance"); err != nil {
		return nil, err
	}
	records, err := s.attendance.Filter(ctx, func(a *model.Attendance) bool { return a.Club == club })
	if err != nil {
		return nil, err
	}
	byUser := make(map[string]*AttendanceStats)
	for _, a := range records {
		st, ok := byUser[a.Username]
		if !ok {
			st = &AttendanceStats{Username: a.Username}
			byUser[a.Username] = st
		}
		st.add(a.Status)
	}
	out := make([]AttendanceStats, 0, len(byUser))
	for _, st := range byUser {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rate != out[j].Rate {
			return out[i].Rate > out[j].Rate
		}
		return out[i].Username < out[j].Username
	})
	return out, nil
}
