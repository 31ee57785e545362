package service

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"clubportal/internal/model"
	"clubportal/internal/repository"
)

const ActivitySearch = "SEARCH"

// SearchScope names a searchable record kind.
type SearchScope string

const (
	ScopePosts       SearchScope = "posts"
	ScopeAssignments SearchScope = "assignments"
	ScopeUsers       SearchScope = "users"
	ScopeQuizzes     SearchScope = "quizzes"
	ScopeVotes       SearchScope = "votes"
)

// AllScopes lists every scope in result order.
var AllScopes = []SearchScope{ScopePosts, ScopeAssignments, ScopeUsers, ScopeQuizzes, ScopeVotes}

var defaultScopes = []SearchScope{ScopePosts, ScopeAssignments}

// Period is a relative date window ending now.
type Period string

const (
	PeriodAll     Period = ""
	PeriodToday   Period = "today"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
)

const snippetRunes = 200

// SearchQuery selects records whose title or body contains Text. Scopes
// default to posts and assignments. Period, From and To bound the creation
// date; Author keeps records written by that username. Users match on
// username or name only and ignore the date and author filters.
type SearchQuery struct {
	Text   string
	Scopes []SearchScope
	Period Period
	From   time.Time
	To     time.Time
	Author string
}

// SearchService finds records across the portal.
type SearchService interface {
	Search(ctx context.Context, actor model.Principal, q SearchQuery) ([]model.SearchResult, error)
}

type searchService struct {
	tables   *repository.Tables
	users    repository.UserRepository
	activity ActivityRecorder
	now      Clock
}

// NewSearchService creates a new search service. activity may be nil.
func NewSearchService(tables *repository.Tables, users repository.UserRepository, activity ActivityRecorder, now Clock) SearchService {
	return &searchService{
		tables:   tables,
		users:    users,
		activity: recorderOrNop(activity),
		now:      clockOrNow(now),
	}
}

// since returns the start of the window p, or the zero time.
func (p Period) since(now time.Time) (time.Time, error) {
	switch p {
	case PeriodAll:
		return time.Time{}, nil
	case PeriodToday:
		return startOfDay(now), nil
	case PeriodWeek:
		return now.AddDate(0, 0, -7), nil
	case PeriodMonth:
		return now.AddDate(0, 0, -30), nil
	case PeriodQuarter:
		return now.AddDate(0, 0, -90), nil
	}
	return time.Time{}, invalid("unknown period %q", p)
}

// matcher holds the resolved filters of one search. Its Caser is not safe
// for concurrent use.
type matcher struct {
	needle string
	fold   cases.Caser
	from   time.Time
	to     time.Time
	author string
	actor  model.Principal
}

func (m *matcher) text(fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(m.fold.String(f), m.needle) {
			return true
		}
	}
	return false
}

func (m *matcher) record(club, author string, created time.Time) bool {
	if !m.actor.CanSee(club) {
		return false
	}
	if m.author != "" && author != m.author {
		return false
	}
	if !m.from.IsZero() && created.Before(m.from) {
		return false
	}
	return m.to.IsZero() || !created.After(m.to)
}

func snippet(s string) string {
	r := []rune(s)
	if len(r) <= snippetRunes {
		return s
	}
	return string(r[:snippetRunes]) + "..."
}

func (s *searchService) Search(ctx context.Context, actor model.Principal, q SearchQuery) ([]model.SearchResult, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return nil, invalid("search text is required")
	}
	scopes := q.Scopes
	if len(scopes) == 0 {
		scopes = defaultScopes
	}
	for _, sc := range scopes {
		if !slices.Contains(AllScopes, sc) {
			return nil, invalid("unknown search scope %q", sc)
		}
	}
	from, err := q.Period.since(s.now())
	if err != nil {
		return nil, err
	}
	if q.From.After(from) {
		from = q.From
	}
	to := q.To
	if !to.IsZero() && to.Equal(startOfDay(to)) {
		to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	fold := cases.Fold()
	m := &matcher{
		needle: fold.String(text),
		fold:   fold,
		from:   from,
		to:     to,
		author: strings.TrimSpace(q.Author),
		actor:  actor,
	}

	var results []model.SearchResult
	for _, sc := range AllScopes {
		if !slices.Contains(scopes, sc) {
			continue
		}
		found, err := s.searchScope(ctx, sc, m)
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", sc, err)
		}
		results = append(results, found...)
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Date.After(results[j].Date) })

	s.activity.Log(ctx, actor.Username, ActivitySearch, "internal search: "+text, "search", nil)
	return results, nil
}

func (s *searchService) searchScope(ctx context.Context, sc SearchScope, m *matcher) ([]model.SearchResult, error) {
	switch sc {
	case ScopePosts:
		return search(ctx, s.tables.Posts, func(p *model.Post) (model.SearchResult, bool) {
			if !m.record(p.Club, p.Author, p.CreatedDate) || !m.text(p.Title, p.Content) {
				return model.SearchResult{}, false
			}
			return model.SearchResult{Type: string(sc), ID: strconv.FormatInt(p.ID, 10), Title: p.Title,
				Snippet: snippet(p.Content), Author: p.Author, Club: p.Club, Date: p.CreatedDate}, true
		})
	case ScopeAssignments:
		return search(ctx, s.tables.Assignments, func(a *model.Assignment) (model.SearchResult, bool) {
			if !m.record(a.Club, a.Creator, a.CreatedDate) || !m.text(a.Title, a.Description) {
				return model.SearchResult{}, false
			}
			return model.SearchResult{Type: string(sc), ID: strconv.FormatInt(a.ID, 10), Title: a.Title,
				Snippet: snippet(a.Description), Author: a.Creator, Club: a.Club, Date: a.CreatedDate}, true
		})
	case ScopeQuizzes:
		return search(ctx, s.tables.Quizzes, func(qz *model.Quiz) (model.SearchResult, bool) {
			if !m.record(qz.Club, qz.Creator, qz.CreatedDate) || !m.text(qz.Title, qz.Description) {
				return model.SearchResult{}, false
			}
			return model.SearchResult{Type: string(sc), ID: strconv.FormatInt(qz.ID, 10), Title: qz.Title,
				Snippet: snippet(qz.Description), Author: qz.Creator, Club: qz.Club, Date: qz.CreatedDate}, true
		})
	case ScopeVotes:
		return search(ctx, s.tables.Votes, func(v *model.Vote) (model.SearchResult, bool) {
			if !m.record(v.Club, v.Creator, v.CreatedDate) || !m.text(v.Title, v.Description) {
				return model.SearchResult{}, false
			}
			return model.SearchResult{Type: string(sc), ID: strconv.FormatInt(v.ID, 10), Title: v.Title,
				Snippet: snippet(v.Description), Author: v.Creator, Club: v.Club, Date: v.CreatedDate}, true
		})
	case ScopeUsers:
		users, err := s.users.List(ctx)
		if err != nil {
			return nil, err
		}
		var out []model.SearchResult
		for _, u := range users {
			if !m.text(u.Username, u.Name) {
				continue
			}
			out = append(out, model.SearchResult{
				Type:    string(sc),
				ID:      u.Username,
				Title:   fmt.Sprintf("%s (@%s)", u.Name, u.Username),
				Snippet: fmt.Sprintf("역할: %s, 동아리: %s", u.Role, u.ClubName),
				Author:  SystemAwarder,
				Club:    u.ClubName,
				Date:    u.CreatedDate,
			})
		}
		return out, nil
	}
	return nil, nil
}

// search runs match over every row of table and keeps the hits.
func search[T any](ctx context.Context, table *repository.Table[T], match func(*T) (model.SearchResult, bool)) ([]model.SearchResult, error) {
	var out []model.SearchResult
	_, err := table.Filter(ctx, func(v *T) bool {
		if r, ok := match(v); ok {
			out = append(out, r)
		}
		return false
	})
	return out, err
}
