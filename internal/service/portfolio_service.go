package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"sort"
	"strings"

	"clubportal/internal/csvstore"
	"clubportal/internal/model"
	"clubportal/internal/repository"
)

// First-item badge.
const (
	CreatorBadge     = "창작자"
	CreatorBadgeIcon = "🎨"
)

const topCreators = 10

// PortfolioInput holds the fields of a portfolio item.
type PortfolioInput struct {
	Title        string
	Category     string
	Description  string
	Technologies string
	Status       string
	ProjectURL   string
	Tags         string
	ImagePath    string
}

// PortfolioService manages student portfolios.
type PortfolioService interface {
	Add(ctx context.Context, actor model.Principal, in PortfolioInput) (*model.PortfolioItem, error)
	ListOwn(ctx context.Context, actor model.Principal, category string) ([]model.PortfolioItem, error)
	Featured(ctx context.Context, actor model.Principal, category string) ([]model.FeaturedPortfolioItem, error)
	SetStatus(ctx context.Context, actor model.Principal, id int64, status string) (*model.PortfolioItem, error)
	Stats(ctx context.Context, actor model.Principal) (*model.PortfolioStats, error)
	Delete(ctx context.Context, actor model.Principal, id int64) error
}

type portfolioService struct {
	items  *repository.Table[model.PortfolioItem]
	badges *repository.Table[model.Badge]
	users  repository.UserRepository
	now    Clock
}

// NewPortfolioService creates a new portfolio service.
func NewPortfolioService(tables *repository.Tables, users repository.UserRepository, now Clock) PortfolioService {
	return &portfolioService{items: tables.Portfolio, badges: tables.Badges, users: users, now: clockOrNow(now)}
}

func validPortfolioStatus(s string) bool {
	switch s {
	case model.PortfolioInProgress, model.PortfolioDone, model.PortfolioPublic, model.PortfolioPrivate:
		return true
	}
	return false
}

func validatePortfolio(in PortfolioInput) error {
	if err := requireText("title", in.Title); err != nil {
		return err
	}
	if err := requireText("description", in.Description); err != nil {
		return err
	}
	if !slices.Contains(model.PortfolioCategories, in.Category) {
		return invalid("unknown category %q", in.Category)
	}
	if !validPortfolioStatus(in.Status) {
		return invalid("unknown status %q", in.Status)
	}
	if in.ProjectURL != "" {
		u, err := url.Parse(in.ProjectURL)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return invalid("project url must be an http(s) link")
		}
	}
	return nil
}

// Add stores a new item. A user's first item earns the creator badge.
func (s *portfolioService) Add(ctx context.Context, actor model.Principal, in PortfolioInput) (*model.PortfolioItem, error) {
	if in.Status == "" {
		in.Status = model.PortfolioInProgress
	}
	if err := validatePortfolio(in); err != nil {
		return nil, err
	}
	now := s.now()
	item := &model.PortfolioItem{
		Username:     actor.Username,
		Title:        strings.TrimSpace(in.Title),
		Category:     in.Category,
		Description:  in.Description,
		Technologies: strings.TrimSpace(in.Technologies),
		Status:       in.Status,
		ProjectURL:   in.ProjectURL,
		Tags:         strings.Join(model.PortfolioItem{Tags: in.Tags}.TagList(), ","),
		ImagePath:    in.ImagePath,
		CreatedDate:  now,
	}
	id, err := s.items.Insert(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("add portfolio item: %w", err)
	}
	item.ID = id

	own, err := s.items.Filter(ctx, func(p *model.PortfolioItem) bool { return p.Username == actor.Username })
	if err == nil && len(own) == 1 {
		badge := &model.Badge{
			Username:    actor.Username,
			BadgeName:   CreatorBadge,
			BadgeIcon:   CreatorBadgeIcon,
			Description: "첫 포트폴리오 등록",
			AwardedDate: now,
			AwardedBy:   SystemAwarder,
		}
		if _, err := s.badges.Insert(ctx, badge); err != nil {
			slog.WarnContext(ctx, "award creator badge", slog.String("username", actor.Username), slog.Any("err", err))
		}
	}
	return item, nil
}

func newestFirst(items []model.PortfolioItem) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedDate.After(items[j].CreatedDate) })
}

// ListOwn returns the actor's items, newest first. An empty category lists all.
func (s *portfolioService) ListOwn(ctx context.Context, actor model.Principal, category string) ([]model.PortfolioItem, error) {
	items, err := s.items.Filter(ctx, func(p *model.PortfolioItem) bool {
		return p.Username == actor.Username && (category == "" || p.Category == category)
	})
	if err != nil {
		return nil, err
	}
	newestFirst(items)
	return items, nil
}

// Featured returns every public item, newest first, with creator names.
func (s *portfolioService) Featured(ctx context.Context, actor model.Principal, category string) ([]model.FeaturedPortfolioItem, error) {
	items, err := s.items.Filter(ctx, func(p *model.PortfolioItem) bool {
		return p.Status == model.PortfolioPublic && (category == "" || p.Category == category)
	})
	if err != nil {
		return nil, err
	}
	newestFirst(items)
	names, err := s.displayNames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.FeaturedPortfolioItem, 0, len(items))
	for _, it := range items {
		out = append(out, model.FeaturedPortfolioItem{PortfolioItem: it, CreatorName: nameOr(names, it.Username)})
	}
	return out, nil
}

func (s *portfolioService) displayNames(ctx context.Context) (map[string]string, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.Username] = u.Name
	}
	return names, nil
}

func nameOr(names map[string]string, username string) string {
	if n := names[username]; n != "" {
		return n
	}
	return username
}

// SetStatus changes the status of the actor's own item.
func (s *portfolioService) SetStatus(ctx context.Context, actor model.Principal, id int64, status string) (*model.PortfolioItem, error) {
	if !validPortfolioStatus(status) {
		return nil, invalid("unknown status %q", status)
	}
	item, err := s.items.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Username != actor.Username {
		return nil, forbidden("change portfolio status")
	}
	if err := s.items.Update(ctx, id, csvstore.Row{"status": status}); err != nil {
		return nil, err
	}
	item.Status = status
	return item, nil
}

func (s *portfolioService) Stats(ctx context.Context, actor model.Principal) (*model.PortfolioStats, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}
	stats := &model.PortfolioStats{Total: len(items), ByCategory: map[string]int{}}
	perUser := map[string]int{}
	for _, it := range items {
		if it.Status == model.PortfolioPublic {
			stats.Public++
		}
		if it.Username == actor.Username {
			stats.Mine++
		}
		stats.ByCategory[it.Category]++
		perUser[it.Username]++
	}
	stats.Categories = len(stats.ByCategory)

	names, err := s.displayNames(ctx)
	if err != nil {
		return nil, err
	}
	for username, n := range perUser {
		stats.TopCreators = append(stats.TopCreators, model.PortfolioCreator{Username: username, Name: nameOr(names, username), Count: n})
	}
	sort.Slice(stats.TopCreators, func(i, j int) bool {
		a, b := stats.TopCreators[i], stats.TopCreators[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Username < b.Username
	})
	if len(stats.TopCreators) > topCreators {
		stats.TopCreators = stats.TopCreators[:topCreators]
	}
	return stats, nil
}

// Delete removes an item. Owners and teachers may delete.
func (s *portfolioService) Delete(ctx context.Context, actor model.Principal, id int64) error {
	item, err := s.items.Get(ctx, id)
	if err != nil {
		return err
	}
	if item.Username != actor.Username && !actor.IsTeacher() {
		return forbidden("delete portfolio item")
	}
	return s.items.Delete(ctx, id)
}
