package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"clubportal/internal/csvstore"
	"clubportal/internal/errors"
	"clubportal/internal/model"
	"clubportal/internal/repository"
)

// VoteInput holds the fields of a new vote.
type VoteInput struct {
	Title         string
	Description   string
	Options       []string
	Club          string
	EndDate       time.Time
	AllowMultiple bool
}

// VoteService manages polls.
type VoteService interface {
	CreateVote(ctx context.Context, actor model.Principal, in VoteInput) (*model.Vote, error)
	ListVotes(ctx context.Context, actor model.Principal, activeOnly bool) ([]model.Vote, error)
	Submit(ctx context.Context, actor model.Principal, voteID int64, selected []string) (*model.VoteResponse, error)
	EndVote(ctx context.Context, actor model.Principal, voteID int64) error
	Results(ctx context.Context, actor model.Principal, voteID int64) (*model.VoteResult, error)
}

type voteService struct {
	votes     *repository.Table[model.Vote]
	responses *repository.Table[model.VoteResponse]
	notifier  Notifier
	now       Clock
}

// NewVoteService creates a new vote service. notifier may be nil.
func NewVoteService(tables *repository.Tables, notifier Notifier, now Clock) VoteService {
	return &voteService{
		votes:     tables.Votes,
		responses: tables.VoteResponses,
		notifier:  notifier,
		now:       clockOrNow(now),
	}
}

// isOpen reports whether v still accepts ballots.
func (s *voteService) isOpen(v *model.Vote) bool {
	return v.Status == model.StatusActive && v.EndDate.After(s.now())
}

func (s *voteService) CreateVote(ctx context.Context, actor model.Principal, in VoteInput) (*model.Vote, error) {
	if err := requireText("title", in.Title); err != nil {
		return nil, err
	}
	if err := requireText("club", in.Club); err != nil {
		return nil, err
	}
	if err := requireManager(actor, in.Club, "create vote"); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(in.Options))
	options := make([]string, 0, len(in.Options))
	for _, o := range in.Options {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if _, dup := seen[o]; dup {
			return nil, invalid("duplicate option %q", o)
		}
		seen[o] = struct{}{}
		options = append(options, o)
	}
	if len(options) < 2 {
		return nil, invalid("a vote needs at least two options")
	}
	if !in.EndDate.After(s.now()) {
		return nil, invalid("end date must be in the future")
	}

	vote := &model.Vote{
		Title:         strings.TrimSpace(in.Title),
		Description:   in.Description,
		Options:       options,
		Club:          in.Club,
		Creator:       actor.Username,
		EndDate:       in.EndDate,
		Status:        model.StatusActive,
		AllowMultiple: in.AllowMultiple,
	}
	id, err := s.votes.Insert(ctx, vote)
	if err != nil {
		return nil, fmt.Errorf("create vote: %w", err)
	}
	if s.notifier != nil {
		title := fmt.Sprintf("새 투표: %s", vote.Title)
		message := fmt.Sprintf("%s님이 새 투표를 등록했습니다. 마감일: %s", actor.Name, in.EndDate.Format(csvstore.DateLayout))
		if _, err := s.notifier.NotifyClub(ctx, vote.Club, title, message, model.NotificationInfo); err != nil {
			slog.WarnContext(ctx, "notify new vote", slog.Int64("vote_id", id), slog.Any("err", err))
		}
	}
	return s.votes.Get(ctx, id)
}

// ListVotes returns visible votes ordered by end date.
func (s *voteService) ListVotes(ctx context.Context, actor model.Principal, activeOnly bool) ([]model.Vote, error) {
	votes, err := s.votes.Filter(ctx, func(v *model.Vote) bool {
		return actor.CanSee(v.Club) && (!activeOnly || s.isOpen(v))
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(votes, func(i, j int) bool { return votes[i].EndDate.Before(votes[j].EndDate) })
	return votes, nil
}

func (s *voteService) visible(ctx context.Context, actor model.Principal, id int64) (*model.Vote, error) {
	vote, err := s.votes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanSee(vote.Club) {
		return nil, forbidden("view vote")
	}
	return vote, nil
}

// Submit records the actor's ballot. Each user votes once per vote.
func (s *voteService) Submit(ctx context.Context, actor model.Principal, voteID int64, selected []string) (*model.VoteResponse, error) {
	vote, err := s.visible(ctx, actor, voteID)
	if err != nil {
		return nil, err
	}
	if !s.isOpen(vote) {
		return nil, errors.ErrVoteClosed
	}
	if len(selected) == 0 {
		return nil, invalid("select at least one option")
	}
	if len(selected) > 1 && !vote.AllowMultiple {
		return nil, invalid("this vote allows a single option")
	}
	picked := make(map[string]struct{}, len(selected))
	for _, o := range selected {
		if !contains(vote.Options, o) {
			return nil, invalid("unknown option %q", o)
		}
		if _, dup := picked[o]; dup {
			return nil, invalid("option %q selected twice", o)
		}
		picked[o] = struct{}{}
	}

	resp := &model.VoteResponse{VoteID: voteID, Username: actor.Username, SelectedOptions: selected}
	id, err := s.responses.InsertUniqueBy(ctx, []string{"vote_id", "username"}, resp)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errors.ErrAlreadyVoted
		}
		return nil, fmt.Errorf("submit vote: %w", err)
	}
	return s.responses.Get(ctx, id)
}

func (s *voteService) EndVote(ctx context.Context, actor model.Principal, voteID int64) error {
	vote, err := s.votes.Get(ctx, voteID)
	if err != nil {
		return err
	}
	if vote.Creator != actor.Username && !actor.IsTeacher() {
		return forbidden("end vote")
	}
	return s.votes.Update(ctx, voteID, csvstore.Row{"status": model.StatusClosed})
}

func (s *voteService) Results(ctx context.Context, actor model.Principal, voteID int64) (*model.VoteResult, error) {
	vote, err := s.visible(ctx, actor, voteID)
	if err != nil {
		return nil, err
	}
	responses, err := s.responses.Filter(ctx, func(r *model.VoteResponse) bool { return r.VoteID == voteID })
	if err != nil {
		return nil, err
	}
	result := &model.VoteResult{Vote: *vote, Counts: make(map[string]int, len(vote.Options))}
	for _, o := range vote.Options {
		result.Counts[o] = 0
	}
	for _, r := range responses {
		for _, o := range r.SelectedOptions {
			if _, ok := result.Counts[o]; ok {
				result.Counts[o]++
			}
		}
	}
	result.Participants = len(responses)
	return result, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
