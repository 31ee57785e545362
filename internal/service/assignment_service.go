package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"clubportal/internal/csvstore"
	"clubportal/internal/errors"
	"clubportal/internal/model"
	"clubportal/internal/repository"
)

// AssignmentInput holds the fields of a new assignment.
type AssignmentInput struct {
	Title       string
	Description string
	Club        string
	DueDate     time.Time
}

// SubmissionInput is a member's answer.
type SubmissionInput struct {
	Content  string
	FilePath string
}

// AssignmentService manages homework and submissions.
type AssignmentService interface {
	CreateAssignment(ctx context.Context, actor model.Principal, in AssignmentInput) (*model.Assignment, error)
	ListAssignments(ctx context.Context, actor model.Principal, activeOnly bool) ([]model.Assignment, error)
	Submit(ctx context.Context, actor model.Principal, assignmentID int64, in SubmissionInput) (*model.Submission, error)
	Grade(ctx context.Context, actor model.Principal, submissionID int64, grade int, feedback string) error
	ListSubmissions(ctx context.Context, actor model.Principal, assignmentID int64) ([]model.Submission, error)
	MySubmissions(ctx context.Context, actor model.Principal) ([]model.Submission, error)
	Close(ctx context.Context, actor model.Principal, assignmentID int64) error
}

type assignmentService struct {
	assignments *repository.Table[model.Assignment]
	submissions *repository.Table[model.Submission]
	notifier    Notifier
	now         Clock
}

// NewAssignmentService creates a new assignment service. notifier may be nil.
func NewAssignmentService(tables *repository.Tables, notifier Notifier, now Clock) AssignmentService {
	return &assignmentService{
		assignments: tables.Assignments,
		submissions: tables.Submissions,
		notifier:    notifier,
		now:         clockOrNow(now),
	}
}

func (s *assignmentService) CreateAssignment(ctx context.Context, actor model.Principal, in AssignmentInput) (*model.Assignment, error) {
	if err := requireText("title", in.Title); err != nil {
		return nil, err
	}
	if err := requireText("club", in.Club); err != nil {
		return nil, err
	}
	if err := requireManager(actor, in.Club, "create assignment"); err != nil {
		return nil, err
	}
	if !in.DueDate.After(s.now()) {
		return nil, invalid("due date must be in the future")
	}
	a := &model.Assignment{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Club:        in.Club,
		Creator:     actor.Username,
		DueDate:     in.DueDate,
		Status:      model.StatusActive,
	}
	id, err := s.assignments.Insert(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}
	if s.notifier != nil {
		title := fmt.Sprintf("새 과제: %s", a.Title)
		message := fmt.Sprintf("마감일: %s", in.DueDate.Format(csvstore.DateTimeLayout))
		if _, err := s.notifier.NotifyClub(ctx, a.Club, title, message, model.NotificationInfo); err != nil {
			slog.WarnContext(ctx, "notify new assignment", slog.Int64("assignment_id", id), slog.Any("err", err))
		}
	}
	return s.assignments.Get(ctx, id)
}

// ListAssignments returns visible assignments, nearest due date first.
func (s *assignmentService) ListAssignments(ctx context.Context, actor model.Principal, activeOnly bool) ([]model.Assignment, error) {
	items, err := s.assignments.Filter(ctx, func(a *model.Assignment) bool {
		return actor.CanSee(a.Club) && (!activeOnly || s.open(a))
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].DueDate.Before(items[j].DueDate) })
	return items, nil
}

func (s *assignmentService) open(a *model.Assignment) bool {
	return a.Status == model.StatusActive && a.DueDate.After(s.now())
}

// Submit stores the actor's answer. One submission per member and assignment.
func (s *assignmentService) Submit(ctx context.Context, actor model.Principal, assignmentID int64, in SubmissionInput) (*model.Submission, error) {
	a, err := s.assignments.Get(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if !actor.CanSee(a.Club) {
		return nil, forbidden("submit assignment")
	}
	if !s.open(a) {
		return nil, errors.ErrAssignmentClosed
	}
	if err := requireText("content", in.Content); err != nil {
		return nil, err
	}
	sub := &model.Submission{
		AssignmentID:  assignmentID,
		Username:      actor.Username,
		Content:       in.Content,
		FilePath:      in.FilePath,
		SubmittedDate: s.now(),
	}
	id, err := s.submissions.InsertUniqueBy(ctx, []string{"assignment_id", "username"}, sub)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errors.ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("submit assignment: %w", err)
	}
	return s.submissions.Get(ctx, id)
}

// Grade scores a submission from 0 to 100.
func (s *assignmentService) Grade(ctx context.Context, actor model.Principal, submissionID int64, grade int, feedback string) error {
	if err := requireTeacher(actor, "grade submission"); err != nil {
		return err
	}
	if grade < 0 || grade > 100 {
		return invalid("grade must be between 0 and 100")
	}
	return s.submissions.Update(ctx, submissionID, csvstore.Row{
		"grade":    strconv.Itoa(grade),
		"feedback": feedback,
	})
}

func (s *assignmentService) ListSubmissions(ctx context.Context, actor model.Principal, assignmentID int64) ([]model.Submission, error) {
	a, err := s.assignments.Get(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if err := requireManager(actor, a.Club, "view submissions"); err != nil {
		return nil, err
	}
	subs, err := s.submissions.Filter(ctx, func(sub *model.Submission) bool { return sub.AssignmentID == assignmentID })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(subs, func(i, j int) bool { return subs[i].SubmittedDate.Before(subs[j].SubmittedDate) })
	return subs, nil
}

func (s *assignmentService) MySubmissions(ctx context.Context, actor model.Principal) ([]model.Submission, error) {
	subs, err := s.submissions.Filter(ctx, func(sub *model.Submission) bool { return sub.Username == actor.Username })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(subs, func(i, j int) bool { return subs[i].SubmittedDate.After(subs[j].SubmittedDate) })
	return subs, nil
}

func (s *assignmentService) Close(ctx context.Context, actor model.Principal, assignmentID int64) error {
	a, err := s.assignments.Get(ctx, assignmentID)
	if err != nil {
		return err
	}
	if err := requireManager(actor, a.Club, "close assignment"); err != nil {
		return err
	}
	return s.assignments.Update(ctx, assignmentID, csvstore.Row{"status": model.StatusClosed})
}
