package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"

	"clubportal/internal/csvstore"
	"clubportal/internal/errors"
	"clubportal/internal/model"
	"clubportal/internal/repository"
)

// ClubInput holds editable club fields. Zero values are left unchanged on update.
type ClubInput struct {
	Name        string
	Icon        string
	Description string
	President   string
	MaxMembers  int
	MeetLink    string
}

// ClubSummary is a club with its current member count.
type ClubSummary struct {
	model.Club
	MemberCount int `json:"member_count"`
}

// ClubService manages clubs.
type ClubService interface {
	ListClubs(ctx context.Context) ([]ClubSummary, error)
	GetClub(ctx context.Context, id int64) (*model.Club, error)
	CreateClub(ctx context.Context, actor model.Principal, in ClubInput) (*model.Club, error)
	UpdateClub(ctx context.Context, actor model.Principal, id int64, in ClubInput) (*model.Club, error)
	DeleteClub(ctx context.Context, actor model.Principal, id int64) error
	Members(ctx context.Context, actor model.Principal, id int64) ([]model.User, error)
	WriteMeetQRCode(ctx context.Context, id int64, w io.Writer) error
}

type clubService struct {
	clubs repository.ClubRepository
	users repository.UserRepository
}

// NewClubService creates a new club service.
func NewClubService(clubs repository.ClubRepository, users repository.UserRepository) ClubService {
	return &clubService{clubs: clubs, users: users}
}

func (s *clubService) ListClubs(ctx context.Context) ([]ClubSummary, error) {
	clubs, err := s.clubs.List(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, u := range users {
		counts[u.ClubName]++
	}
	out := make([]ClubSummary, 0, len(clubs))
	for _, c := range clubs {
		out = append(out, ClubSummary{Club: c, MemberCount: counts[c.Name]})
	}
	return out, nil
}

func (s *clubService) GetClub(ctx context.Context, id int64) (*model.Club, error) {
	return s.clubs.FindByID(ctx, id)
}

func (s *clubService) CreateClub(ctx context.Context, actor model.Principal, in ClubInput) (*model.Club, error) {
	if err := requireTeacher(actor, "create club"); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := requireText("name", in.Name); err != nil {
		return nil, err
	}
	if in.Name == model.ClubAll {
		return nil, invalid("club name %q is reserved", model.ClubAll)
	}
	if in.MaxMembers < 0 {
		return nil, invalid("max_members must not be negative")
	}

	club := &model.Club{
		Name:        in.Name,
		Icon:        in.Icon,
		Description: in.Description,
		President:   in.President,
		MaxMembers:  in.MaxMembers,
		MeetLink:    in.MeetLink,
	}
	id, err := s.clubs.Create(ctx, club)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errors.ErrClubAlreadyExists
		}
		return nil, fmt.Errorf("create club: %w", err)
	}
	return s.clubs.FindByID(ctx, id)
}

// UpdateClub changes the non-zero fields of in. Clubs are referenced by name
// elsewhere, so the name cannot change.
func (s *clubService) UpdateClub(ctx context.Context, actor model.Principal, id int64, in ClubInput) (*model.Club, error) {
	club, err := s.clubs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireManager(actor, club.Name, "update club"); err != nil {
		return nil, err
	}
	if in.Name != "" && in.Name != club.Name {
		return nil, invalid("club name cannot be changed")
	}

	changes := csvstore.Row{}
	if in.Icon != "" {
		changes["icon"] = in.Icon
	}
	if in.Description != "" {
		changes["description"] = in.Description
	}
	if in.President != "" {
		changes["president"] = in.President
	}
	if in.MaxMembers > 0 {
		changes["max_members"] = in.MaxMembers
	}
	if in.MeetLink != "" {
		changes["meet_link"] = in.MeetLink
	}
	if len(changes) == 0 {
		return club, nil
	}
	if err := s.clubs.Update(ctx, id, changes); err != nil {
		return nil, fmt.Errorf("update club: %w", err)
	}
	return s.clubs.FindByID(ctx, id)
}

// DeleteClub removes a club that no user belongs to.
func (s *clubService) DeleteClub(ctx context.Context, actor model.Principal, id int64) error {
	if err := requireTeacher(actor, "delete club"); err != nil {
		return err
	}
	club, err := s.clubs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	members, err := s.members(ctx, club.Name)
	if err != nil {
		return err
	}
	if len(members) > 0 {
		return fmt.Errorf("%w: %s has %d members", errors.ErrClubHasMembers, club.Name, len(members))
	}
	return s.clubs.Delete(ctx, id)
}

func (s *clubService) Members(ctx context.Context, actor model.Principal, id int64) ([]model.User, error) {
	club, err := s.clubs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanSee(club.Name) {
		return nil, forbidden("view members")
	}
	return s.members(ctx, club.Name)
}

func (s *clubService) members(ctx context.Context, club string) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.User
	for _, u := range users {
		if u.ClubName == club {
			out = append(out, u)
		}
	}
	return out, nil
}

// WriteMeetQRCode writes a PNG QR code of the club's meeting link to w.
func (s *clubService) WriteMeetQRCode(ctx context.Context, id int64, w io.Writer) error {
	club, err := s.clubs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if club.MeetLink == "" {
		return invalid("club %s has no meeting link", club.Name)
	}

	qr, err := qrcode.New(club.MeetLink)
	if err != nil {
		return fmt.Errorf("create qrcode: %w", err)
	}
	qrW := standard.NewWithWriter(writeCloser{w},
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
		standard.WithQRWidth(8),
	)
	if err := qr.Save(qrW); err != nil {
		return fmt.Errorf("save qrcode: %w", err)
	}
	return nil
}

// writeCloser lets the qrcode writer close writers that are not closers.
type writeCloser struct {
	io.Writer
}

func (w writeCloser) Close() error {
	if c, ok := w.Writer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
