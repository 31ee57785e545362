package service

import (
	"context"
	"fmt"
	"strings"

	"clubportal/internal/auth"
	"clubportal/internal/csvstore"
	"clubportal/internal/errors"
	"clubportal/internal/model"
	"clubportal/internal/repository"
)

// CreateUserInput holds the fields of a new account.
type CreateUserInput struct {
	Username string
	Password string
	Name     string
	Role     model.Role
	ClubName string
	ClubRole model.Role
}

// UpdateUserInput changes the non-nil fields of an account.
type UpdateUserInput struct {
	Password *string
	Name     *string
	Role     *model.Role
	ClubName *string
	ClubRole *model.Role
}

// UserService manages accounts. Changes touch the users table only; records
// in other tables that name a user are left as they are.
type UserService interface {
	CreateUser(ctx context.Context, actor model.Principal, in CreateUserInput) (*model.User, error)
	GetUser(ctx context.Context, actor model.Principal, username string) (*model.User, error)
	ListUsers(ctx context.Context, actor model.Principal) ([]model.User, error)
	UpdateUser(ctx context.Context, actor model.Principal, username string, in UpdateUserInput) (*model.User, error)
	DeleteUser(ctx context.Context, actor model.Principal, username string) error
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) CreateUser(ctx context.Context, actor model.Principal, in CreateUserInput) (*model.User, error) {
	if err := requireTeacher(actor, "create user"); err != nil {
		return nil, err
	}
	in.Username = strings.TrimSpace(in.Username)
	if err := requireText("username", in.Username); err != nil {
		return nil, err
	}
	if err := requireText("name", in.Name); err != nil {
		return nil, err
	}
	if len(in.Password) < 4 {
		return nil, invalid("password must be at least 4 characters")
	}
	role, ok := model.ParseRole(string(in.Role))
	if !ok {
		return nil, invalid("unknown role %q", in.Role)
	}
	clubRole := role
	if in.ClubRole != "" {
		if clubRole, ok = model.ParseRole(string(in.ClubRole)); !ok {
			return nil, invalid("unknown club role %q", in.ClubRole)
		}
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username: in.Username,
		Password: hashed,
		Name:     strings.TrimSpace(in.Name),
		Role:     role,
		ClubName: strings.TrimSpace(in.ClubName),
		ClubRole: clubRole,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, actor model.Principal, username string) (*model.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if username != actor.Username && !actor.CanSee(user.ClubName) {
		return nil, forbidden("view user")
	}
	return user, nil
}

// ListUsers returns every user to teachers and the own club's roster to others.
func (s *userService) ListUsers(ctx context.Context, actor model.Principal) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if actor.IsTeacher() || actor.Club == model.ClubAll {
		return users, nil
	}
	out := users[:0]
	for _, u := range users {
		if u.ClubName == actor.Club {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *userService) UpdateUser(ctx context.Context, actor model.Principal, username string, in UpdateUserInput) (*model.User, error) {
	if err := requireTeacher(actor, "update user"); err != nil {
		return nil, err
	}
	changes := csvstore.Row{}
	if in.Password != nil {
		if len(*in.Password) < 4 {
			return nil, invalid("password must be at least 4 characters")
		}
		hashed, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		changes["password"] = hashed
	}
	if in.Name != nil {
		if err := requireText("name", *in.Name); err != nil {
			return nil, err
		}
		changes["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Role != nil {
		role, ok := model.ParseRole(string(*in.Role))
		if !ok {
			return nil, invalid("unknown role %q", *in.Role)
		}
		changes["role"] = role
	}
	if in.ClubName != nil {
		changes["club_name"] = strings.TrimSpace(*in.ClubName)
	}
	if in.ClubRole != nil {
		role, ok := model.ParseRole(string(*in.ClubRole))
		if !ok {
			return nil, invalid("unknown club role %q", *in.ClubRole)
		}
		changes["club_role"] = role
	}
	if len(changes) == 0 {
		return nil, invalid("nothing to update")
	}
	if err := s.repo.Update(ctx, username, changes); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return s.repo.FindByUsername(ctx, username)
}

func (s *userService) DeleteUser(ctx context.Context, actor model.Principal, username string) error {
	if err := requireTeacher(actor, "delete user"); err != nil {
		return err
	}
	if username == actor.Username {
		return invalid("cannot delete your own account")
	}
	if err := s.repo.Delete(ctx, username); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
