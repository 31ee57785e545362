package service

import (
	"context"
	"fmt"
	"log/slog"

	"clubportal/internal/auth"
	"clubportal/internal/csvstore"
	"clubportal/internal/errors"
	"clubportal/internal/model"
	"clubportal/internal/repository"
)

// Activity types written by the identity provider.
const (
	ActivityLogin          = "LOGIN"
	ActivityLogout         = "LOGOUT"
	ActivityPasswordChange = "PASSWORD_CHANGE"
)

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, user *model.User, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string, access *auth.Claims) error
	ChangePassword(ctx context.Context, actor model.Principal, oldPassword, newPassword string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	activity   ActivityRecorder
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface, activity ActivityRecorder) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		activity:   recorderOrNop(activity),
	}
}

// Login authenticates a user and returns access and refresh tokens. A stored
// plaintext password that matches is replaced with its bcrypt hash.
func (s *authService) Login(ctx context.Context, username, password string) (accessToken, refreshToken string, user *model.User, err error) {
	user, err = s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return "", "", nil, fmt.Errorf("find user: %w", err)
		}
		s.activity.Log(ctx, username, ActivityLogin, "login", "users", errors.ErrInvalidCredentials)
		return "", "", nil, errors.ErrInvalidCredentials
	}

	ok, upgrade := auth.CheckPassword(user.Password, password)
	if !ok {
		s.activity.Log(ctx, username, ActivityLogin, "login", "users", errors.ErrInvalidCredentials)
		return "", "", nil, errors.ErrInvalidCredentials
	}
	if upgrade {
		s.upgradePassword(ctx, user, password)
	}

	p := user.Principal()
	_, accessToken, err = s.jwtService.GenerateAccessToken(p)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(p)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.Username, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	s.activity.Log(ctx, username, ActivityLogin, "login", "users", nil)
	return accessToken, refreshToken, user, nil
}

func (s *authService) upgradePassword(ctx context.Context, user *model.User, password string) {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		slog.WarnContext(ctx, "hash legacy password", slog.String("username", user.Username), slog.Any("err", err))
		return
	}
	ctx = csvstore.WithActor(ctx, user.Username)
	if err := s.userRepo.Update(ctx, user.Username, csvstore.Row{"password": hashed}); err != nil {
		slog.WarnContext(ctx, "upgrade legacy password", slog.String("username", user.Username), slog.Any("err", err))
		return
	}
	user.Password = hashed
}

// RefreshToken validates a refresh token and returns a new access token.
// The new token reflects the user's current role and club.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.ID == "" {
		return "", errors.ErrInvalidRefreshToken
	}

	storedUsername, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil || storedUsername != claims.Username {
		return "", errors.ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByUsername(ctx, claims.Username)
	if err != nil {
		// deleted users keep no sessions
		_ = s.tokenStore.DeleteRefreshToken(ctx, claims.ID)
		return "", errors.ErrInvalidRefreshToken
	}

	_, accessToken, err := s.jwtService.GenerateAccessToken(user.Principal())
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout invalidates a refresh token and blacklists the access token that
// made the request.
func (s *authService) Logout(ctx context.Context, refreshToken string, access *auth.Claims) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return errors.ErrInvalidRefreshToken
	}

	if err := s.tokenStore.DeleteRefreshToken(ctx, tokenID); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}

	if access != nil && access.ID != "" {
		if ttl := s.jwtService.RemainingTTL(access); ttl > 0 {
			if err := s.tokenStore.BlacklistAccessToken(ctx, access.ID, ttl); err != nil {
				return fmt.Errorf("blacklist access token: %w", err)
			}
		}
		s.activity.Log(ctx, access.Username, ActivityLogout, "logout", "users", nil)
	}
	return nil
}

// ChangePassword replaces the actor's password after checking the old one.
func (s *authService) ChangePassword(ctx context.Context, actor model.Principal, oldPassword, newPassword string) error {
	if len(newPassword) < 4 {
		return invalid("new password must be at least 4 characters")
	}
	user, err := s.userRepo.FindByUsername(ctx, actor.Username)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if ok, _ := auth.CheckPassword(user.Password, oldPassword); !ok {
		s.activity.Log(ctx, actor.Username, ActivityPasswordChange, "change password", "users", errors.ErrInvalidCredentials)
		return errors.ErrInvalidCredentials
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, actor.Username, csvstore.Row{"password": hashed}); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	s.activity.Log(ctx, actor.Username, ActivityPasswordChange, "change password", "users", nil)
	return nil
}
