package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clubportal/internal/auth"
	"clubportal/internal/csvstore"
	"clubportal/internal/errors"
	"clubportal/internal/model"
	"clubportal/internal/repository"
)

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := auth.HashPassword(password)
	require.NoError(t, err)
	return h
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*testing.T, *MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "kim",
			password: "1234",
			setupMock: func(t *testing.T, mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByUsername", mock.Anything, "kim").Return(&model.User{
					Username: "kim",
					Password: hashed(t, "1234"),
					Role:     model.RoleMember,
					ClubName: "댄스",
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, "kim", auth.RefreshTokenExpiry).Return(nil)
			},
		},
		{
			name:     "legacy plaintext password is upgraded",
			username: "lee",
			password: "1234",
			setupMock: func(t *testing.T, mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByUsername", mock.Anything, "lee").Return(&model.User{
					Username: "lee",
					Password: "1234",
					Role:     model.RolePresident,
				}, nil)
				mRepo.On("Update", mock.Anything, "lee", mock.MatchedBy(func(r csvstore.Row) bool {
					h, ok := r["password"].(string)
					return ok && auth.IsHashed(h)
				})).Return(nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, "lee", auth.RefreshTokenExpiry).Return(nil)
			},
		},
		{
			name:     "wrong password",
			username: "kim",
			password: "0000",
			setupMock: func(t *testing.T, mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByUsername", mock.Anything, "kim").Return(&model.User{
					Username: "kim",
					Password: hashed(t, "1234"),
				}, nil)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:     "invalid credentials - user not found",
			username: "nobody",
			password: "1234",
			setupMock: func(t *testing.T, mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByUsername", mock.Anything, "nobody").Return(nil, repository.ErrNotFound)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(t, mockRepo, mockTokenStore)

			service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), mockTokenStore, nil)

			accessToken, refreshToken, user, err := service.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				require.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
				assert.True(t, auth.IsHashed(user.Password))
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	user := &model.User{Username: "kim", Role: model.RolePresident, ClubName: "댄스"}
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(user.Principal())
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return("kim", nil)
		mockRepo.On("FindByUsername", mock.Anything, "kim").Return(user, nil)

		service := NewAuthService(mockRepo, jwtService, mockTokenStore, nil)
		accessToken, err := service.RefreshToken(context.Background(), refreshToken)
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(accessToken)
		require.NoError(t, err)
		assert.Equal(t, model.RolePresident, claims.Role)
		assert.Equal(t, "댄스", claims.Club)
	})

	t.Run("revoked token", func(t *testing.T) {
		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return("", auth.ErrTokenNotFound)

		service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore, nil)
		_, err := service.RefreshToken(context.Background(), refreshToken)
		assert.Equal(t, errors.ErrInvalidRefreshToken, err)
	})

	t.Run("malformed token", func(t *testing.T) {
		service := NewAuthService(new(MockUserRepository), jwtService, new(MockTokenStore), nil)
		_, err := service.RefreshToken(context.Background(), "garbage")
		assert.Equal(t, errors.ErrInvalidRefreshToken, err)
	})
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	p := model.Principal{Username: "kim", Role: model.RoleMember}
	refreshID, refreshToken, err := jwtService.GenerateRefreshToken(p)
	require.NoError(t, err)
	_, accessToken, err := jwtService.GenerateAccessToken(p)
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(accessToken)
	require.NoError(t, err)

	mockTokenStore := new(MockTokenStore)
	mockTokenStore.On("DeleteRefreshToken", mock.Anything, refreshID).Return(nil)
	mockTokenStore.On("BlacklistAccessToken", mock.Anything, claims.ID, mock.AnythingOfType("time.Duration")).Return(nil)

	service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore, nil)
	require.NoError(t, service.Logout(context.Background(), refreshToken, claims))
	mockTokenStore.AssertExpectations(t)
}

func TestAuthService_ChangePassword(t *testing.T) {
	actor := model.Principal{Username: "kim"}

	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByUsername", mock.Anything, "kim").Return(&model.User{Username: "kim", Password: "1234"}, nil)
		mockRepo.On("Update", mock.Anything, "kim", mock.AnythingOfType("csvstore.Row")).Return(nil)

		service := NewAuthService(mockRepo, auth.NewJWTService("s"), new(MockTokenStore), nil)
		require.NoError(t, service.ChangePassword(context.Background(), actor, "1234", "secret"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("wrong old password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByUsername", mock.Anything, "kim").Return(&model.User{Username: "kim", Password: "1234"}, nil)

		service := NewAuthService(mockRepo, auth.NewJWTService("s"), new(MockTokenStore), nil)
		err := service.ChangePassword(context.Background(), actor, "0000", "secret")
		assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("too short", func(t *testing.T) {
		service := NewAuthService(new(MockUserRepository), auth.NewJWTService("s"), new(MockTokenStore), nil)
		err := service.ChangePassword(context.Background(), actor, "1234", "1")
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	})
}
