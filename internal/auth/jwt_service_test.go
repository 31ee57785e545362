package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubportal/internal/model"
)

var testPrincipal = model.Principal{
	Username: "kim",
	Name:     "김민아",
	Role:     model.RoleMember,
	Club:     "줄넘기",
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret")

	tokenID, token, err := svc.GenerateAccessToken(testPrincipal)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, tokenID, claims.ID)
	assert.Equal(t, testPrincipal, claims.Principal())
	assert.InDelta(t, AccessTokenExpiry.Seconds(), svc.RemainingTTL(claims).Seconds(), 5)
	assert.True(t, claims.IsAccess())
}

func TestJWTService_RefreshTokenIDsAreUnique(t *testing.T) {
	svc := NewJWTService("secret")

	id1, _, err := svc.GenerateRefreshToken(testPrincipal)
	require.NoError(t, err)
	id2, token2, err := svc.GenerateRefreshToken(testPrincipal)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	extracted, err := svc.ExtractTokenID(token2)
	require.NoError(t, err)
	assert.Equal(t, id2, extracted)

	claims, err := svc.ValidateToken(token2)
	require.NoError(t, err)
	assert.False(t, claims.IsAccess())
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("secret")
	_, token, err := svc.GenerateAccessToken(testPrincipal)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewJWTService("other").ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewJWTService("secret")
		later.now = func() time.Time { return time.Now().Add(AccessTokenExpiry + time.Minute) }
		_, err := later.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.Error(t, err)
	})
}
