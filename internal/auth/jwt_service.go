package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"clubportal/internal/model"
)

const (
	// AccessTokenExpiry is the duration for which access tokens are valid.
	AccessTokenExpiry = 15 * time.Minute
	// RefreshTokenExpiry is the duration for which refresh tokens are valid.
	RefreshTokenExpiry = 7 * 24 * time.Hour
)

// Token audiences tell access and refresh tokens apart.
const (
	AudienceAccess  = "access"
	AudienceRefresh = "refresh"
)

// Claims represents JWT claims.
type Claims struct {
	Username string     `json:"username"`
	Name     string     `json:"name,omitempty"`
	Role     model.Role `json:"role"`
	Club     string     `json:"club,omitempty"`
	jwt.RegisteredClaims
}

// IsAccess reports whether the claims belong to an access token.
func (c *Claims) IsAccess() bool {
	for _, aud := range c.Audience {
		if aud == AudienceAccess {
			return true
		}
	}
	return false
}

// Principal returns the identity carried by the claims.
func (c *Claims) Principal() model.Principal {
	return model.Principal{Username: c.Username, Name: c.Name, Role: c.Role, Club: c.Club}
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
	now    func() time.Time
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Secret returns the signing key, for the echo-jwt middleware.
func (s *JWTService) Secret() []byte {
	return s.secret
}

// GenerateAccessToken generates a new access token for the principal. The
// token ID is returned so the token can be blacklisted on logout.
func (s *JWTService) GenerateAccessToken(p model.Principal) (tokenID string, token string, err error) {
	return s.generate(p, AudienceAccess, AccessTokenExpiry)
}

// GenerateRefreshToken generates a new refresh token for the principal.
// The refresh token ID is returned separately for storage.
func (s *JWTService) GenerateRefreshToken(p model.Principal) (tokenID string, token string, err error) {
	return s.generate(p, AudienceRefresh, RefreshTokenExpiry)
}

func (s *JWTService) generate(p model.Principal, audience string, ttl time.Duration) (string, string, error) {
	now := s.now()
	tokenID := generateTokenID()
	claims := &Claims{
		Username: p.Username,
		Name:     p.Name,
		Role:     p.Role,
		Club:     p.Club,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   p.Username,
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	return tokenID, token, err
}

// ValidateToken validates a JWT token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// ExtractTokenID extracts the token ID (JTI) from a token.
func (s *JWTService) ExtractTokenID(tokenString string) (string, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	if claims.ID == "" {
		return "", errors.New("token ID not found")
	}
	return claims.ID, nil
}

// RemainingTTL returns how long the token stays valid.
func (s *JWTService) RemainingTTL(c *Claims) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Sub(s.now())
}

// generateTokenID generates a unique token ID.
func generateTokenID() string {
	return uuid.New().String()
}
