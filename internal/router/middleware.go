package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"clubportal/internal/auth"
	"clubportal/internal/csvstore"
	"clubportal/internal/errors"
	"clubportal/internal/handler"
	"clubportal/internal/repository"
)

func unauthorized(msg string) error {
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
		Error: msg,
		Code:  "UNAUTHORIZED",
	})
}

// requestLogger logs one line per request through slog.
func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
				slog.String("remote_ip", v.RemoteIP),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				attrs = append(attrs, slog.Any("err", v.Error))
				if v.Status >= http.StatusInternalServerError {
					level = slog.LevelError
				}
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}

// loginLimiter throttles login attempts per client address.
func loginLimiter(perSecond float64, burst int) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, errors.ErrorResponse{
				Error: "too many login attempts",
				Code:  "RATE_LIMITED",
			})
		},
	})
}

// jwtAuth verifies the bearer token and decodes auth.Claims.
func jwtAuth(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  jwtService.Secret(),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(echo.Context, error) error {
			return unauthorized("missing or invalid token")
		},
	})
}

// identify resolves the caller of a verified token. Revoked tokens and
// deleted accounts are rejected. Role and club come from the current user
// row, so changes apply without a new login.
func identify(tokens auth.TokenStoreInterface, users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return unauthorized("invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok || claims.Username == "" || !claims.IsAccess() {
				return unauthorized("invalid token")
			}

			ctx := c.Request().Context()
			revoked, err := tokens.IsAccessTokenBlacklisted(ctx, claims.ID)
			if err != nil {
				slog.ErrorContext(ctx, "check token blacklist", slog.Any("err", err))
				return echo.NewHTTPError(http.StatusServiceUnavailable, errors.ErrorResponse{
					Error: "token store unavailable",
					Code:  "UNAVAILABLE",
				})
			}
			if revoked {
				return unauthorized("token has been revoked")
			}

			user, err := users.FindByUsername(ctx, claims.Username)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return unauthorized("account no longer exists")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
					Error: "internal server error",
					Code:  "INTERNAL_ERROR",
				})
			}

			handler.SetIdentity(c, claims, user.Principal())
			c.SetRequest(c.Request().WithContext(csvstore.WithActor(ctx, user.Username)))
			return next(c)
		}
	}
}
