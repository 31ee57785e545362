// Package handler exposes the portal services over HTTP.
package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"

	"clubportal/internal/auth"
	"clubportal/internal/errors"
	"clubportal/internal/model"
)

const (
	principalKey = "principal"
	claimsKey    = "claims"
)

// SetIdentity stores the authenticated caller on the request context.
func SetIdentity(c echo.Context, claims *auth.Claims, p model.Principal) {
	c.Set(claimsKey, claims)
	c.Set(principalKey, p)
}

func principal(c echo.Context) model.Principal {
	p, _ := c.Get(principalKey).(model.Principal)
	return p
}

func accessClaims(c echo.Context) *auth.Claims {
	claims, _ := c.Get(claimsKey).(*auth.Claims)
	return claims
}

// fail converts a service error into the standard error body.
func fail(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: msg,
		Code:  "INVALID_REQUEST",
	})
}

// bind decodes and validates the request body into req.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return badRequest(err.Error())
	}
	return nil
}

func paramID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest("invalid " + name)
	}
	return id, nil
}

func queryInt(c echo.Context, name string, def int) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, badRequest("invalid " + name)
	}
	return n, nil
}

func queryBool(c echo.Context, name string) bool {
	b, _ := strconv.ParseBool(c.QueryParam(name))
	return b
}

// parseTime accepts dates and datetimes in any common layout. Values
// without a zone are read in local time.
func parseTime(name, v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := dateparse.ParseLocal(v)
	if err != nil {
		return time.Time{}, badRequest("invalid " + name)
	}
	return t, nil
}

func queryTime(c echo.Context, name string) (time.Time, error) {
	return parseTime(name, c.QueryParam(name))
}

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// CountResponse reports how many records an operation touched.
type CountResponse struct {
	Count int `json:"count"`
}
