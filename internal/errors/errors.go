package errors

import (
	"errors"
	"net/http"

	"clubportal/internal/csvstore"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = csvstore.ErrRecordNotFound
	// ErrForbidden is returned when the caller's role does not allow the action.
	ErrForbidden = errors.New("permission denied")
	// ErrInvalidInput is wrapped by validation failures.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUserAlreadyExists is returned when the username is taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrClubAlreadyExists is returned when the club name is taken.
	ErrClubAlreadyExists = errors.New("club already exists")
	// ErrClubHasMembers is returned when deleting a club that still has members.
	ErrClubHasMembers = errors.New("club still has members")
	// ErrVoteClosed is returned when voting after the end date or on an ended vote.
	ErrVoteClosed = errors.New("vote is closed")
	// ErrAlreadyVoted is returned on a second ballot by the same user.
	ErrAlreadyVoted = errors.New("already voted")
	// ErrAlreadySubmitted is returned on a second submission for one assignment.
	ErrAlreadySubmitted = errors.New("already submitted")
	// ErrAlreadyCheckedIn is returned on a second self check-in on one day.
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	// ErrAssignmentClosed is returned when submitting to a closed assignment.
	ErrAssignmentClosed = errors.New("assignment is closed")
	// ErrQuizInactive is returned when taking a quiz that is not active.
	ErrQuizInactive = errors.New("quiz is not active")
	// ErrAttemptsExceeded is returned when a user has used every allowed attempt.
	ErrAttemptsExceeded = errors.New("no attempts left")
	// ErrInvalidBackup is returned when a backup archive cannot be restored.
	ErrInvalidBackup = errors.New("invalid backup archive")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

var mappings = []struct {
	target error
	status int
	code   string
}{
	{ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{ErrInvalidRefreshToken, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN"},
	{ErrUserAlreadyExists, http.StatusConflict, "USER_ALREADY_EXISTS"},
	{ErrClubAlreadyExists, http.StatusConflict, "CLUB_ALREADY_EXISTS"},
	{ErrClubHasMembers, http.StatusConflict, "CLUB_HAS_MEMBERS"},
	{ErrVoteClosed, http.StatusConflict, "VOTE_CLOSED"},
	{ErrAlreadyVoted, http.StatusConflict, "ALREADY_VOTED"},
	{ErrAlreadySubmitted, http.StatusConflict, "ALREADY_SUBMITTED"},
	{ErrAlreadyCheckedIn, http.StatusConflict, "ALREADY_CHECKED_IN"},
	{ErrAssignmentClosed, http.StatusConflict, "ASSIGNMENT_CLOSED"},
	{ErrQuizInactive, http.StatusConflict, "QUIZ_INACTIVE"},
	{ErrAttemptsExceeded, http.StatusConflict, "ATTEMPTS_EXCEEDED"},
	{ErrInvalidBackup, http.StatusBadRequest, "INVALID_BACKUP"},
	{csvstore.ErrInvalidCSV, http.StatusBadRequest, "INVALID_CSV"},
	{csvstore.ErrDuplicateKey, http.StatusConflict, "DUPLICATE"},
}

// MapErrorToHTTP maps domain errors to HTTP errors. Client errors carry the
// full wrapped message; anything unrecognized is an opaque 500.
func MapErrorToHTTP(err error) *HTTPError {
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			msg := err.Error()
			if m.status == http.StatusNotFound || m.status == http.StatusUnauthorized {
				msg = m.target.Error()
			}
			return NewHTTPError(m.status, msg, m.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// New returns an error with the given text.
func New(text string) error {
	return errors.New(text)
}
