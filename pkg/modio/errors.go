package modio

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound matches errors of 404 responses
	ErrNotFound = errors.New("resource not found")
	// ErrUnauthorized matches errors of 401 responses (missing or expired token)
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden matches errors of 403 responses
	ErrForbidden = errors.New("forbidden")
	// ErrRateLimited matches errors of 429 responses
	ErrRateLimited = errors.New("rate limited")

	// ErrInvalidEmail is returned before any request is made if the email is obviously invalid
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrInvalidSecurityCode is returned if the security code is not 5 characters long
	ErrInvalidSecurityCode = errors.New("security code has to be 5 characters long")
	// ErrNoLinks is returned if an empty list of links was passed
	ErrNoLinks = errors.New("no links supplied")
	// ErrInvalidLink is returned if a link is not an absolute http(s) url
	ErrInvalidLink = errors.New("invalid link")
	// ErrNoTags is returned if an empty list of tags was passed
	ErrNoTags = errors.New("no tags supplied")
	// ErrEmptyEdit is returned if an EditModRequest does not change anything
	ErrEmptyEdit = errors.New("edit request does not contain any changes")
	// ErrInvalidLimit is returned if a query limit is out of the 0-100 range
	ErrInvalidLimit = errors.New("limit has to be between 0 and 100")
)

// Error is the error object mod.io responds with if a request was not successful
type Error struct {
	// Code is the http status code
	Code int `json:"code"`
	// Ref is the mod.io specific error reference
	Ref     int    `json:"error_ref"`
	Message string `json:"message"`
	// Errors contains validation errors per field
	Errors map[string]string `json:"errors,omitempty"`
}

type errorResponse struct {
	Error Error `json:"error"`
}

func (e *Error) Error() string {
	if e.Ref != 0 {
		return fmt.Sprintf("mod.io error %d (ref %d): %s", e.Code, e.Ref, e.Message)
	}
	return fmt.Sprintf("mod.io error %d: %s", e.Code, e.Message)
}

// Is makes errors.Is(err, ErrNotFound) and friends work
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code == http.StatusNotFound
	case ErrUnauthorized:
		return e.Code == http.StatusUnauthorized
	case ErrForbidden:
		return e.Code == http.StatusForbidden
	case ErrRateLimited:
		return e.Code == http.StatusTooManyRequests
	}
	return false
}

// StatusCode returns the http status code of an api error, 0 for everything else
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
