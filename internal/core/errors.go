package core

import (
	"errors"
	"fmt"
)

var (
	// ErrUsernameRequired is wrapped by the ValidationError for blank input.
	ErrUsernameRequired = errors.New("username is required")

	// ErrSuperseded is returned by Fetch.Wait when a newer fetch or a reset
	// replaced the fetch before it completed. Nothing was rendered.
	ErrSuperseded = errors.New("fetch superseded by a newer request")

	// ErrNoLauncher is returned by Open and Share when no launcher is configured.
	ErrNoLauncher = errors.New("no launcher configured")
)

// ValidationError indicates user input was rejected before any state changed
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// FetchKind categorizes why a repository fetch failed
type FetchKind int

const (
	KindTransport   FetchKind = iota // network or context failure
	KindStatus                       // server answered with a non-success status
	KindMissingBody                  // success status without a body
	KindEmptyBody                    // success status with an empty list
)

func (k FetchKind) String() string {
	switch k {
	case KindTransport:
		return "transport failure"
	case KindStatus:
		return "unexpected status"
	case KindMissingBody:
		return "missing body"
	case KindEmptyBody:
		return "empty body"
	}

	return "unknown"
}

// FetchError wraps every failed repository fetch. All kinds collapse to the
// same notice for the user.
type FetchError struct {
	Username   string
	Kind       FetchKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.Kind == KindStatus:
		return fmt.Sprintf("fetching repositories for %s: %s %d", e.Username, e.Kind, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("fetching repositories for %s: %s: %v", e.Username, e.Kind, e.Err)
	default:
		return fmt.Sprintf("fetching repositories for %s: %s", e.Username, e.Kind)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
