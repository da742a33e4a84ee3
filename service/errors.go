package service

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrEmptyDocument     = errors.New("document contains no text")
	ErrInvalidUpdate     = errors.New("invalid profile update")
)

// ProcessError records which step of the curriculum pipeline failed and for
// which user.
type ProcessError struct {
	UserID string
	Op     string
	Err    error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("%s (op: %s, user: %s)", e.Err, e.Op, e.UserID)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is compare against the wrapped cause.
func (e *ProcessError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func processError(userID, op string, err error) error {
	if err == nil {
		return nil
	}
	return &ProcessError{UserID: userID, Op: op, Err: err}
}
