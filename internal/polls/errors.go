package polls

import (
	"errors"
	"strings"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrAlreadyVoted      = errors.New("already voted")
	ErrNotVoted          = errors.New("no vote to withdraw")
	ErrPollNotOpen       = errors.New("poll is not open")
	ErrInvalidTransition = errors.New("invalid poll transition")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrRateLimited       = errors.New("poll creation limit reached")
)

// ValidationError lists every problem found in a request.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}
