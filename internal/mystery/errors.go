package mystery

import (
	"errors"
	"fmt"
)

// Closed set of failure kinds. Every operation error wraps exactly one of
// these, so callers can classify with errors.Is while the message keeps
// the specific guard that failed.
var (
	ErrRoomNotFound = errors.New("ROOM_NOT_FOUND: room does not exist")
	ErrInvalidPhase = errors.New("INVALID_PHASE: operation not allowed in current phase")
	ErrUnauthorized = errors.New("UNAUTHORIZED: caller lacks the required role")
	ErrValidation   = errors.New("VALIDATION_FAILED: invalid input")
)

func invalidPhasef(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidPhase)...)
}

func unauthorizedf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrUnauthorized)...)
}

func validationf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}
