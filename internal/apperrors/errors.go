// Package apperrors defines the error families shared by every use case:
// missing entities, rejected business rules and unique-key conflicts.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrBusiness = errors.New("business rule violated")
	ErrConflict = errors.New("conflict")
)

func NotFound(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

func Business(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrBusiness)...)
}

func Conflict(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
func IsBusiness(err error) bool { return errors.Is(err, ErrBusiness) }
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }
