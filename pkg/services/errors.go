package services

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned when no caller identity could be
// resolved for the request.
var ErrUnauthenticated = errors.New("unauthenticated: no resolvable caller identity")

// ValidationError reports malformed or incomplete input. Field names the
// offending field or rule so callers never have to guess.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotFoundError covers a method that is missing, inactive, or owned by
// someone else. The three cases are deliberately indistinguishable so
// existence never leaks across owners.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string {
	return e.Msg
}

func NewNotFoundError() error {
	return &NotFoundError{Msg: "payment method not found"}
}

func IsNotFoundError(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// VaultUnavailableError means a secret-store call failed. It is never
// fatal to the owning operation; the service logs it and continues.
type VaultUnavailableError struct {
	Op  string
	Err error
}

func (e *VaultUnavailableError) Error() string {
	return fmt.Sprintf("vault unavailable during %s: %v", e.Op, e.Err)
}

func (e *VaultUnavailableError) Unwrap() error {
	return e.Err
}

func IsVaultUnavailable(err error) bool {
	var vu *VaultUnavailableError
	return errors.As(err, &vu)
}

// StorageError wraps a relational-store failure. Always fatal to the
// operation and surfaced to the caller.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %v", e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
