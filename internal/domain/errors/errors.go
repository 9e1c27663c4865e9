// Package errors defines domain-specific error types.
// Using typed errors (instead of strings) allows callers to handle
// the specific cases they care about.
//
// Pattern: Sentinel Errors + Custom Error Types
package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors for the wallet domain
var (
	// Wallet errors
	ErrWalletNotFound = errors.New("wallet not found")

	// Balance errors
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNegativeBalance     = errors.New("operation would produce a negative balance")

	// Concurrency errors
	ErrOptimisticLockExhausted = errors.New("optimistic lock retries exhausted")

	// Projection errors
	ErrEventAlreadyApplied = errors.New("event already applied")
	ErrUnknownEventType    = errors.New("unknown event type")
)

// DomainError wraps an error with a machine-readable code and context.
// The code survives to the transport boundary where it is mapped to a
// status code by a single handler.
type DomainError struct {
	Code    string // e.g. "WALLET_NOT_FOUND"
	Message string // human-readable message
	Err     error  // underlying error, for error chains
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a malformed input with field-level detail.
type ValidationError struct {
	Field   string // field name that failed validation
	Message string // what went wrong
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %d error(s)", len(e))
}

// Add appends a validation error.
func (e *ValidationErrors) Add(field, message string) {
	*e = append(*e, ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// ConcurrencyError is raised when a version-checked update loses the
// race, or when the fund retry budget is exhausted.
type ConcurrencyError struct {
	EntityType string // e.g. "Wallet"
	EntityID   string
	Message    string
}

// Error implements the error interface.
func (e ConcurrencyError) Error() string {
	return fmt.Sprintf("concurrency error on %s [%s]: %s", e.EntityType, e.EntityID, e.Message)
}

// NewConcurrencyError creates a new concurrency error.
func NewConcurrencyError(entityType, entityID, message string) *ConcurrencyError {
	return &ConcurrencyError{
		EntityType: entityType,
		EntityID:   entityID,
		Message:    message,
	}
}

// IntegrityError wraps a storage-level constraint violation
// (unique key, foreign key, check constraint).
type IntegrityError struct {
	Constraint string
	Err        error
}

// Error implements the error interface.
func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity violation [%s]: %v", e.Constraint, e.Err)
}

// Unwrap implements error unwrapping.
func (e *IntegrityError) Unwrap() error {
	return e.Err
}

// PublicationError wraps a broker failure after a committed operation.
// It is logged at the engine boundary and never surfaced to the caller.
type PublicationError struct {
	Topic string
	Err   error
}

// Error implements the error interface.
func (e *PublicationError) Error() string {
	return fmt.Sprintf("publication to %q failed: %v", e.Topic, e.Err)
}

// Unwrap implements error unwrapping.
func (e *PublicationError) Unwrap() error {
	return e.Err
}

// Helper functions for common error checking

// IsNotFound checks if an error is a "wallet not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrWalletNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	var valErr ValidationError
	var valErrs ValidationErrors
	return errors.As(err, &valErr) || errors.As(err, &valErrs)
}

// IsInsufficientBalance checks for the insufficient-balance business rule.
func IsInsufficientBalance(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsConcurrencyError checks if an error is a concurrency error.
func IsConcurrencyError(err error) bool {
	var ce *ConcurrencyError
	return errors.As(err, &ce) || errors.Is(err, ErrOptimisticLockExhausted)
}

// IsIntegrityError checks if an error is a storage integrity violation.
func IsIntegrityError(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}
