package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrBusinessRule indicates well-formed input that breaks an accounting rule.
var ErrBusinessRule = errors.New("business rule violation")

// ErrConflict indicates a clash with existing state, such as a duplicate code.
var ErrConflict = errors.New("conflict")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = fmt.Errorf("%w: resource already exists", ErrConflict)

// ErrNotInitialized indicates the business has not completed its opening position.
var ErrNotInitialized = errors.New("books not opened yet, complete opening position first")

// ErrForbidden indicates the caller may not perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates a persistence or other system failure.
var ErrInternal = errors.New("internal error")

// AppError carries a status-like code for system failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is makes every AppError match ErrInternal.
func (e *AppError) Is(target error) bool {
	return target == ErrInternal
}

// NewAppError wraps err as a system failure.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError wraps ErrNotFound with the missing entity.
func NewNotFoundError(entity, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, entity, id)
}

// UnbalancedError reports debit and credit totals that do not agree.
type UnbalancedError struct {
	Subject string
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

// Variance is debit minus credit.
func (e *UnbalancedError) Variance() decimal.Decimal {
	return e.Debit.Sub(e.Credit)
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("%s is not balanced: debit %s, credit %s, variance %s",
		e.Subject, e.Debit.StringFixed(2), e.Credit.StringFixed(2), e.Variance().Abs().StringFixed(2))
}

func (e *UnbalancedError) Unwrap() error {
	return ErrBusinessRule
}

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
