// Package error defines domain-specific errors for the Budget Analysis application.
package error

import "errors"

// Expense domain errors.
var (
	// ErrExpenseNotFound is returned when an expense does not exist.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrExpenseDoesNotBelongToUser is returned when an expense belongs to another user.
	ErrExpenseDoesNotBelongToUser = errors.New("expense does not belong to user")

	// ErrInvalidExpenseAmount is returned when the expense amount is not positive.
	ErrInvalidExpenseAmount = errors.New("expense amount must be greater than zero")

	// ErrInvalidExpenseCategory is returned when the category tag is not recognized.
	ErrInvalidExpenseCategory = errors.New("unknown expense category")

	// ErrMissingExpenseFields is returned when required expense fields are absent.
	ErrMissingExpenseFields = errors.New("required expense fields are missing")

	// ErrUserNotAuthenticated is returned when no user identity is present on the request.
	ErrUserNotAuthenticated = errors.New("user not authenticated")
)

// ExpenseErrorCode defines error codes for expense errors.
// Format: EXP-XXYYYY where XX is category and YYYY is specific error.
type ExpenseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidExpenseAmount   ExpenseErrorCode = "EXP-010001"
	ErrCodeInvalidExpenseCategory ExpenseErrorCode = "EXP-010002"
	ErrCodeMissingExpenseFields   ExpenseErrorCode = "EXP-010003"

	// Lookup errors (02XXXX)
	ErrCodeExpenseNotFound            ExpenseErrorCode = "EXP-020001"
	ErrCodeExpenseDoesNotBelongToUser ExpenseErrorCode = "EXP-020002"

	// Identity errors (03XXXX)
	ErrCodeUserNotAuthenticated ExpenseErrorCode = "EXP-030001"

	// Internal errors (99XXXX)
	ErrCodeExpenseInternalError ExpenseErrorCode = "EXP-990001"
)

// ExpenseError represents an expense error with code and message.
type ExpenseError struct {
	Code    ExpenseErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExpenseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExpenseError) Unwrap() error {
	return e.Err
}

// NewExpenseError creates a new ExpenseError with the given code and message.
func NewExpenseError(code ExpenseErrorCode, message string, err error) *ExpenseError {
	return &ExpenseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
