// Package error defines domain-specific errors for the Budget Analysis application.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget does not exist.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrBudgetDoesNotBelongToUser is returned when a budget belongs to another user.
	ErrBudgetDoesNotBelongToUser = errors.New("budget does not belong to user")

	// ErrInvalidBudgetAmount is returned when the budget amount is not positive.
	ErrInvalidBudgetAmount = errors.New("budget amount must be greater than zero")

	// ErrInvalidBudgetPeriod is returned when the period end date is not after the start date.
	ErrInvalidBudgetPeriod = errors.New("period end date must be after start date")

	// ErrInvalidBudgetCategory is returned when the category tag is not recognized.
	ErrInvalidBudgetCategory = errors.New("unknown budget category")

	// ErrMissingBudgetFields is returned when required budget fields are absent.
	ErrMissingBudgetFields = errors.New("required budget fields are missing")

	// ErrSuggestionNotFound is returned when the suggestion index is out of range.
	ErrSuggestionNotFound = errors.New("suggestion not found")

	// ErrSuggestionNotActionable is returned when a suggestion carries no usable amount.
	ErrSuggestionNotActionable = errors.New("suggestion is not actionable")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BGT-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBudgetAmount   BudgetErrorCode = "BGT-010001"
	ErrCodeInvalidBudgetPeriod   BudgetErrorCode = "BGT-010002"
	ErrCodeInvalidBudgetCategory BudgetErrorCode = "BGT-010003"
	ErrCodeMissingBudgetFields   BudgetErrorCode = "BGT-010004"

	// Lookup errors (02XXXX)
	ErrCodeBudgetNotFound            BudgetErrorCode = "BGT-020001"
	ErrCodeBudgetDoesNotBelongToUser BudgetErrorCode = "BGT-020002"
	ErrCodeSuggestionNotFound        BudgetErrorCode = "BGT-020003"
	ErrCodeSuggestionNotActionable   BudgetErrorCode = "BGT-020004"

	// Throttling errors (03XXXX)
	ErrCodeAnalysisRateLimited BudgetErrorCode = "BGT-030001"

	// Internal errors (99XXXX)
	ErrCodeBudgetInternalError BudgetErrorCode = "BGT-990001"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
