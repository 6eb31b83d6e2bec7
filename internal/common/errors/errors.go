// Package errors provides the error taxonomy shared by the solar workers and its
// mapping onto BPMN errors thrown back to the workflow engine.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// InvalidInput: a required numeric input is missing, zero or negative.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// UnknownLocation is only raised by widgets that require a known state and
	// city. The location resolver degrades to a fallback tier instead.
	ErrCodeUnknownLocation ErrorCode = "UNKNOWN_LOCATION"
	// DivisionUndefined is never thrown by the engine (the result carries an
	// N/A marker); it exists so that callers can label such results.
	ErrCodeDivisionUndefined ErrorCode = "DIVISION_UNDEFINED"

	ErrCodeParseError             ErrorCode = "PARSE_ERROR"
	ErrCodeSchemaValidationFailed ErrorCode = "SCHEMA_VALIDATION_FAILED"

	ErrCodeContentGenerationFailed ErrorCode = "CONTENT_GENERATION_FAILED"
	ErrCodeEngineNotFound          ErrorCode = "ENGINE_NOT_FOUND"

	ErrCodeLocationStoreFailed ErrorCode = "LOCATION_STORE_FAILED"
	ErrCodeAuditSinkFailed     ErrorCode = "AUDIT_SINK_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// BPMNError is thrown to the workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns the variables attached to a failed or thrown job.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidInputError reports a rejected numeric or required input.
func NewInvalidInputError(field, details string) *StandardError {
	e := newError(ErrCodeInvalidInput, "Invalid input", details, false)
	e.Metadata = map[string]interface{}{"field": field}
	return e
}

// NewUnknownLocationError is used by the national widget, which has no fallback tier.
func NewUnknownLocationError(state, city string) *StandardError {
	return newError(ErrCodeUnknownLocation, "Location not found in market data",
		fmt.Sprintf("state: %s, city: %s", state, city), false)
}

func NewParseError(err error) *StandardError {
	return newError(ErrCodeParseError, "Job variables could not be parsed", err.Error(), false)
}

func NewSchemaValidationError(details string) *StandardError {
	return newError(ErrCodeSchemaValidationFailed, "Job variables failed schema validation", details, false)
}

func NewContentGenerationError(engine string, err error) *StandardError {
	return newError(ErrCodeContentGenerationFailed, "Insight content generation failed",
		fmt.Sprintf("engine: %s, error: %s", engine, err.Error()), true)
}

func NewEngineNotFoundError(code string) *StandardError {
	return newError(ErrCodeEngineNotFound, "Insight engine not found", fmt.Sprintf("engine: %s", code), false)
}

func NewLocationStoreError(err error) *StandardError {
	return newError(ErrCodeLocationStoreFailed, "Location override store error", err.Error(), true)
}

func NewAuditSinkError(err error) *StandardError {
	return newError(ErrCodeAuditSinkFailed, "Audit sink write failed", err.Error(), true)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
}

// GetRetryCount returns how many job retries a code is worth.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeLocationStoreFailed, ErrCodeAuditSinkFailed:
		return 3
	case ErrCodeContentGenerationFailed:
		return 1
	default:
		return 0
	}
}

// ConvertToBPMNError maps a StandardError onto the BPMN error thrown to the engine.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           string(stdErr.Code),
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "PARSE"):
		return "VALIDATION"
	case strings.Contains(codeStr, "LOCATION"):
		return "LOCATION"
	case strings.Contains(codeStr, "CONTENT") || strings.Contains(codeStr, "ENGINE") || strings.Contains(codeStr, "AUDIT"):
		return "INSIGHTS"
	case strings.Contains(codeStr, "DIVISION"):
		return "ARITHMETIC"
	default:
		return "OTHER"
	}
}
