// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	goerrors "errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"niche-workers/internal/scoring"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeEmptyCatalog            ErrorCode = "EMPTY_CATALOG"
	ErrCodeInvalidEnumValue        ErrorCode = "INVALID_ENUM_VALUE"
	ErrCodeInvalidProfile          ErrorCode = "INVALID_PROFILE"
	ErrCodeNicheNotFound           ErrorCode = "NICHE_NOT_FOUND"
	ErrCodeParseError              ErrorCode = "PARSE_ERROR"
	ErrCodeCatalogLoadFailed       ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodeCatalogValidationFailed ErrorCode = "CATALOG_VALIDATION_FAILED"
	ErrCodeInternal                ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
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

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
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

// ==========================
// 3. Error Constructors
// ==========================

// NewEmptyCatalogError creates a non-retryable error for a catalog with no records.
func NewEmptyCatalogError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyCatalog,
		Message:   "Catalog contains no micro-niches",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     scoring.ErrEmptyCatalog,
	}
}

// NewInvalidEnumValueError wraps an out-of-enumeration value found in a
// catalog record or profile.
func NewInvalidEnumValueError(err error) *StandardError {
	stdErr := &StandardError{
		Code:      ErrCodeInvalidEnumValue,
		Message:   "Value outside its closed enumeration",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}

	var enumErr *scoring.EnumError
	if goerrors.As(err, &enumErr) {
		stdErr.Metadata = map[string]interface{}{
			"field": enumErr.Field,
			"value": enumErr.Value,
		}
		if enumErr.NicheID != "" {
			stdErr.Metadata["nicheId"] = enumErr.NicheID
		}
	}
	return stdErr
}

// NewInvalidProfileError creates a non-retryable error for job input that
// fails schema validation.
func NewInvalidProfileError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidProfile,
		Message:   "Creator profile failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNicheNotFoundError creates a non-retryable lookup error.
func NewNicheNotFoundError(nicheID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNicheNotFound,
		Message:   "Micro-niche not found in catalog",
		Details:   fmt.Sprintf("nicheId: %s", nicheID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewParseError creates a non-retryable error for undecodable job variables.
func NewParseError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeParseError,
		Message:   "Failed to parse job variables",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewCatalogLoadFailedError creates a retryable error for an unreachable
// catalog source.
func NewCatalogLoadFailedError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogLoadFailed,
		Message:   "Failed to load micro-niche catalog",
		Details:   fmt.Sprintf("source: %s, error: %s", source, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewCatalogValidationFailedError creates a non-retryable error for a catalog
// document that does not match its schema.
func NewCatalogValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogValidationFailed,
		Message:   "Catalog document failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps anything the workers did not anticipate.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// FromScoringError maps scoring engine failures onto standard codes. Errors
// that are already a *StandardError pass through unchanged.
func FromScoringError(err error) *StandardError {
	if err == nil {
		return nil
	}

	var stdErr *StandardError
	if goerrors.As(err, &stdErr) {
		return stdErr
	}

	switch {
	case goerrors.Is(err, scoring.ErrEmptyCatalog):
		return NewEmptyCatalogError(err.Error())
	case goerrors.Is(err, scoring.ErrInvalidEnumValue):
		return NewInvalidEnumValueError(err)
	default:
		return NewInternalError(err)
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the codes BPMN boundary
// events catch on. They are currently identical.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeEmptyCatalog:            "EMPTY_CATALOG",
	ErrCodeInvalidEnumValue:        "INVALID_ENUM_VALUE",
	ErrCodeInvalidProfile:          "INVALID_PROFILE",
	ErrCodeNicheNotFound:           "NICHE_NOT_FOUND",
	ErrCodeParseError:              "PARSE_ERROR",
	ErrCodeCatalogLoadFailed:       "CATALOG_LOAD_FAILED",
	ErrCodeCatalogValidationFailed: "CATALOG_VALIDATION_FAILED",
	ErrCodeInternal:                "INTERNAL_ERROR",
}

// GetRetryCount returns the recommended retry count for an error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCatalogLoadFailed:
		return 3 // database or file system hiccup
	default:
		return 0 // business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

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
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// BPMNErrorCodes lists every code a worker can throw, sorted.
func BPMNErrorCodes() []string {
	codes := make([]string, 0, len(BPMNErrorMapping))
	for _, c := range BPMNErrorMapping {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CATALOG"):
		return "CATALOG"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "PARSE"):
		return "VALIDATION"
	case strings.Contains(codeStr, "NOT_FOUND"):
		return "LOOKUP"
	default:
		return "OTHER"
	}
}
