package errors

import (
	goerrors "errors"
	"fmt"
	"testing"

	"niche-workers/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Scoring Error Mapping
// ==========================

func TestFromScoringError(t *testing.T) {
	enumErr := &scoring.EnumError{Field: "searchTrend", Value: "exploding", NicheID: "n-7"}

	tests := []struct {
		name      string
		err       error
		wantCode  ErrorCode
		retryable bool
	}{
		{"empty catalog", scoring.ErrEmptyCatalog, ErrCodeEmptyCatalog, false},
		{"wrapped empty catalog", fmt.Errorf("rank: %w", scoring.ErrEmptyCatalog), ErrCodeEmptyCatalog, false},
		{"enum error", enumErr, ErrCodeInvalidEnumValue, false},
		{"bare enum sentinel", scoring.ErrInvalidEnumValue, ErrCodeInvalidEnumValue, false},
		{"standard error passes through", NewCatalogLoadFailedError("postgres", goerrors.New("dial tcp")), ErrCodeCatalogLoadFailed, true},
		{"unknown", goerrors.New("boom"), ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdErr := FromScoringError(tt.err)
			require.NotNil(t, stdErr)
			assert.Equal(t, tt.wantCode, stdErr.Code)
			assert.Equal(t, tt.retryable, stdErr.Retryable)
			assert.False(t, stdErr.Timestamp.IsZero())
		})
	}

	assert.Nil(t, FromScoringError(nil))
}

func TestNewInvalidEnumValueError_Metadata(t *testing.T) {
	stdErr := NewInvalidEnumValueError(&scoring.EnumError{Field: "competitionLevel", Value: "Extreme", NicheID: "n-1"})

	assert.Equal(t, "competitionLevel", stdErr.Metadata["field"])
	assert.Equal(t, "Extreme", stdErr.Metadata["value"])
	assert.Equal(t, "n-1", stdErr.Metadata["nicheId"])
	assert.True(t, goerrors.Is(stdErr, scoring.ErrInvalidEnumValue))
}

func TestStandardError_Unwrap(t *testing.T) {
	assert.True(t, goerrors.Is(NewEmptyCatalogError("no rows"), scoring.ErrEmptyCatalog))

	cause := goerrors.New("connection refused")
	assert.True(t, goerrors.Is(NewCatalogLoadFailedError("file", cause), cause))
	assert.Nil(t, goerrors.Unwrap(NewNicheNotFoundError("x")))
}

// ==========================
// BPMN Conversion
// ==========================

func TestConvertToBPMNError(t *testing.T) {
	stdErr := NewInvalidEnumValueError(&scoring.EnumError{Field: "timeAvailability", Value: "30"})
	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "INVALID_ENUM_VALUE", bpmnErr.Code)
	assert.False(t, bpmnErr.Retryable)
	assert.Equal(t, 0, bpmnErr.Retries)

	vars := bpmnErr.ToErrorVariables()
	assert.Equal(t, "INVALID_ENUM_VALUE", vars["errorCode"])
	assert.Equal(t, "INVALID_ENUM_VALUE", vars["originalErrorCode"])
	assert.Equal(t, "timeAvailability", vars["field"])
	assert.NotEmpty(t, vars["timestamp"])
}

func TestConvertToBPMNError_Retryable(t *testing.T) {
	bpmnErr := ConvertToBPMNError(NewCatalogLoadFailedError("postgres", goerrors.New("timeout")))
	assert.True(t, bpmnErr.Retryable)
	assert.Equal(t, 3, bpmnErr.Retries)
	assert.Contains(t, bpmnErr.Details, "source: postgres")
}

func TestConvertToBPMNError_UnmappedCode(t *testing.T) {
	bpmnErr := ConvertToBPMNError(&StandardError{Code: "SOMETHING_NEW", Message: "m"})
	assert.Equal(t, "SOMETHING_NEW", bpmnErr.Code)
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "CATALOG", GetErrorCategory(ErrCodeCatalogLoadFailed))
	assert.Equal(t, "CATALOG", GetErrorCategory(ErrCodeEmptyCatalog))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidProfile))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeParseError))
	assert.Equal(t, "LOOKUP", GetErrorCategory(ErrCodeNicheNotFound))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}

// ==========================
// Retry Decisions
// ==========================

func TestDecide(t *testing.T) {
	retryable := NewCatalogLoadFailedError("file", goerrors.New("EOF"))
	business := NewNicheNotFoundError("n-404")

	tests := []struct {
		name        string
		err         *StandardError
		jobRetries  int32
		wantThrow   bool
		wantRetries int32
	}{
		{"business error always thrown", business, 3, true, 0},
		{"retryable decrements", retryable, 3, false, 2},
		{"retryable capped", retryable, 10, false, 3},
		{"retryable on last attempt thrown", retryable, 1, true, 0},
		{"retryable with no retries thrown", retryable, 0, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			throw, retries := Decide(tt.err, tt.jobRetries)
			assert.Equal(t, tt.wantThrow, throw)
			assert.Equal(t, tt.wantRetries, retries)
		})
	}
}
