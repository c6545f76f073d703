package scoring

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCatalog is returned when there is nothing to rank or average.
	ErrEmptyCatalog = errors.New("EMPTY_CATALOG")
	// ErrInvalidEnumValue is returned when a catalog record or profile carries
	// a value outside its closed enumeration.
	ErrInvalidEnumValue = errors.New("INVALID_ENUM_VALUE")
)

// EnumError describes which field held an out-of-enumeration value.
// It unwraps to ErrInvalidEnumValue.
type EnumError struct {
	Field   string
	Value   string
	NicheID string
}

func newEnumError(field, value string) *EnumError {
	return &EnumError{Field: field, Value: value}
}

func (e *EnumError) Error() string {
	if e.NicheID != "" {
		return fmt.Sprintf("%s: niche %q: %s=%q", ErrInvalidEnumValue, e.NicheID, e.Field, e.Value)
	}
	return fmt.Sprintf("%s: %s=%q", ErrInvalidEnumValue, e.Field, e.Value)
}

func (e *EnumError) Unwrap() error {
	return ErrInvalidEnumValue
}

// withNiche tags an enum error with the niche it came from.
func withNiche(err error, nicheID string) error {
	var enumErr *EnumError
	if errors.As(err, &enumErr) && enumErr.NicheID == "" {
		tagged := *enumErr
		tagged.NicheID = nicheID
		return &tagged
	}
	return err
}
