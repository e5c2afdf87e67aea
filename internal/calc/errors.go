package calc

import (
	"errors"
	"fmt"
)

// ErrDataIntegrity is matched by every *DataIntegrityError.
var ErrDataIntegrity = errors.New("data integrity error")

// DataIntegrityError identifies an input record that cannot be computed over.
type DataIntegrityError struct {
	Record string
	Reason string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity error: record %s: %s", e.Record, e.Reason)
}

func (e *DataIntegrityError) Is(target error) bool {
	return target == ErrDataIntegrity
}

// NewDataIntegrityError builds a DataIntegrityError with a formatted reason.
func NewDataIntegrityError(record string, format string, args ...any) *DataIntegrityError {
	return &DataIntegrityError{Record: record, Reason: fmt.Sprintf(format, args...)}
}
