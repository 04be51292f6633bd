package pipeline

import (
	"fmt"
	"strings"
)

// ValidationError reports a candidate record with required fields missing.
// The record is dropped; no row reaches the store.
type ValidationError struct {
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.MissingFields, ", "))
}

// NormalizationError reports a field that could not be coerced to its
// canonical type. The record is dropped.
type NormalizationError struct {
	Field string
	Value string
	Err   error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalize %s=%q: %v", e.Field, e.Value, e.Err)
}

func (e *NormalizationError) Unwrap() error {
	return e.Err
}

// SchemaError reports that the store rejected table creation for a
// reason other than "already exists". Fatal: it aborts the whole run.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: %v", e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// PersistenceError reports that the store rejected an insert for a
// reason other than the expected duplicate id. Fatal for the record,
// not for the batch.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
