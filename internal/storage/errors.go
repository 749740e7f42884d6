package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageWrite matches every failed mutation. The mutation must be treated as not applied.
	ErrStorageWrite = errors.New("storage write failed")
	// ErrNotFound is returned when no record carries the requested id.
	ErrNotFound = errors.New("record not found")
)

// WriteError describes a mutation that did not commit.
type WriteError struct {
	Op  string // operation, e.g. "add cigar"
	Key string // medium key being written, empty for multi-key operations
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrStorageWrite) hold for every WriteError.
func (e *WriteError) Is(target error) bool {
	return target == ErrStorageWrite
}
