package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateKey is returned under RejectDuplicates when two descriptors share a key.
	ErrDuplicateKey = errors.New("duplicate descriptor key")

	// ErrNilObject is reported when a Factory returns a nil object from Add.
	ErrNilObject = errors.New("factory returned nil object")

	// ErrAlreadyMapped is returned by Adopt for a key that already has an object.
	ErrAlreadyMapped = errors.New("key already mapped")

	errNoAddFunc = errors.New("OnAdd is not set")
)

// Op names the factory callback that failed.
type Op string

const (
	OpAdd    Op = "add"
	OpRemove Op = "remove"
	OpUpdate Op = "update"
)

// CallbackError is returned by Update when a Factory callback fails.
// Update is not transactional: steps that ran before the failure stay applied.
type CallbackError struct {
	// Op is the callback that failed.
	Op Op
	// Key is the key of the descriptor or object being processed.
	Key any
	// Err is the error returned by the callback.
	Err error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("%s %v: %v", e.Op, e.Key, e.Err)
}

func (e *CallbackError) Unwrap() error {
	return e.Err
}
