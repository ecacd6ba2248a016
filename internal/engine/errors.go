package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a dataset, model or result that does not exist.
	ErrNotFound = errors.New("engine: not found")
	// ErrNotFitted indicates an operation that needs a fitted model.
	ErrNotFitted = errors.New("engine: model is not fitted")
	// ErrProjectLocked indicates the project is held exclusively by another process.
	ErrProjectLocked = errors.New("engine: project is locked")
	// ErrClosed indicates use of a handle after its project was closed.
	ErrClosed = errors.New("engine: project is closed")
)

// IndexError reports a 1-based index outside 1..Max.
type IndexError struct {
	What  string
	Index int
	Max   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index %d out of range 1..%d", e.What, e.Index, e.Max)
}

// CheckIndex returns an *IndexError when index is outside 1..max.
func CheckIndex(what string, index, max int) error {
	if index < 1 || index > max {
		return &IndexError{What: what, Index: index, Max: max}
	}
	return nil
}
