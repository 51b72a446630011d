package engine

import (
	"errors"
	"fmt"
)

// LoadErrorKind classifies why a dataset could not be loaded.
type LoadErrorKind string

const (
	LoadErrFetch  LoadErrorKind = "fetch"
	LoadErrSchema LoadErrorKind = "schema"
	LoadErrParse  LoadErrorKind = "parse"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrNullValue     = errors.New("null value in required column")
)

// LoadError is returned by the loader for any failure to produce a dataset.
type LoadError struct {
	Kind   LoadErrorKind
	Source string
	// Row is the 1-based data row (header excluded) the error refers to, 0 if unknown.
	Row int
	Err error
}

func (e *LoadError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("load %s: %s error at row %d: %v", e.Source, e.Kind, e.Row, e.Err)
	}
	return fmt.Sprintf("load %s: %s error: %v", e.Source, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
