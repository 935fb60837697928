package dataset

import "fmt"

// LoadError is returned by Loader.Load when the dataset could not be fetched
// or parsed. Callers keep serving the previous dataset.
type LoadError struct {
	Op     string // open, read or parse
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("dataset %s %s: %v", e.Op, e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
