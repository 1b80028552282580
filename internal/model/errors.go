package model

import "fmt"

// SchemaError reports a mismatch between the feature vector (or column
// set) and what the artifact was trained against. Predictions never fall
// back to a default on mismatch; the error surfaces to the caller.
type SchemaError struct {
	Detail string
	Want   int
	Got    int
}

func (e *SchemaError) Error() string {
	if e.Want != 0 || e.Got != 0 {
		return fmt.Sprintf("model schema mismatch: %s (want %d, got %d)", e.Detail, e.Want, e.Got)
	}
	return fmt.Sprintf("model schema mismatch: %s", e.Detail)
}
