package offset

import "fmt"

// NumericDegeneracyError reports an offset that collapsed numerically: a
// zero distance, or raw offset geometry that could not be resolved into
// simple closed loops within the iteration bound. No partial result is
// returned alongside it.
type NumericDegeneracyError struct {
	Reason string
}

func (e *NumericDegeneracyError) Error() string {
	return fmt.Sprintf("numeric degeneracy: %s", e.Reason)
}
