package normalize

import "fmt"

// ValidationError reports malformed primitive input, such as a hex string of the
// wrong length or a color channel outside [0,1]. Functions returning it produce no
// partial output.
type ValidationError struct {
	Op     string // the normalizer that rejected the input
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid input %q: %s", e.Op, e.Input, e.Reason)
}
