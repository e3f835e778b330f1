package domain

import "errors"

// ErrInvalidParameter reports a violated precondition. It is raised before
// any simulation work starts; a call that returns it produced no result.
var ErrInvalidParameter = errors.New("invalid parameter")

// ErrStepLimit reports that a walk exceeded its configured step cap.
// Valid configurations terminate with probability 1, so this only fires
// when a caller opts into a cap and sets it too low.
var ErrStepLimit = errors.New("step limit exceeded")

// Tally counts walks by the boundary that absorbed them. The two slots are
// indexed by role, not by boundary value, so a run where every walk ends at
// one boundary still yields an explicit zero for the other.
type Tally struct {
	Lower int
	Upper int
}

// Total returns the number of walks recorded in the tally.
func (t Tally) Total() int {
	return t.Lower + t.Upper
}

// Result holds the outcome of an absorption estimate.
type Result struct {
	Name        string
	Probability float64
	Start       int
	LowerBound  int
	UpperBound  int
	Bias        float64
	Walks       int
	Tally       Tally
	Details     map[string]interface{}
}
