package common

import "fmt"

// InfeasibleConstraintError reports a caller-supplied constraint that no
// candidate can satisfy. Minimum carries the smallest value that would have
// produced a result so callers can relax the constraint instead of guessing.
type InfeasibleConstraintError struct {
	Constraint string  // e.g. "max_budget", "total_days"
	Minimum    float64 // smallest feasible value for the constraint
	Message    string
}

// Error implements the error interface
func (e *InfeasibleConstraintError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("constraint %s is infeasible, minimum achievable is %.2f", e.Constraint, e.Minimum)
}
