package mdp

import (
	"errors"
	"fmt"

	"github.com/pfestor/matrix-mdp-go/core"
)

// ErrEpisodeDone is returned by Step when the current state is terminal.
// A terminal state has zero outgoing probability mass, so there is no
// distribution to draw the next state from; callers must Reset before
// stepping again. It wraps core.ErrDone so runners recognize it as clean
// termination rather than a failure.
var ErrEpisodeDone = fmt.Errorf("current state is terminal, Reset before calling Step: %w", core.ErrDone)

// DistributionKind says which input distribution failed validation.
type DistributionKind string

const (
	InitialDistribution    DistributionKind = "initial"
	TransitionDistribution DistributionKind = "transition"
)

// InvalidDistributionError reports a stochastic-consistency failure found
// at construction: the initial distribution must sum to 1 and every
// (state, action) transition column must sum to 0 or 1, within tolerance.
type InvalidDistributionError struct {
	Kind   DistributionKind
	State  int
	Action int
	Sum    float64
}

func (e *InvalidDistributionError) Error() string {
	if e.Kind == InitialDistribution {
		return fmt.Sprintf("initial state distribution sums to %v, want 1", e.Sum)
	}
	return fmt.Sprintf(
		"transition probabilities sum to %v for state=%d action=%d, want 0 or 1",
		e.Sum, e.State, e.Action,
	)
}

// IsInvalidDistribution reports whether err is an InvalidDistributionError,
// unwrapping as needed.
func IsInvalidDistribution(err error) bool {
	var de *InvalidDistributionError
	return errors.As(err, &de)
}
