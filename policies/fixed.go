package policies

import "github.com/pfestor/matrix-mdp-go/core"

// FixedPolicy replays a fixed sequence of action indices, restarting from
// the beginning on every episode. Steps past the end of the sequence wrap
// around. Used to pin trajectories in tests and demos.
type FixedPolicy struct {
	sequence []int
	pos      int
}

var _ core.Policy = &FixedPolicy{}

func NewFixedPolicy(sequence ...int) *FixedPolicy {
	return &FixedPolicy{sequence: sequence}
}

func (f *FixedPolicy) ResetEpisode(_ *core.EpisodeContext) {
	f.pos = 0
}

func (f *FixedPolicy) PickAction(_ *core.StepContext, _ core.State, actions []core.Action) core.Action {
	i := f.sequence[f.pos%len(f.sequence)]
	f.pos++
	return actions[i]
}

func (f *FixedPolicy) UpdateStep(_ *core.StepContext, _ core.State, _ core.Action, _ core.Transition) {
}
