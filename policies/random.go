package policies

import (
	"time"

	erand "golang.org/x/exp/rand"

	"github.com/pfestor/matrix-mdp-go/core"
)

// RandomPolicy picks uniformly among the available actions.
type RandomPolicy struct {
	rand *erand.Rand
}

var _ core.Policy = &RandomPolicy{}

func NewRandomPolicy() *RandomPolicy {
	return &RandomPolicy{
		rand: erand.New(erand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

// NewSeededRandomPolicy fixes the action stream for reproducible runs.
func NewSeededRandomPolicy(seed uint64) *RandomPolicy {
	return &RandomPolicy{
		rand: erand.New(erand.NewSource(seed)),
	}
}

func (r *RandomPolicy) ResetEpisode(_ *core.EpisodeContext) {}

func (r *RandomPolicy) PickAction(_ *core.StepContext, _ core.State, actions []core.Action) core.Action {
	i := r.rand.Intn(len(actions))
	return actions[i]
}

func (r *RandomPolicy) UpdateStep(_ *core.StepContext, _ core.State, _ core.Action, _ core.Transition) {
}
