package mdp

import (
	"fmt"
	"strconv"

	"github.com/pfestor/matrix-mdp-go/core"
)

// EnvState is a core.State carrying one MDP state id. Every action is
// legal in every state by construction of the transition tensor.
type EnvState struct {
	ID       int
	nActions int
}

var _ core.State = EnvState{}

func (s EnvState) Hash() string {
	return strconv.Itoa(s.ID)
}

func (s EnvState) Actions() []core.Action {
	actions := make([]core.Action, s.nActions)
	for a := 0; a < s.nActions; a++ {
		actions[a] = EnvAction(a)
	}
	return actions
}

type EnvAction int

var _ core.Action = EnvAction(0)

func (a EnvAction) Hash() string {
	return strconv.Itoa(int(a))
}

// TrajectoryEnv adapts an *Env to the core.Environment harness contract.
type TrajectoryEnv struct {
	env *Env

	// Seed, when set, reseeds the underlying environment on every Reset
	// so repeated runs replay the same trajectories.
	Seed *uint64
}

var _ core.Environment = &TrajectoryEnv{}

func NewTrajectoryEnv(env *Env) *TrajectoryEnv {
	return &TrajectoryEnv{env: env}
}

func (t *TrajectoryEnv) Reset(_ *core.EpisodeContext) (core.State, error) {
	obs, _ := t.env.Reset(&ResetOptions{Seed: t.Seed})
	return EnvState{ID: obs[0], nActions: t.env.NumActions()}, nil
}

func (t *TrajectoryEnv) Step(action core.Action, _ *core.StepContext) (core.Transition, error) {
	a, ok := action.(EnvAction)
	if !ok {
		return core.Transition{}, fmt.Errorf("unexpected action type %T", action)
	}
	obs, reward, terminated, truncated, _, err := t.env.Step(int(a))
	if err != nil {
		return core.Transition{}, err
	}
	return core.Transition{
		State:      EnvState{ID: obs[0], nActions: t.env.NumActions()},
		Reward:     reward,
		Terminated: terminated,
		Truncated:  truncated,
	}, nil
}
