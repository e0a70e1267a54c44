package policies

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pfestor/matrix-mdp-go/core"
)

type idState int

func (s idState) Hash() string { return strconv.Itoa(int(s)) }

func (s idState) Actions() []core.Action { return nil }

type idAction int

func (a idAction) Hash() string { return strconv.Itoa(int(a)) }

func actionList(n int) []core.Action {
	actions := make([]core.Action, n)
	for i := range actions {
		actions[i] = idAction(i)
	}
	return actions
}

func TestRandomPolicyPicksLegalActions(t *testing.T) {
	policy := NewRandomPolicy()
	actions := actionList(4)
	for i := 0; i < 100; i++ {
		picked := policy.PickAction(nil, idState(0), actions)
		assert.Contains(t, actions, picked)
	}
}

func TestSeededRandomPolicyIsDeterministic(t *testing.T) {
	actions := actionList(5)
	a := NewSeededRandomPolicy(11)
	b := NewSeededRandomPolicy(11)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.PickAction(nil, idState(0), actions), b.PickAction(nil, idState(0), actions))
	}
}

func TestFixedPolicyReplaysSequence(t *testing.T) {
	actions := actionList(3)
	policy := NewFixedPolicy(2, 0, 1)

	picked := make([]core.Action, 0, 4)
	for i := 0; i < 4; i++ {
		picked = append(picked, policy.PickAction(nil, idState(0), actions))
	}
	// wraps around after the sequence ends
	assert.Equal(t, []core.Action{idAction(2), idAction(0), idAction(1), idAction(2)}, picked)

	policy.ResetEpisode(nil)
	assert.Equal(t, idAction(2), policy.PickAction(nil, idState(0), actions))
}
