package mdp

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfestor/matrix-mdp-go/util"
)

func TestLoadProblemBuildsEnv(t *testing.T) {
	p0, p, r := twoStateChain()
	path := filepath.Join(t.TempDir(), "problem.json")
	require.NoError(t, util.SaveJson(path, Problem{P0: p0, P: p, R: r}))

	problem, err := LoadProblem(path)
	require.NoError(t, err)

	env, err := problem.NewEnv()
	require.NoError(t, err)
	assert.Equal(t, 2, env.NumStates())
	assert.Equal(t, 1, env.NumActions())
	assert.Equal(t, []int{1}, env.TerminalStates())
}

func TestLoadProblemMissingFile(t *testing.T) {
	_, err := LoadProblem(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
