package core

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chainState struct {
	id int
}

func (s chainState) Hash() string { return strconv.Itoa(s.id) }

func (s chainState) Actions() []Action {
	return []Action{chainAction(0)}
}

type chainAction int

func (a chainAction) Hash() string { return strconv.Itoa(int(a)) }

// chainEnv walks 0 -> 1 -> ... -> length and terminates at length with
// reward 1; intermediate steps pay 0.
type chainEnv struct {
	length int
	pos    int
}

func (c *chainEnv) Reset(_ *EpisodeContext) (State, error) {
	c.pos = 0
	return chainState{id: 0}, nil
}

func (c *chainEnv) Step(_ Action, _ *StepContext) (Transition, error) {
	c.pos++
	terminated := c.pos == c.length
	reward := float64(0)
	if terminated {
		reward = 1
	}
	return Transition{
		State:      chainState{id: c.pos},
		Reward:     reward,
		Terminated: terminated,
		Truncated:  terminated,
	}, nil
}

// doneEnv starts every episode in a state that is already absorbing, so
// the first Step reports the episode as over.
type doneEnv struct{}

func (doneEnv) Reset(_ *EpisodeContext) (State, error) {
	return chainState{id: 0}, nil
}

func (doneEnv) Step(_ Action, _ *StepContext) (Transition, error) {
	return Transition{}, fmt.Errorf("nothing to step: %w", ErrDone)
}

type failingEnv struct{}

func (failingEnv) Reset(_ *EpisodeContext) (State, error) {
	return chainState{id: 0}, nil
}

func (failingEnv) Step(_ Action, _ *StepContext) (Transition, error) {
	return Transition{}, errors.New("broken dynamics")
}

type firstPolicy struct{}

func (firstPolicy) ResetEpisode(_ *EpisodeContext) {}

func (firstPolicy) PickAction(_ *StepContext, _ State, actions []Action) Action {
	return actions[0]
}

func (firstPolicy) UpdateStep(_ *StepContext, _ State, _ Action, _ Transition) {}

type countingAnalyzer struct {
	episodes int
	steps    int
}

func (c *countingAnalyzer) Analyze(_ *EpisodeContext, trace *Trace) {
	c.episodes++
	c.steps += trace.Len()
}

func (c *countingAnalyzer) DataSet() DataSet { return c.episodes }

func (c *countingAnalyzer) Reset() { c.episodes = 0; c.steps = 0 }

func testRunConfig(episodes, horizon int) *RunConfig {
	return &RunConfig{
		Episodes:                   episodes,
		Horizon:                    horizon,
		EpisodeTimeout:             5 * time.Second,
		ThresholdConsecutiveErrors: 3,
	}
}

func TestRunnerTerminatesEpisodes(t *testing.T) {
	runner := NewRunner("chain", &chainEnv{length: 3}, firstPolicy{})
	analyzer := &countingAnalyzer{}
	runner.AddAnalyzer("count", analyzer)

	result := runner.Run(context.Background(), testRunConfig(10, 25))

	require.False(t, result.IsError())
	assert.Equal(t, 10, result.TotalEpisodes)
	assert.Equal(t, 10, result.CompletedEpisodes)
	assert.Equal(t, 10, result.TerminatedEpisodes)
	assert.Equal(t, 30, result.TotalTimeSteps)
	assert.Equal(t, 10, analyzer.episodes)
	assert.Equal(t, 30, analyzer.steps)
	assert.Equal(t, 10, result.Datasets["count"])
}

func TestRunnerHonorsHorizon(t *testing.T) {
	// chain longer than the horizon: episodes stop at the step limit
	// without reaching the terminal state.
	runner := NewRunner("chain", &chainEnv{length: 100}, firstPolicy{})

	result := runner.Run(context.Background(), testRunConfig(2, 5))

	require.False(t, result.IsError())
	assert.Equal(t, 2, result.CompletedEpisodes)
	assert.Equal(t, 0, result.TerminatedEpisodes)
	assert.Equal(t, 10, result.TotalTimeSteps)
}

func TestRunnerTreatsDoneAsCleanTermination(t *testing.T) {
	runner := NewRunner("done", doneEnv{}, firstPolicy{})
	analyzer := &countingAnalyzer{}
	runner.AddAnalyzer("count", analyzer)

	result := runner.Run(context.Background(), testRunConfig(5, 10))

	require.False(t, result.IsError())
	assert.Equal(t, 5, result.TotalEpisodes)
	assert.Equal(t, 5, result.CompletedEpisodes)
	assert.Equal(t, 5, result.TerminatedEpisodes)
	assert.Equal(t, 0, result.ErrorEpisodes)
	assert.Equal(t, 0, result.TotalTimeSteps)
	assert.Equal(t, 5, analyzer.episodes)
	assert.Equal(t, 0, analyzer.steps)
}

func TestRunnerStopsAfterConsecutiveErrors(t *testing.T) {
	runner := NewRunner("failing", failingEnv{}, firstPolicy{})

	result := runner.Run(context.Background(), testRunConfig(10, 5))

	require.True(t, result.IsError())
	assert.ErrorIs(t, result.Error, ErrTooManyErrors)
	assert.Equal(t, 3, result.ErrorEpisodes)
	assert.Equal(t, 0, result.CompletedEpisodes)
}

func TestRunnerStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner("chain", &chainEnv{length: 3}, firstPolicy{})
	result := runner.Run(ctx, testRunConfig(10, 5))

	require.True(t, result.IsError())
	assert.Equal(t, 0, result.TotalEpisodes)
}
