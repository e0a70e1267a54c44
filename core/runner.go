package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

var ErrTooManyErrors = errors.New("too many consecutive episode errors")

type RunConfig struct {
	Episodes       int
	Horizon        int
	EpisodeTimeout time.Duration

	ThresholdConsecutiveErrors int
}

func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		Episodes:                   100,
		Horizon:                    25,
		EpisodeTimeout:             10 * time.Second,
		ThresholdConsecutiveErrors: 20,
	}
}

type RunResult struct {
	CompletedEpisodes  int
	TotalEpisodes      int
	ErrorEpisodes      int
	TimeoutEpisodes    int
	TerminatedEpisodes int
	TruncatedEpisodes  int
	TotalTimeSteps     int

	Error    error
	Datasets map[string]DataSet
}

func (r *RunResult) IsError() bool {
	return r.Error != nil
}

// Runner drives a single Environment with a Policy, one episode at a time,
// feeding every finished trace to the registered analyzers.
type Runner struct {
	Name        string
	Environment Environment
	Policy      Policy

	analyzers map[string]Analyzer
	writer    io.Writer
}

func NewRunner(name string, env Environment, policy Policy) *Runner {
	return &Runner{
		Name:        name,
		Environment: env,
		Policy:      policy,
		analyzers:   make(map[string]Analyzer),
		writer:      io.Discard,
	}
}

func (r *Runner) AddAnalyzer(name string, a Analyzer) {
	r.analyzers[name] = a
}

// SetWriter directs per-episode progress lines to w.
func (r *Runner) SetWriter(w io.Writer) {
	r.writer = w
}

func (r *Runner) Run(ctx context.Context, config *RunConfig) *RunResult {
	result := &RunResult{
		Datasets: make(map[string]DataSet),
	}

	consecutiveErrors := 0
EpisodeLoop:
	for episode := 0; episode < config.Episodes; episode++ {
		select {
		case <-ctx.Done():
			result.Error = errors.New("context cancelled")
			break EpisodeLoop
		default:
		}

		fmt.Fprintf(
			r.writer,
			"Run: %s, Episode %d/%d, Timesteps: %d, Terminated: %d, Truncated: %d, Error: %d\n",
			r.Name, episode, config.Episodes, result.TotalTimeSteps, result.TerminatedEpisodes, result.TruncatedEpisodes, result.ErrorEpisodes,
		)

		timeoutCtx, timeoutCancel := context.WithTimeout(ctx, config.EpisodeTimeout)
		eCtx := NewEpisodeContext(timeoutCtx)
		eCtx.Episode = episode
		eCtx.Horizon = config.Horizon

		go r.runEpisode(eCtx)

		errorred := false
		timedout := false
		select {
		case <-eCtx.Done():
			errorred = eCtx.IsError()
		case <-timeoutCtx.Done():
			timedout = true
		}
		timeoutCancel()

		if errorred {
			result.ErrorEpisodes++
			if consecutiveErrors++; consecutiveErrors >= config.ThresholdConsecutiveErrors {
				result.Error = ErrTooManyErrors
				break EpisodeLoop
			}
		} else {
			consecutiveErrors = 0
		}
		if timedout {
			result.TimeoutEpisodes++
		}

		if !errorred && !timedout {
			result.CompletedEpisodes++
			result.TotalTimeSteps += eCtx.Trace.Len()
			if eCtx.Terminal {
				result.TerminatedEpisodes++
			} else if last := eCtx.Trace.Last(); last != nil && last.Truncated {
				result.TruncatedEpisodes++
			}
		}
		result.TotalEpisodes++

		for _, a := range r.analyzers {
			a.Analyze(eCtx, eCtx.Trace)
		}
	}

	if result.Error != nil {
		fmt.Fprintf(r.writer, "Run: %s, Error: %v\n", r.Name, result.Error)
	}

	for name, a := range r.analyzers {
		result.Datasets[name] = a.DataSet()
	}
	return result
}

func (r *Runner) runEpisode(eCtx *EpisodeContext) {
	r.Policy.ResetEpisode(eCtx)
	state, err := r.Environment.Reset(eCtx)
	if err != nil {
		eCtx.Error(err)
		return
	}
	for step := 0; step < eCtx.Horizon; step++ {
		select {
		case <-eCtx.Context.Done():
			eCtx.Error(eCtx.Context.Err())
			return
		default:
		}

		sCtx := &StepContext{Step: step, EpisodeContext: eCtx}
		action := r.Policy.PickAction(sCtx, state, state.Actions())
		transition, err := r.Environment.Step(action, sCtx)
		if errors.Is(err, ErrDone) {
			// The episode was already over, typically a terminal start
			// state: a clean zero-length terminated episode.
			eCtx.Terminal = true
			break
		}
		if err != nil {
			eCtx.Error(err)
			return
		}
		r.Policy.UpdateStep(sCtx, state, action, transition)
		eCtx.Trace.AddStep(&Step{
			State:      state,
			Action:     action,
			NextState:  transition.State,
			Reward:     transition.Reward,
			Terminated: transition.Terminated,
			Truncated:  transition.Truncated,
		})
		state = transition.State
		if transition.Done() {
			eCtx.Terminal = transition.Terminated
			break
		}
	}
	eCtx.Finish()
}
