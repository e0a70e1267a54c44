package core

import (
	"context"
	"errors"
)

// ErrDone signals that an environment cannot step because the episode
// already ended, for example when the start state itself is absorbing.
// Runners treat it as clean termination, not a failure; environments
// should wrap it in their own sentinel.
var ErrDone = errors.New("episode is done")

// Environment is one episodic trajectory source. A single Environment
// instance supports one episode at a time; concurrent episodes need
// independent instances.
type Environment interface {
	Reset(*EpisodeContext) (State, error)
	Step(Action, *StepContext) (Transition, error)
}

type State interface {
	Hash() string
	Actions() []Action
}

type Action interface {
	Hash() string
}

// Transition is the result of applying one action: the successor state,
// the scalar reward collected on the way, and the episode-end flags.
// Terminated reports landing in an absorbing state, Truncated an imposed
// cutoff; an environment may report both identically.
type Transition struct {
	State      State
	Reward     float64
	Terminated bool
	Truncated  bool
}

func (t Transition) Done() bool {
	return t.Terminated || t.Truncated
}

type EpisodeContext struct {
	Context context.Context
	Episode int
	Horizon int

	Trace *Trace

	// Terminal records that the episode ended in an absorbing state,
	// including a zero-length episode that started in one.
	Terminal bool

	err    error
	doneCh chan struct{}
}

func NewEpisodeContext(ctx context.Context) *EpisodeContext {
	return &EpisodeContext{
		Context: ctx,
		Trace:   NewTrace(),
		doneCh:  make(chan struct{}),
	}
}

func (e *EpisodeContext) Error(err error) {
	e.err = err
	close(e.doneCh)
}

func (e *EpisodeContext) Finish() {
	close(e.doneCh)
}

func (e *EpisodeContext) Err() error {
	return e.err
}

func (e *EpisodeContext) IsError() bool {
	return e.err != nil
}

func (e *EpisodeContext) Done() <-chan struct{} {
	return e.doneCh
}

type StepContext struct {
	Step int
	*EpisodeContext
}
