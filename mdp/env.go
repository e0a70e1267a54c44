// Package mdp implements a finite-state, finite-action Markov Decision
// Process environment defined entirely by matrices: an initial state
// distribution p0, a transition tensor p indexed (next state, state, action)
// and a reward matrix r indexed (state, action).
package mdp

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// Tolerance for the sum-to-one and sum-to-zero checks. The source matrices
// are caller supplied and accumulate floating point error, so exact
// equality is too fragile.
const distributionTolerance = 1e-9

const RenderModeHuman = "human"

// Observation is a single-element sequence holding the current state id.
type Observation []int

type Info map[string]interface{}

// ResetOptions carries the optional Reset inputs. An explicit StartState
// wins over the p0 draw and is used verbatim; no check that it is a legal
// state id is performed.
type ResetOptions struct {
	Seed       *uint64
	StartState *int
}

// Env is a matrix-defined MDP. The only mutable field is the current
// state; everything else is fixed at construction. A single Env holds one
// episode at a time and is not safe for concurrent use.
type Env struct {
	p0 *mat.VecDense
	// one (nStates x nStates) matrix per action, rows = next state,
	// cols = current state
	p []*mat.Dense
	r *mat.Dense

	nStates  int
	nActions int
	terminal map[int]bool

	state int

	renderMode string
	renderOut  io.Writer
	logger     *slog.Logger
	warnOnce   sync.Once

	src rand.Source
}

type EnvOption func(*Env)

// WithRenderMode configures rendering. The only recognized mode is
// RenderModeHuman; leaving it unset makes Render a no-op with a one-time
// warning.
func WithRenderMode(mode string) EnvOption {
	return func(e *Env) {
		e.renderMode = mode
	}
}

// WithRenderWriter redirects human-mode render output, stdout by default.
func WithRenderWriter(w io.Writer) EnvOption {
	return func(e *Env) {
		e.renderOut = w
	}
}

// WithRandSource replaces the time-seeded default source. A Reset seed
// overrides whatever source is installed.
func WithRandSource(src rand.Source) EnvOption {
	return func(e *Env) {
		e.src = src
	}
}

func WithLogger(logger *slog.Logger) EnvOption {
	return func(e *Env) {
		e.logger = logger
	}
}

// NewEnv validates the supplied matrices and builds the environment.
// Dimensions are taken from the tensor itself: nStates = len(p),
// nActions = len(p[0][0]). Shape consistency beyond that is the caller's
// responsibility; mismatches surface as index panics, not errors.
func NewEnv(p0 []float64, p [][][]float64, r [][]float64, opts ...EnvOption) (*Env, error) {
	nStates := len(p)
	nActions := len(p[0][0])

	e := &Env{
		p0:       mat.NewVecDense(len(p0), append([]float64(nil), p0...)),
		p:        make([]*mat.Dense, nActions),
		nStates:  nStates,
		nActions: nActions,
		terminal: make(map[int]bool),

		renderOut: os.Stdout,
		logger:    slog.Default(),
		src:       rand.NewSource(uint64(time.Now().UnixNano())),
	}

	// Repack the (next, state, action) tensor into per-action matrices so
	// that p[:, s, a] is column s of the action-a matrix.
	for a := 0; a < nActions; a++ {
		data := make([]float64, nStates*nStates)
		for next := 0; next < nStates; next++ {
			for s := 0; s < nStates; s++ {
				data[next*nStates+s] = p[next][s][a]
			}
		}
		e.p[a] = mat.NewDense(nStates, nStates, data)
	}

	rData := make([]float64, nStates*nActions)
	for s := 0; s < nStates; s++ {
		for a := 0; a < nActions; a++ {
			rData[s*nActions+a] = r[s][a]
		}
	}
	e.r = mat.NewDense(nStates, nActions, rData)

	if err := e.validate(); err != nil {
		return nil, err
	}
	e.deriveTerminalStates()

	for _, opt := range opts {
		opt(e)
	}

	// Like Reset without options: the environment starts in a state drawn
	// from p0, so Step works even before the first Reset.
	e.state = e.sampleIndex(e.p0.RawVector().Data)

	return e, nil
}

// validate enforces stochastic consistency: p0 sums to 1 and every
// (state, action) column of the transition tensor sums to 0 or 1. A
// zero column carries no outgoing mass (the absorbing convention).
func (e *Env) validate() error {
	if s := floats.Sum(e.p0.RawVector().Data); !sumIs(s, 1) {
		return &InvalidDistributionError{Kind: InitialDistribution, Sum: s}
	}
	col := make([]float64, e.nStates)
	for s := 0; s < e.nStates; s++ {
		for a := 0; a < e.nActions; a++ {
			mat.Col(col, s, e.p[a])
			sum := floats.Sum(col)
			if !sumIs(sum, 0) && !sumIs(sum, 1) {
				return &InvalidDistributionError{
					Kind:   TransitionDistribution,
					State:  s,
					Action: a,
					Sum:    sum,
				}
			}
		}
	}
	return nil
}

// deriveTerminalStates marks every state whose whole outgoing slice
// p[:, s, :] carries zero mass. Note the grouping differs from validate:
// validation accepts each column independently, so a state with one
// absorbing column and one stochastic column is valid yet non-terminal.
func (e *Env) deriveTerminalStates() {
	col := make([]float64, e.nStates)
	for s := 0; s < e.nStates; s++ {
		total := float64(0)
		for a := 0; a < e.nActions; a++ {
			mat.Col(col, s, e.p[a])
			total += floats.Sum(col)
		}
		if sumIs(total, 0) {
			e.terminal[s] = true
		}
	}
}

func sumIs(sum, want float64) bool {
	diff := sum - want
	return diff < distributionTolerance && diff > -distributionTolerance
}

// Reset starts a new episode. The start state is drawn from p0 unless
// opts provides an explicit override. A nil opts is valid.
func (e *Env) Reset(opts *ResetOptions) (Observation, Info) {
	if opts != nil && opts.Seed != nil {
		e.src = rand.NewSource(*opts.Seed)
	}

	start := e.sampleIndex(e.p0.RawVector().Data)
	if opts != nil && opts.StartState != nil {
		start = *opts.StartState
	}
	e.state = start

	if e.renderMode == RenderModeHuman {
		e.Render()
	}
	return e.observation(), Info{}
}

// Step applies action to the current state: draws the next state from
// the transition column p[:, state, action], collects the reward for
// entering the successor, r[next, action], and reports whether the
// successor is terminal. Terminated and truncated are reported
// identically. An out-of-range action panics; stepping from a terminal
// state returns ErrEpisodeDone.
func (e *Env) Step(action int) (Observation, float64, bool, bool, Info, error) {
	if e.terminal[e.state] {
		return nil, 0, false, false, nil, ErrEpisodeDone
	}

	weights := mat.Col(nil, e.state, e.p[action])
	newState, ok := sampleuv.NewWeighted(weights, e.src).Take()
	if !ok {
		// Unreachable for a validated tensor: the column sums to 1.
		return nil, 0, false, false, nil, fmt.Errorf(
			"no transition mass for state=%d action=%d", e.state, action,
		)
	}

	reward := e.r.At(newState, action)
	done := e.terminal[newState]
	e.state = newState

	if e.renderMode == RenderModeHuman {
		e.Render()
	}
	return e.observation(), reward, done, done, Info{}, nil
}

// Render prints the current state in human mode. Without a configured
// render mode it does nothing beyond a one-time warning.
func (e *Env) Render() {
	if e.renderMode == "" {
		e.warnOnce.Do(func() {
			e.logger.Warn(
				"render called without a render mode configured",
				"hint", `construct the environment with WithRenderMode("human")`,
			)
		})
		return
	}
	if e.renderMode == RenderModeHuman {
		fmt.Fprintf(e.renderOut, "Current state: %d\n", e.state)
	}
}

// Close releases nothing; the environment holds no external resources.
func (e *Env) Close() {}

func (e *Env) observation() Observation {
	return Observation{e.state}
}

func (e *Env) sampleIndex(weights []float64) int {
	idx, _ := sampleuv.NewWeighted(weights, e.src).Take()
	return idx
}

func (e *Env) NumStates() int {
	return e.nStates
}

func (e *Env) NumActions() int {
	return e.nActions
}

// State returns the current state id.
func (e *Env) State() int {
	return e.state
}

// TerminalStates returns the derived terminal state ids in ascending order.
func (e *Env) TerminalStates() []int {
	out := make([]int, 0, len(e.terminal))
	for s := range e.terminal {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

// ActionSpace describes the legal actions 0..nActions-1.
func (e *Env) ActionSpace() Discrete {
	return Discrete{N: e.nActions}
}

// ObservationSpace describes the state ids 0..nStates-1.
func (e *Env) ObservationSpace() Discrete {
	return Discrete{N: e.nStates}
}
