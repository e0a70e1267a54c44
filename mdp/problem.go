package mdp

import (
	"fmt"

	"github.com/pfestor/matrix-mdp-go/util"
)

// Problem is the on-disk JSON form of an MDP definition: the initial
// distribution, the (next, state, action) transition tensor and the
// (state, action) reward matrix.
type Problem struct {
	P0 []float64     `json:"p0"`
	P  [][][]float64 `json:"p"`
	R  [][]float64   `json:"r"`
}

func LoadProblem(path string) (*Problem, error) {
	p := &Problem{}
	if err := util.LoadJson(path, p); err != nil {
		return nil, fmt.Errorf("loading problem file: %w", err)
	}
	return p, nil
}

func (p *Problem) NewEnv(opts ...EnvOption) (*Env, error) {
	return NewEnv(p.P0, p.P, p.R, opts...)
}
