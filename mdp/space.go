package mdp

import "golang.org/x/exp/rand"

// Discrete is a space of N outcomes indexed 0..N-1.
type Discrete struct {
	N int
}

func (d Discrete) Contains(x int) bool {
	return x >= 0 && x < d.N
}

// Sample draws an outcome uniformly at random.
func (d Discrete) Sample(src rand.Source) int {
	return rand.New(src).Intn(d.N)
}
