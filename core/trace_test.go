package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceAccumulates(t *testing.T) {
	trace := NewTrace()
	assert.Equal(t, 0, trace.Len())
	assert.Nil(t, trace.Last())
	assert.Equal(t, 0.0, trace.Return())
	assert.False(t, trace.Terminated())

	trace.AddStep(&Step{State: chainState{id: 0}, NextState: chainState{id: 1}, Reward: 0.5})
	trace.AddStep(&Step{State: chainState{id: 1}, NextState: chainState{id: 2}, Reward: 1.5, Terminated: true})

	assert.Equal(t, 2, trace.Len())
	assert.Equal(t, 2.0, trace.Return())
	assert.True(t, trace.Terminated())
	assert.Equal(t, "1", trace.Step(0).NextState.Hash())
	assert.Equal(t, "2", trace.Last().NextState.Hash())
}
