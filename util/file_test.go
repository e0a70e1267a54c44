package util

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadJsonRoundTrip(t *testing.T) {
	type payload struct {
		Name  string    `json:"name"`
		Probs []float64 `json:"probs"`
	}

	// nested directory that does not exist yet
	path := filepath.Join(t.TempDir(), "results", "out.json")
	in := payload{Name: "chain", Probs: []float64{0.5, 0.5}}
	require.NoError(t, SaveJson(path, in))

	out := payload{}
	require.NoError(t, LoadJson(path, &out))
	assert.Equal(t, in, out)
}

func TestLoadJsonMissingFile(t *testing.T) {
	out := map[string]interface{}{}
	err := LoadJson(filepath.Join(t.TempDir(), "missing.json"), &out)
	assert.Error(t, err)
}
