package analysis

import "github.com/pfestor/matrix-mdp-go/core"

type NoOpAnalyzer struct{}

var _ core.Analyzer = &NoOpAnalyzer{}

func NewNoOpAnalyzer() *NoOpAnalyzer {
	return &NoOpAnalyzer{}
}

func (n *NoOpAnalyzer) Analyze(_ *core.EpisodeContext, _ *core.Trace) {}

func (n *NoOpAnalyzer) DataSet() core.DataSet {
	return nil
}

func (n *NoOpAnalyzer) Reset() {}
