package analysis

import "github.com/pfestor/matrix-mdp-go/core"

// EpisodeStats summarizes one finished episode.
type EpisodeStats struct {
	Episode    int     `json:"episode"`
	Return     float64 `json:"return"`
	Length     int     `json:"length"`
	Terminated bool    `json:"terminated"`
}

// ReturnAnalyzer accumulates per-episode returns and lengths.
type ReturnAnalyzer struct {
	episodes []EpisodeStats
}

var _ core.Analyzer = &ReturnAnalyzer{}

func NewReturnAnalyzer() *ReturnAnalyzer {
	return &ReturnAnalyzer{
		episodes: make([]EpisodeStats, 0),
	}
}

func (r *ReturnAnalyzer) Analyze(eCtx *core.EpisodeContext, trace *core.Trace) {
	r.episodes = append(r.episodes, EpisodeStats{
		Episode:    eCtx.Episode,
		Return:     trace.Return(),
		Length:     trace.Len(),
		Terminated: trace.Terminated(),
	})
}

func (r *ReturnAnalyzer) DataSet() core.DataSet {
	out := make([]EpisodeStats, len(r.episodes))
	copy(out, r.episodes)
	return out
}

func (r *ReturnAnalyzer) Reset() {
	r.episodes = make([]EpisodeStats, 0)
}
