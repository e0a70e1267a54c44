package core

// Policy picks the next action for a trajectory. Policies here only drive
// environments; none of them learn.
type Policy interface {
	ResetEpisode(*EpisodeContext)
	PickAction(*StepContext, State, []Action) Action
	UpdateStep(*StepContext, State, Action, Transition)
}

type DataSet interface{}

// Analyzer consumes finished episode traces and accumulates a DataSet.
type Analyzer interface {
	Analyze(*EpisodeContext, *Trace)
	DataSet() DataSet
	Reset()
}
