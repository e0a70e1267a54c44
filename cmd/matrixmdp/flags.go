package main

import (
	"path"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfestor/matrix-mdp-go/util"
)

type Flags struct {
	ProblemPath string
	SavePath    string
	Render      bool
	Seed        uint64

	Episodes             int
	Horizon              int
	MaxConsecutiveErrors int
	EpisodeTimeout       time.Duration
}

func DefaultFlags() *Flags {
	return &Flags{
		ProblemPath: "problem.json",
		SavePath:    "results",
		Render:      false,
		Seed:        0,

		Episodes:             100,
		Horizon:              25,
		MaxConsecutiveErrors: 20,
		EpisodeTimeout:       10 * time.Second,
	}
}

func (f *Flags) Record() {
	util.SaveJson(path.Join(f.SavePath, "config.json"), f)
}

var (
	flags *Flags = DefaultFlags()

	problemPath string
	savePath    string
	render      bool
	seed        uint64

	episodes             int
	horizon              int
	maxConsecutiveErrors int
	episodeTimeout       int
)

func AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&problemPath, "problem", flags.ProblemPath, "Path to the MDP problem JSON file")
	cmd.PersistentFlags().StringVar(&savePath, "save-path", flags.SavePath, "Path to save results")
	cmd.PersistentFlags().BoolVar(&render, "render", flags.Render, "Print the current state after every transition")
	cmd.PersistentFlags().Uint64Var(&seed, "seed", flags.Seed, "Seed for the environment and policy (0 uses the clock)")

	cmd.PersistentFlags().IntVar(&episodes, "episodes", flags.Episodes, "Number of episodes")
	cmd.PersistentFlags().IntVar(&horizon, "horizon", flags.Horizon, "Maximum steps per episode")
	cmd.PersistentFlags().IntVar(&maxConsecutiveErrors, "max-consecutive-errors", flags.MaxConsecutiveErrors, "Maximum number of consecutive episode errors")
	cmd.PersistentFlags().IntVar(&episodeTimeout, "episode-timeout", int(flags.EpisodeTimeout.Seconds()), "Episode timeout in seconds")
}

func UpdateFlags() {
	flags.ProblemPath = problemPath
	flags.SavePath = savePath
	flags.Render = render
	flags.Seed = seed

	flags.Episodes = episodes
	flags.Horizon = horizon
	flags.MaxConsecutiveErrors = maxConsecutiveErrors
	flags.EpisodeTimeout = time.Duration(episodeTimeout) * time.Second
}
