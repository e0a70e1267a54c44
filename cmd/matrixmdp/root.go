package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfestor/matrix-mdp-go/analysis"
	"github.com/pfestor/matrix-mdp-go/core"
	"github.com/pfestor/matrix-mdp-go/mdp"
	"github.com/pfestor/matrix-mdp-go/policies"
	"github.com/pfestor/matrix-mdp-go/util"
)

func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matrixmdp",
		Short: "Drive matrix-defined MDP episodes",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			UpdateFlags()
			flags.Record()
		},
	}
	AddFlags(cmd)

	cmd.AddCommand(
		RunCommand(),
	)

	return cmd
}

func RunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run random-policy episodes over a problem file",
		RunE: func(cmd *cobra.Command, args []string) error {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt)

			doneCh := make(chan struct{})

			ctx, cancel := context.WithCancel(context.Background())
			go func() {
				select {
				case <-sigCh:
				case <-doneCh:
				}
				cancel()
			}()
			defer close(doneCh)

			problem, err := mdp.LoadProblem(flags.ProblemPath)
			if err != nil {
				return err
			}

			envOpts := []mdp.EnvOption{}
			if flags.Render {
				envOpts = append(envOpts, mdp.WithRenderMode(mdp.RenderModeHuman))
			}
			env, err := problem.NewEnv(envOpts...)
			if err != nil {
				return err
			}
			defer env.Close()

			trajEnv := mdp.NewTrajectoryEnv(env)
			var policy core.Policy
			if flags.Seed != 0 {
				s := flags.Seed
				trajEnv.Seed = &s
				policy = policies.NewSeededRandomPolicy(flags.Seed)
			} else {
				policy = policies.NewRandomPolicy()
			}

			runner := core.NewRunner("random", trajEnv, policy)
			returns := analysis.NewReturnAnalyzer()
			runner.AddAnalyzer("returns", returns)

			progress := util.NewProgressWriter(100 * time.Millisecond)
			progress.Start(ctx)
			runner.SetWriter(progress)

			result := runner.Run(ctx, &core.RunConfig{
				Episodes:                   flags.Episodes,
				Horizon:                    flags.Horizon,
				EpisodeTimeout:             flags.EpisodeTimeout,
				ThresholdConsecutiveErrors: flags.MaxConsecutiveErrors,
			})
			progress.Stop()

			if err := util.SaveJson(path.Join(flags.SavePath, "returns.json"), result.Datasets["returns"]); err != nil {
				return err
			}
			slog.Info(
				"run finished",
				"episodes", result.TotalEpisodes,
				"completed", result.CompletedEpisodes,
				"terminated", result.TerminatedEpisodes,
				"truncated", result.TruncatedEpisodes,
				"errors", result.ErrorEpisodes,
				"timesteps", result.TotalTimeSteps,
			)
			return result.Error
		},
	}

	return cmd
}
