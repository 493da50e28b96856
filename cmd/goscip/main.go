/*
Copyright © 2026 the goscip authors

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command goscip solves optimization problems described in YAML files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/goscip/goscip"
)

var (
	verbose   bool
	timeLimit time.Duration
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info().Msg("interrupted, stopping solve")
		cancel()
	}()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "goscip",
		Short: "Mixed-integer programming from YAML problem files",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newSolveCommand())

	return rootCmd
}

func newSolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve <problem.yaml>",
		Short: "Solve a problem described in a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd.Context(), args[0])
		},
	}

	cmd.Flags().DurationVar(&timeLimit, "time-limit", 0, "abort the solve after this duration")

	return cmd
}

func runSolve(ctx context.Context, path string) error {
	problem, err := LoadProblem(path)
	if err != nil {
		return err
	}

	log.Debug().
		Str("name", problem.Name).
		Int("variables", len(problem.Variables)).
		Int("constraints", len(problem.Constraints)).
		Msg("loaded problem")

	opts := []goscip.Option{goscip.WithLogger(log.Logger)}
	if !verbose {
		opts = append(opts, goscip.WithParam("display/verblevel", 0))
	}

	model, names, err := problem.Build(opts...)
	if err != nil {
		return err
	}
	defer model.Close()

	if timeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeLimit)
		defer cancel()
	}

	start := time.Now()
	if err := model.SolveWithContext(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	log.Info().
		Stringer("status", model.Status()).
		Dur("elapsed", time.Since(start)).
		Msg("solve finished")

	fmt.Printf("status: %v\n", model.Status())

	obj, err := model.ObjValue()
	if err != nil {
		return nil // no solution to report
	}
	fmt.Printf("objective: %g\n", obj)

	values, err := model.VarValues()
	if err != nil {
		return err
	}
	for i, name := range names {
		fmt.Printf("%s = %g\n", name, values[i])
	}

	return nil
}
