// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app is the state shared by all subcommands of one invocation.
type app struct {
	logLevel string
	log      zerolog.Logger
}

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}

	return "dev"
}

// NewRootCommand assembles the lvlot command tree. Output goes to the
// command's Out writer, logs to its Err writer.
func NewRootCommand() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "lvlot",
		Short:         "Entropic optimal transport solvers",
		Long:          "lvlot solves discrete optimal transport problems with Sinkhorn-type\nentropic solvers and an exact network-flow solver.",
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := newLogger(cmd.ErrOrStderr(), a.logLevel)
			if err != nil {
				return err
			}
			a.log = log

			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error, disabled)")

	root.AddCommand(
		newSolveCommand(a),
		newExactCommand(a),
		newCostCommand(a),
		newGenCommand(a),
		newWatchCommand(a),
	)

	return root
}
