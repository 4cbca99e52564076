// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const defaultDebounce = 100 * time.Millisecond

func newWatchCommand(a *app) *cobra.Command {
	s := defaultSolveSettings()
	debounce := defaultDebounce
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Solve FILE and solve again every time it is saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runWatch(ctx, a, cmd.OutOrStdout(), args[0], s, changedFlags(cmd), debounce)
		},
	}
	s.bindFlags(cmd.Flags())
	cmd.Flags().DurationVar(&debounce, "debounce", debounce, "quiet period after a change before re-solving")

	return cmd
}

// runWatch solves once, then re-solves after each burst of writes to path
// until ctx ends. Solve failures are logged and do not stop the watch.
// The parent directory is watched so that editors replacing the file by
// rename are seen as a Create.
func runWatch(ctx context.Context, a *app, out io.Writer, path string, s solveSettings, changed map[string]bool, debounce time.Duration) error {
	if err := checkOutput(s.Output); err != nil {
		return err
	}
	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	solve := func() {
		if err := runSolve(a, out, path, s, changed); err != nil {
			a.log.Error().Err(err).Str("file", path).Msg("solve failed")
		}
	}
	solve()

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if name, _ := filepath.Abs(event.Name); name != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			a.log.Debug().Str("op", event.Op.String()).Msg("change detected")
			timer.Reset(debounce)

		case <-timer.C:
			solve()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.log.Warn().Err(err).Msg("watcher error")
		}
	}
}
