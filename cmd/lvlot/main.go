// SPDX-License-Identifier: MIT

// Command lvlot is the command-line front end to the lvlot solvers.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/lvlot/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
		log.Error().Err(err).Msg("lvlot")
		os.Exit(1)
	}
}
