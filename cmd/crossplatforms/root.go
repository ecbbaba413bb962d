// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Heleguo/CrossplatForms/cmd/crossplatforms/commands"
	"github.com/Heleguo/CrossplatForms/cmd/crossplatforms/opts"
)

// newRootCmd builds the command tree. Each call has its own flag state.
func newRootCmd() *cobra.Command {
	o := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "crossplatforms",
		Short: "Load, migrate and inspect CrossplatForms configuration",
		Long: `crossplatforms loads the versioned configuration files of a CrossplatForms
install, upgrading old files in place and falling back to defaults for files
that cannot be used.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if o.Debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	addRootFlags(cmd, o)

	cmd.AddCommand(
		commands.NewLoadCmd(o),
		commands.NewPrintCmd(o),
		commands.NewDefaultsCmd(o),
		commands.NewRestoreCmd(o),
		newVersionCmd(),
	)
	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.Dir, "dir", "C", ".", "config directory")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures the global zerolog logger
func setupLogging() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	l := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger()
	log.Logger = l
	zerolog.DefaultContextLogger = &l
}
