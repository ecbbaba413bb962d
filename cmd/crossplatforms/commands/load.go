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

package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/Heleguo/CrossplatForms/cmd/crossplatforms/opts"
	"github.com/Heleguo/CrossplatForms/pkg/config"
	"github.com/Heleguo/CrossplatForms/pkg/report"
)

// ErrUnusable is returned when a config file has neither content nor defaults
var ErrUnusable = errors.Base("configuration unusable")

// NewLoadCmd creates a new load command
func NewLoadCmd(o *opts.RootOpts) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load every config file, migrating and creating files as needed",
		Long: `Load runs the full startup sequence against the config directory.
It will:
1. Copy bundled templates for missing files
2. Upgrade old files, keeping an old_<file> backup
3. Map every file to its config type
4. Fall back to defaults for files that cannot be used`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := o.Manager(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			outcomes, ok := m.LoadAllReport(cmd.Context())
			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), report.Table(outcomes))
			}
			printSummary(cmd, outcomes, len(m.Descriptors()))
			if !ok {
				return ErrUnusable
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print the summary")
	return cmd
}

func printSummary(cmd *cobra.Command, outcomes []config.Outcome, total int) {
	f := report.NewDefaultFormatter()
	s := report.Summarize(outcomes)
	w := cmd.OutOrStdout()

	progress := f.FormatProgress(s.Usable(), total)
	switch {
	case s.Failed > 0:
		pterm.Error.WithWriter(w).Println(progress)
	case s.Defaults > 0:
		pterm.Warning.WithWriter(w).Printfln("%s, %d on defaults", progress, s.Defaults)
	default:
		pterm.Success.WithWriter(w).Println(progress)
	}
	if s.Migrated > 0 {
		pterm.Info.WithWriter(w).Printfln("%d file(s) migrated", s.Migrated)
	}
}
