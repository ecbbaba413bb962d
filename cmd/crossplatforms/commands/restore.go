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
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Heleguo/CrossplatForms/cmd/crossplatforms/opts"
	"github.com/Heleguo/CrossplatForms/pkg/store"
)

// NewRestoreCmd creates a new restore command
func NewRestoreCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file>",
		Short: "Put back the pre-migration backup of a config file",
		Long: `Restore copies old_<file> over <file> and removes the backup. The next
load migrates the restored file again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := findDescriptor(args[0]); err != nil {
				return err
			}
			if err := o.Store().Restore(cmd.Context(), args[0]); err != nil {
				return err
			}
			pterm.Success.WithWriter(cmd.OutOrStdout()).WithPrefix(pterm.Prefix{Text: "♻️"}).
				Printfln("Restored %s from %s", args[0], store.BackupName(args[0]))
			return nil
		},
	}
}
