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
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/Heleguo/CrossplatForms/cmd/crossplatforms/opts"
	"github.com/Heleguo/CrossplatForms/pkg/config"
	"github.com/Heleguo/CrossplatForms/pkg/forms"
	"github.com/Heleguo/CrossplatForms/pkg/node"
)

// NewDefaultsCmd creates a new defaults command
func NewDefaultsCmd(o *opts.RootOpts) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "defaults <file>",
		Short: "Print the built-in defaults of a config file",
		Long: `Defaults encodes the object a config file falls back to when it cannot be
loaded, stamped with the current version. Use --format to print it as yml,
json or hcl.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := findDescriptor(args[0])
			if err != nil {
				return err
			}
			tree, err := d.DefaultTree(forms.NewRegistry())
			if err != nil {
				return err
			}

			name := d.FileName()
			if format != "" {
				name = "defaults." + format
			}
			data, err := node.Serialize(name, tree.Root())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: yml, json or hcl")
	return cmd
}

func findDescriptor(file string) (*config.Descriptor, error) {
	var known []string
	for _, d := range forms.Descriptors() {
		if d.FileName() == file {
			return d, nil
		}
		known = append(known, d.FileName())
	}
	return nil, errors.Errorf("unknown config file %q (expected one of: %v)", file, known)
}
