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
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/Heleguo/CrossplatForms/cmd/crossplatforms/opts"
	"github.com/Heleguo/CrossplatForms/pkg/node"
	"github.com/Heleguo/CrossplatForms/pkg/pretty"
)

const parseWorkers = 4

// NewPrintCmd creates a new print command
func NewPrintCmd(o *opts.RootOpts) *cobra.Command {
	var indent int

	cmd := &cobra.Command{
		Use:   "print <glob>...",
		Short: "Pretty print the node tree of config files",
		Long: `Print parses every file in the config directory matching the given
globs and renders its node tree. Globs support ** and are relative to the
config directory.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := matchFiles(o.Dir, args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return errors.Errorf("no files match %v", args)
			}

			trees := make([]*node.Tree, len(files))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(parseWorkers)
			for i, name := range files {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					data, err := o.Store().ReadFile(ctx, name)
					if err != nil {
						return err
					}
					tree, err := node.Parse(name, data)
					if err != nil {
						return err
					}
					trees[i] = tree
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			p := pretty.New(pretty.WithIndent(indent))
			w := cmd.OutOrStdout()
			for i, name := range files {
				fmt.Fprintf(w, "── %s ──\n%s\n", name, p.RenderNode(trees[i].Root()))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&indent, "indent", 2, "spaces per nesting level")
	return cmd
}

// matchFiles expands patterns against dir, sorted and without duplicates
func matchFiles(dir string, patterns []string) ([]string, error) {
	fsys := os.DirFS(dir)
	var out []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", pattern, err)
		}
		out = append(out, matches...)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}
