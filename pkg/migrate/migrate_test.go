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

package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/Heleguo/CrossplatForms/pkg/node"
	"github.com/Heleguo/CrossplatForms/pkg/text"
)

func parse(t *testing.T, src string) *node.Tree {
	t.Helper()
	tree, err := node.Parse("menu.conf", []byte(src))
	require.NoError(t, err)
	return tree
}

func menuChain() *Chain {
	return NewChain(
		Rename("menus", "forms").Step(2, "rename menus to forms"),
		ReplaceText(text.ReplacementRule{FromText: "%player%", ToText: "%player_name%", PathGlob: "forms/**"}).
			Step(3, "rename player placeholder"),
	)
}

// 🧪 TestRunStates tests the version state machine
func TestRunStates(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		target    Target
		wantState State
		wantFrom  int
		wantTo    int
		checkErr  func(t *testing.T, err error)
	}{
		{
			name:      "up_to_date",
			src:       "version: 3\nforms: {}\n",
			target:    Target{Current: 3, Minimum: 1, Chain: menuChain()},
			wantState: UpToDate,
			wantFrom:  3,
			wantTo:    3,
		},
		{
			name:      "unversioned",
			src:       "forms: {}\n",
			target:    Target{Current: 3, Minimum: 1, Chain: menuChain()},
			wantState: Unversioned,
			checkErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMissingVersion)
			},
		},
		{
			name:      "null_version",
			src:       "version:\n",
			target:    Target{Current: 3, Minimum: 1, Chain: menuChain()},
			wantState: Unversioned,
			checkErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMissingVersion)
			},
		},
		{
			name:      "fractional_version",
			src:       "version: 2.5\n",
			target:    Target{Current: 3, Minimum: 1, Chain: menuChain()},
			wantState: Unversioned,
			checkErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrInvalidVersion)
				assert.NotErrorIs(t, err, ErrMissingVersion)
			},
		},
		{
			name:      "text_version",
			src:       "version: two\n",
			target:    Target{Current: 3, Minimum: 1, Chain: menuChain()},
			wantState: Unversioned,
			checkErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrInvalidVersion)
			},
		},
		{
			name:      "whole_float_version",
			src:       "version: 3.0\n",
			target:    Target{Current: 3, Minimum: 1, Chain: menuChain()},
			wantState: UpToDate,
			wantFrom:  3,
			wantTo:    3,
		},
		{
			name:      "below_minimum",
			src:       "version: 0\n",
			target:    Target{Current: 3, Minimum: 1, Chain: menuChain()},
			wantState: VersionMismatchFatal,
			checkErr: func(t *testing.T, err error) {
				var oor *VersionOutOfRangeError
				require.ErrorAs(t, err, &oor)
				assert.Equal(t, 0, oor.Version)
				assert.Contains(t, err.Error(), "between 1 and 3")
			},
		},
		{
			name:      "above_current",
			src:       "version: 4\n",
			target:    Target{Current: 3, Minimum: 1, Chain: menuChain()},
			wantState: VersionMismatchFatal,
			wantFrom:  4,
			wantTo:    4,
			checkErr: func(t *testing.T, err error) {
				var oor *VersionOutOfRangeError
				assert.ErrorAs(t, err, &oor)
			},
		},
		{
			name:      "no_chain",
			src:       "version: 2\n",
			target:    Target{Current: 3, Minimum: 1},
			wantState: VersionMismatchFatal,
			wantFrom:  2,
			wantTo:    2,
			checkErr: func(t *testing.T, err error) {
				var oor *VersionOutOfRangeError
				require.ErrorAs(t, err, &oor)
				assert.False(t, oor.Migratable)
			},
		},
		{
			name:      "applied",
			src:       "version: 1\nmenus: {}\n",
			target:    Target{Current: 3, Minimum: 1, Chain: menuChain()},
			wantState: MigrationApplied,
			wantFrom:  1,
			wantTo:    3,
		},
		{
			name:      "gap_in_chain",
			src:       "version: 1\n",
			target:    Target{Current: 3, Minimum: 1, Chain: NewChain(Step{To: 3})},
			wantState: MigrationFailed,
			wantFrom:  1,
			wantTo:    1,
			checkErr: func(t *testing.T, err error) {
				var incomplete *MigrationIncompleteError
				require.ErrorAs(t, err, &incomplete)
				assert.ErrorIs(t, err, ErrMigrationNoOp, "no step ran")
			},
		},
		{
			name:      "partial_chain",
			src:       "version: 1\n",
			target:    Target{Current: 3, Minimum: 1, Chain: NewChain(Step{To: 2})},
			wantState: MigrationFailed,
			wantFrom:  1,
			wantTo:    2,
			checkErr: func(t *testing.T, err error) {
				var incomplete *MigrationIncompleteError
				require.ErrorAs(t, err, &incomplete)
				assert.False(t, errors.Is(err, ErrMigrationNoOp))
			},
		},
		{
			name: "step_error",
			src:  "version: 1\n",
			target: Target{Current: 2, Minimum: 1, Chain: NewChain(Step{To: 2, Apply: func(node.Node) error {
				return errors.New("boom")
			}})},
			wantState: MigrationFailed,
			wantFrom:  1,
			wantTo:    1,
			checkErr: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "boom")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parse(t, tt.src)
			res, err := Run(tree.Root(), tt.target)
			require.NotNil(t, res)
			assert.Equal(t, tt.wantState, res.State, "state")
			assert.Equal(t, tt.wantState.Fatal(), err != nil, "errors accompany fatal states only")
			assert.Equal(t, tt.wantFrom, res.From, "from")
			assert.Equal(t, tt.wantTo, res.To, "to")
			if tt.checkErr != nil {
				tt.checkErr(t, err)
			}
		})
	}
}

// 🧪 TestRunKeepsSnapshot tests that the snapshot holds the pre-migration tree
func TestRunKeepsSnapshot(t *testing.T) {
	src := "version: 1\nmenus:\n  main:\n    title: Hi %player%\n"
	tree := parse(t, src)
	original := parse(t, src)

	res, err := Run(tree.Root(), Target{Current: 3, Minimum: 1, Chain: menuChain()})
	require.NoError(t, err)
	require.True(t, res.Changed())
	require.NotNil(t, res.Snapshot)

	assert.True(t, node.Equal(original.Root(), res.Snapshot.Root()), "snapshot is the untouched input")
	assert.Equal(t, 3, tree.Root().Child("version").Raw())
	assert.Equal(t, "Hi %player_name%", tree.Root().Child("forms", "main", "title").Raw())
	assert.True(t, tree.Root().Child("menus").IsVirtual())
	require.Len(t, res.Steps, 2)
	assert.Equal(t, "rename menus to forms", res.Steps[0].Description)
	assert.Equal(t, 2, res.Steps[1].From)
}

// 🧪 TestVersionOnlyChain tests that a chain of bare version bumps counts as applied
func TestVersionOnlyChain(t *testing.T) {
	tree := parse(t, "version: 1\nkeep: me\n")
	res, err := Run(tree.Root(), Target{Current: 2, Minimum: 1, Chain: NewChain(Step{To: 2})})
	require.NoError(t, err)
	assert.Equal(t, MigrationApplied, res.State)
	assert.True(t, res.Changed())
	assert.Equal(t, "me", tree.Root().Child("keep").Raw())
}

// 🧪 TestChainStartsMidway tests that steps at or below the tree's version are skipped
func TestChainStartsMidway(t *testing.T) {
	var ran []int
	step := func(to int) Step {
		return Step{To: to, Apply: func(node.Node) error { ran = append(ran, to); return nil }}
	}
	tree := parse(t, "version: 2\n")
	res, err := Run(tree.Root(), Target{Current: 4, Minimum: 1, Chain: NewChain(step(4), step(2), step(3))})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, ran)
	assert.Equal(t, 4, res.To)
}

// 🧪 TestTransforms tests the tree transform helpers
func TestTransforms(t *testing.T) {
	src := `forms:
  main:
    buttons:
      - text: a
        command: say a
      - text: b
general:
  prefix: "%player%"
`
	tree := parse(t, src)
	root := tree.Root()

	err := All(
		Each("forms", Each("buttons", Move("command", "actions.0.commands.0"))),
		SetIfAbsent("general.debug", false),
		SetIfAbsent("general.prefix", "ignored"),
		At("general", Rename("prefix", "placeholder")),
		At("nowhere", Remove("anything")),
		Remove("forms.main.buttons.1"),
		Rename("missing", "whatever"),
		Move("missing", "elsewhere"),
		ReplaceText(text.ReplacementRule{FromText: "%player%", ToText: "%p%", PathGlob: "forms/**"}),
	)(root)
	require.NoError(t, err)

	assert.Equal(t, "say a", root.Child("forms", "main", "buttons", 0, "actions", 0, "commands", 0).Raw())
	assert.True(t, root.Child("forms", "main", "buttons", 0, "command").IsVirtual())
	assert.Equal(t, 1, root.Child("forms", "main", "buttons").Len())
	assert.Equal(t, false, root.Child("general", "debug").Raw())
	assert.Equal(t, "%player%", root.Child("general", "placeholder").Raw(), "glob scopes replacements")
	assert.True(t, root.Child("elsewhere").IsVirtual())

	assert.Equal(t, []any{"a", 0, "b"}, ParsePath("a.0.b"))
	assert.Nil(t, ParsePath(""))
}
