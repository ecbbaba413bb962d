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

package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func mustParse(t *testing.T, name, src string) *Tree {
	t.Helper()
	tree, err := Parse(name, []byte(src))
	require.NoError(t, err, "parsing %s", name)
	return tree
}

// 🧪 TestChildNeverFails tests that navigation yields virtual nodes for missing paths
func TestChildNeverFails(t *testing.T) {
	tree := mustParse(t, "a.yml", "forms:\n  main:\n    title: hi\n")
	root := tree.Root()
	before := len(tree.entries)

	tests := []struct {
		name    string
		path    []any
		virtual bool
		key     any
		str     string
	}{
		{name: "existing_scalar", path: []any{"forms", "main", "title"}, key: "title", str: "forms.main.title"},
		{name: "missing_leaf", path: []any{"forms", "main", "missing"}, virtual: true, key: "missing", str: "forms.main.missing"},
		{name: "missing_deep", path: []any{"x", "y", 3, "z"}, virtual: true, key: "z", str: "x.y[3].z"},
		{name: "through_scalar", path: []any{"forms", "main", "title", "inner"}, virtual: true, key: "inner", str: "forms.main.title.inner"},
		{name: "index_into_map", path: []any{"forms", 0}, virtual: true, key: 0, str: "forms[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := root.Child(tt.path...)
			assert.Equal(t, tt.virtual, n.IsVirtual(), "virtual state")
			assert.Equal(t, tt.key, n.Key(), "key")
			assert.Equal(t, tt.str, n.PathString(), "path string")
		})
	}

	assert.Equal(t, before, len(tree.entries), "navigation must not allocate nodes")
}

// 🧪 TestVirtualChaining tests that virtual nodes keep navigating
func TestVirtualChaining(t *testing.T) {
	tree := NewTree()
	n := tree.Root().Child("a").Child("b").Child(1)
	assert.True(t, n.IsVirtual())
	assert.Equal(t, []any{"a", "b", 1}, n.Path())
	assert.True(t, n.IsNull())
	assert.Nil(t, n.Raw())
	assert.Equal(t, 0, n.Len())

	parent, ok := n.Parent()
	require.True(t, ok)
	assert.Equal(t, "a.b", parent.PathString())

	var zero Node
	assert.True(t, zero.Child("x").IsVirtual(), "detached nodes navigate too")
	_, err := zero.Child("x").Set(1)
	assert.ErrorIs(t, err, ErrDetached)
}

// 🧪 TestSetMaterializesPath tests explicit materialization of virtual paths
func TestSetMaterializesPath(t *testing.T) {
	tree := NewTree()
	n, err := tree.Root().Child("general", "debug").Set(true)
	require.NoError(t, err)
	assert.True(t, n.IsScalar())
	assert.Equal(t, true, tree.Root().Child("general", "debug").Raw())
	assert.True(t, tree.Root().IsMap())

	_, err = tree.Root().Child("items", 0).Set("first")
	require.NoError(t, err)
	assert.True(t, tree.Root().Child("items").IsList())

	_, err = tree.Root().Child("items", 5).Set("gap")
	assert.Error(t, err, "lists only grow by appending")

	_, err = tree.Root().Child("general", "debug", "deeper").Set(1)
	var mismatch *TypeMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

// 🧪 TestMutations tests rename, remove and move semantics
func TestMutations(t *testing.T) {
	src := "version: 1\nmenus:\n  main:\n    title: Main\n    buttons:\n      - a\n      - b\n      - c\nother: x\n"

	t.Run("rename_keeps_position", func(t *testing.T) {
		tree := mustParse(t, "m.yml", src)
		require.NoError(t, tree.Root().Child("menus").Rename("forms"))
		keys := []any{}
		for _, c := range tree.Root().ChildrenMap() {
			keys = append(keys, c.Key())
		}
		assert.Equal(t, []any{"version", "forms", "other"}, keys)
		assert.Equal(t, "Main", String(tree.Root().Child("forms", "main", "title"), ""))
	})

	t.Run("rename_conflict", func(t *testing.T) {
		tree := mustParse(t, "m.yml", src)
		assert.Error(t, tree.Root().Child("menus").Rename("other"))
	})

	t.Run("remove_reindexes_list", func(t *testing.T) {
		tree := mustParse(t, "m.yml", src)
		buttons := tree.Root().Child("menus", "main", "buttons")
		assert.True(t, buttons.Child(0).Remove())
		require.Equal(t, 2, buttons.Len())
		assert.Equal(t, "b", buttons.Child(0).Raw())
		assert.Equal(t, 0, buttons.Child(0).Key())
		assert.Equal(t, "c", buttons.Child(1).Raw())
		assert.False(t, buttons.Child(9).Remove(), "removing a virtual node is a no-op")
	})

	t.Run("move_between_branches", func(t *testing.T) {
		tree := mustParse(t, "m.yml", src)
		moved, err := tree.Root().Child("menus", "main", "title").MoveTo(tree.Root().Child("meta", "title"))
		require.NoError(t, err)
		assert.Equal(t, "Main", moved.Raw())
		assert.True(t, tree.Root().Child("menus", "main", "title").IsVirtual())
		assert.Equal(t, "meta.title", moved.PathString())
	})

	t.Run("move_into_self_rejected", func(t *testing.T) {
		tree := mustParse(t, "m.yml", src)
		menus := tree.Root().Child("menus")
		_, err := menus.MoveTo(menus.Child("main", "nested"))
		assert.Error(t, err)
	})

	t.Run("remove_root_resets", func(t *testing.T) {
		tree := mustParse(t, "m.yml", src)
		assert.True(t, tree.Root().Remove())
		assert.True(t, tree.Root().IsNull())
	})
}

// 🧪 TestCopyIsIndependent tests that copies never share state with the source
func TestCopyIsIndependent(t *testing.T) {
	tree := mustParse(t, "c.yml", "a:\n  b: [1, 2]\n  c: text\n")
	cp := tree.Root().Copy()
	require.True(t, Equal(tree.Root(), cp.Root()))

	_, err := cp.Root().Child("a", "c").Set("changed")
	require.NoError(t, err)
	_, err = cp.Root().Child("a", "b").Append(3)
	require.NoError(t, err)

	assert.Equal(t, "text", tree.Root().Child("a", "c").Raw())
	assert.Equal(t, 2, tree.Root().Child("a", "b").Len())
	assert.False(t, Equal(tree.Root(), cp.Root()))

	sub := tree.Root().Child("a").Copy()
	assert.Nil(t, sub.Root().Key(), "a copied subtree becomes a root")
	assert.Equal(t, "text", sub.Root().Child("c").Raw())
}

// 🧪 TestScalarCoercion tests typed reads of scalar nodes
func TestScalarCoercion(t *testing.T) {
	tree := mustParse(t, "s.yml", "n: 42\nf: 1.5\ns: \"7\"\nb: true\nnull_value: ~\nlist: [1]\n")
	root := tree.Root()

	v, err := Scalar[int](root.Child("n"))
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	fromString, err := Scalar[int](root.Child("s"))
	require.NoError(t, err)
	assert.Equal(t, 7, fromString)

	str, err := Scalar[string](root.Child("n"))
	require.NoError(t, err)
	assert.Equal(t, "42", str)

	fl, err := Scalar[float64](root.Child("f"))
	require.NoError(t, err)
	assert.InDelta(t, 1.5, fl, 0.0001)

	_, err = Scalar[string](root.Child("null_value"))
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "null_value", mismatch.Path)

	_, err = Scalar[int](root.Child("list"))
	assert.True(t, errors.As(err, &mismatch))
	assert.Equal(t, KindList, mismatch.Got)

	assert.Equal(t, 9, Int(root.Child("missing"), 9))
	assert.True(t, root.Child("missing").IsVirtual(), "defaults are never written back")
	assert.True(t, Bool(root.Child("b"), false))
}
