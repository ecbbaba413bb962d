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

package node_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Heleguo/CrossplatForms/pkg/node"
	"github.com/Heleguo/CrossplatForms/pkg/pretty"
)

// 🧪 TestRenderCycle tests that rendering stops at a node it has already printed
func TestRenderCycle(t *testing.T) {
	tree, err := node.Parse("cycle.yml", []byte("a:\n  b: [1]\n"))
	require.NoError(t, err)
	root := tree.Root()
	list := root.Child("a", "b")
	require.True(t, list.IsList())

	node.LinkItem(list, root)
	require.Equal(t, 2, list.Len())

	done := make(chan string, 1)
	go func() { done <- pretty.New().Render(root, false) }()

	var out string
	select {
	case out = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("render did not terminate")
	}

	assert.Contains(t, out, "<cycle>")
	assert.Equal(t, 1, strings.Count(out, "<cycle>"))
	assert.Contains(t, out, "b:\n    0: 1\n")
}
