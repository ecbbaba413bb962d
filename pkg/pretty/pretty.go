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

// Package pretty renders node trees as indented text for diagnostics.
package pretty

import (
	"fmt"
	"strings"

	"github.com/Heleguo/CrossplatForms/pkg/node"
)

const defaultIndent = 2

// 🖨️ Printer renders nodes as "key: value" lines
type Printer struct {
	indent string
}

// Option configures a Printer
type Option func(*Printer)

// WithIndent sets the number of spaces per nesting level
func WithIndent(n int) Option {
	return func(p *Printer) {
		if n < 0 {
			n = 0
		}
		p.indent = strings.Repeat(" ", n)
	}
}

// 🏭 New creates a printer with a default indent of 2
func New(opts ...Option) *Printer {
	p := &Printer{indent: strings.Repeat(" ", defaultIndent)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// 🎯 RenderNode renders n, showing its key unless it is a root
func (p *Printer) RenderNode(n node.Node) string {
	_, hasParent := n.Parent()
	return p.Render(n, hasParent)
}

// 🎯 Render renders n and its descendants. Virtual nodes render as a key with
// no value, so a missing value stays distinct from an empty string. Without
// showKey a container lists its children at the base level.
func (p *Printer) Render(n node.Node, showKey bool) string {
	r := &render{p: p, visited: map[node.ID]bool{}}
	r.node(n, 0, showKey)
	return strings.TrimSpace(r.b.String())
}

type render struct {
	p       *Printer
	b       strings.Builder
	visited map[node.ID]bool
}

func (r *render) node(n node.Node, depth int, showKey bool) {
	prefix := ""
	if showKey {
		prefix = keyString(n.Key()) + ": "
	}

	if id := n.ID(); !n.IsVirtual() {
		if r.visited[id] {
			r.b.WriteString(prefix + "<cycle>\n")
			return
		}
		r.visited[id] = true
	}

	switch n.Kind() {
	case node.KindVirtual:
		r.b.WriteString(prefix + "\n")
	case node.KindMap, node.KindList:
		childDepth := depth
		if showKey {
			childDepth++
			r.b.WriteString(keyString(n.Key()) + ":\n")
		}
		for _, child := range n.Children() {
			r.b.WriteString(strings.Repeat(r.p.indent, childDepth))
			r.node(child, childDepth, true)
		}
	default:
		r.b.WriteString(prefix + rawString(n.Raw()) + "\n")
	}
}

func keyString(key any) string {
	if key == nil {
		return ""
	}
	return fmt.Sprint(key)
}

// rawString quotes the empty string so it reads differently from a missing value
func rawString(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		if v == "" {
			return `""`
		}
		return v
	default:
		return fmt.Sprint(v)
	}
}
