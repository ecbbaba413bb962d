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
	"fmt"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// 🔑 ID addresses an entry in a Tree's arena
type ID int32

// NoID is the ID carried by virtual nodes
const NoID ID = -1

// 🧩 Kind is the shape of a node
type Kind int

const (
	KindVirtual Kind = iota // referenced but absent from the source
	KindScalar              // leaf value (string, int, float64, bool or nil)
	KindMap                 // ordered key → child mapping
	KindList                // ordered children
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMap:
		return "map"
	case KindList:
		return "list"
	default:
		return "virtual"
	}
}

type entry struct {
	kind   Kind
	key    any // string for map children, int for list children, nil for the root
	parent ID
	raw    any
	items  []ID
	fields *orderedmap.OrderedMap[string, ID]
}

// 🌳 Tree is an arena of nodes. Parents are referenced by ID only, so the
// structure never holds an owning pointer cycle.
type Tree struct {
	entries []entry
	root    ID
}

// 🏭 NewTree creates a tree whose root is a null scalar
func NewTree() *Tree {
	t := &Tree{}
	t.root = t.alloc(entry{kind: KindScalar, parent: NoID})
	return t
}

func (t *Tree) alloc(e entry) ID {
	t.entries = append(t.entries, e)
	return ID(len(t.entries) - 1)
}

func (t *Tree) at(id ID) *entry {
	return &t.entries[id]
}

// Root returns the root node of the tree
func (t *Tree) Root() Node {
	return Node{tree: t, id: t.root, anchor: NoID}
}

// 📍 Node is a lightweight handle into a Tree. The zero Node is virtual and
// detached from any tree.
type Node struct {
	tree *Tree
	id   ID

	// virtual nodes remember the deepest existing ancestor and the
	// unresolved path below it
	anchor ID
	path   []any
}

func (t *Tree) node(id ID) Node {
	return Node{tree: t, id: id, anchor: NoID}
}

// Tree returns the tree the node belongs to
func (n Node) Tree() *Tree { return n.tree }

// ID returns the arena ID of the node, or NoID for virtual nodes
func (n Node) ID() ID {
	if n.tree == nil {
		return NoID
	}
	return n.id
}

// Kind returns the node's shape
func (n Node) Kind() Kind {
	if n.tree == nil || n.id == NoID {
		return KindVirtual
	}
	return n.tree.at(n.id).kind
}

func (n Node) IsVirtual() bool { return n.Kind() == KindVirtual }
func (n Node) IsScalar() bool  { return n.Kind() == KindScalar }
func (n Node) IsMap() bool     { return n.Kind() == KindMap }
func (n Node) IsList() bool    { return n.Kind() == KindList }

// IsNull reports whether the node is virtual or a scalar holding nil
func (n Node) IsNull() bool {
	switch n.Kind() {
	case KindVirtual:
		return true
	case KindScalar:
		return n.tree.at(n.id).raw == nil
	default:
		return false
	}
}

// Key returns the key of the node within its parent: a string for map
// children, an int for list children and nil for the root.
func (n Node) Key() any {
	if n.IsVirtual() {
		if len(n.path) == 0 {
			return nil
		}
		return n.path[len(n.path)-1]
	}
	return n.tree.at(n.id).key
}

// Raw returns the scalar value of the node, or nil for containers and
// virtual nodes
func (n Node) Raw() any {
	if n.Kind() != KindScalar {
		return nil
	}
	return n.tree.at(n.id).raw
}

// Parent returns the parent node. The root and detached nodes have none.
func (n Node) Parent() (Node, bool) {
	if n.tree == nil {
		return Node{}, false
	}
	if n.IsVirtual() {
		switch {
		case len(n.path) > 1:
			return Node{tree: n.tree, id: NoID, anchor: n.anchor, path: n.path[:len(n.path)-1]}, true
		case n.anchor != NoID:
			return n.tree.node(n.anchor), true
		default:
			return Node{}, false
		}
	}
	p := n.tree.at(n.id).parent
	if p == NoID {
		return Node{}, false
	}
	return n.tree.node(p), true
}

// 🔍 Child navigates to a descendant. String elements address map keys and
// int elements address list indices. Navigation never fails: a missing path
// yields a virtual node and nothing is allocated in the tree.
func (n Node) Child(path ...any) Node {
	cur := n
	for i, p := range path {
		if cur.IsVirtual() {
			return cur.descend(path[i:])
		}
		id, ok := cur.tree.lookup(cur.id, p)
		if !ok {
			return Node{tree: cur.tree, id: NoID, anchor: cur.id, path: append([]any(nil), path[i:]...)}
		}
		cur = cur.tree.node(id)
	}
	return cur
}

func (n Node) descend(rest []any) Node {
	p := make([]any, 0, len(n.path)+len(rest))
	p = append(p, n.path...)
	p = append(p, rest...)
	return Node{tree: n.tree, id: NoID, anchor: n.anchor, path: p}
}

// HasChild reports whether a direct child exists under key
func (n Node) HasChild(key any) bool {
	return !n.Child(key).IsVirtual()
}

func (t *Tree) lookup(id ID, key any) (ID, bool) {
	e := t.at(id)
	switch e.kind {
	case KindMap:
		return e.fields.Get(mapKey(key))
	case KindList:
		idx, ok := key.(int)
		if !ok || idx < 0 || idx >= len(e.items) {
			return NoID, false
		}
		return e.items[idx], true
	default:
		return NoID, false
	}
}

func mapKey(key any) string {
	switch k := key.(type) {
	case string:
		return k
	case int:
		return strconv.Itoa(k)
	default:
		return fmt.Sprint(k)
	}
}

// Len returns the number of children of a map or list node
func (n Node) Len() int {
	switch n.Kind() {
	case KindMap:
		return n.tree.at(n.id).fields.Len()
	case KindList:
		return len(n.tree.at(n.id).items)
	default:
		return 0
	}
}

// ChildrenMap returns the children of a map node in insertion order
func (n Node) ChildrenMap() []Node {
	if n.Kind() != KindMap {
		return nil
	}
	fields := n.tree.at(n.id).fields
	out := make([]Node, 0, fields.Len())
	for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, n.tree.node(pair.Value))
	}
	return out
}

// ChildrenList returns the children of a list node in order
func (n Node) ChildrenList() []Node {
	if n.Kind() != KindList {
		return nil
	}
	items := n.tree.at(n.id).items
	out := make([]Node, 0, len(items))
	for _, id := range items {
		out = append(out, n.tree.node(id))
	}
	return out
}

// Children returns the children of a map or list node
func (n Node) Children() []Node {
	if n.IsMap() {
		return n.ChildrenMap()
	}
	return n.ChildrenList()
}

// Path returns the keys leading from the root to this node
func (n Node) Path() []any {
	if n.tree == nil {
		return nil
	}
	var base []any
	id := n.id
	if n.IsVirtual() {
		id = n.anchor
	}
	for id != NoID {
		e := n.tree.at(id)
		if e.parent == NoID {
			break
		}
		base = append(base, e.key)
		id = e.parent
	}
	for i, j := 0, len(base)-1; i < j; i, j = i+1, j-1 {
		base[i], base[j] = base[j], base[i]
	}
	if n.IsVirtual() {
		base = append(base, n.path...)
	}
	return base
}

// PathString renders the node's path as "forms.main.buttons[0]"
func (n Node) PathString() string {
	return FormatPath(n.Path())
}

// FormatPath renders a key path as "a.b[0].c"
func FormatPath(path []any) string {
	var b strings.Builder
	for _, p := range path {
		if idx, ok := p.(int); ok {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(mapKey(p))
	}
	if b.Len() == 0 {
		return "<root>"
	}
	return b.String()
}

// 📋 Copy deep-clones the node and its descendants into a new, independent
// tree whose root is the copy.
func (n Node) Copy() *Tree {
	t := &Tree{}
	t.root = t.alloc(entry{kind: KindScalar, parent: NoID})
	if !n.IsVirtual() {
		cloneInto(n.tree, n.id, t, t.root)
	}
	return t
}

// cloneInto overwrites dst's content with a deep copy of src's. dst keeps its
// key and parent.
func cloneInto(src *Tree, srcID ID, dst *Tree, dstID ID) {
	s := src.at(srcID)
	kind, raw := s.kind, s.raw
	var keys []string
	var children []ID
	switch kind {
	case KindMap:
		for pair := s.fields.Oldest(); pair != nil; pair = pair.Next() {
			keys = append(keys, pair.Key)
			children = append(children, pair.Value)
		}
	case KindList:
		children = append(children, s.items...)
	}

	d := dst.at(dstID)
	d.kind, d.raw, d.items, d.fields = kind, raw, nil, nil
	switch kind {
	case KindMap:
		d.fields = orderedmap.New[string, ID]()
		for i, childID := range children {
			id := dst.alloc(entry{kind: KindScalar, key: keys[i], parent: dstID})
			dst.at(dstID).fields.Set(keys[i], id)
			cloneInto(src, childID, dst, id)
		}
	case KindList:
		for i, childID := range children {
			id := dst.alloc(entry{kind: KindScalar, key: i, parent: dstID})
			dst.at(dstID).items = append(dst.at(dstID).items, id)
			cloneInto(src, childID, dst, id)
		}
	}
}

// ⚖️ Equal reports whether two nodes are structurally identical: same kinds,
// same scalar values, same map keys in the same order and same list order.
func Equal(a, b Node) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindVirtual:
		return true
	case KindScalar:
		return a.Raw() == b.Raw()
	case KindMap:
		ac, bc := a.ChildrenMap(), b.ChildrenMap()
		if len(ac) != len(bc) {
			return false
		}
		for i := range ac {
			if ac[i].Key() != bc[i].Key() || !Equal(ac[i], bc[i]) {
				return false
			}
		}
		return true
	default:
		ac, bc := a.ChildrenList(), b.ChildrenList()
		if len(ac) != len(bc) {
			return false
		}
		for i := range ac {
			if !Equal(ac[i], bc[i]) {
				return false
			}
		}
		return true
	}
}
