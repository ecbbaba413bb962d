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
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gitlab.com/tozd/go/errors"
)

// Mutations are explicit. Reading never allocates, so only these methods
// turn a virtual path into real nodes. All of them return the resolved node
// because a virtual handle stays virtual after its path was materialized.

// ✏️ Set replaces the node with a scalar value, creating missing parents
func (n Node) Set(v any) (Node, error) {
	raw, err := normalizeScalar(v)
	if err != nil {
		return Node{}, errors.Errorf("setting %s: %w", n.PathString(), err)
	}
	id, err := n.materialize()
	if err != nil {
		return Node{}, err
	}
	e := n.tree.at(id)
	e.kind, e.raw, e.items, e.fields = KindScalar, raw, nil, nil
	return n.tree.node(id), nil
}

// SetMap turns the node into a map. Existing maps are left untouched.
func (n Node) SetMap() (Node, error) {
	id, err := n.materialize()
	if err != nil {
		return Node{}, err
	}
	e := n.tree.at(id)
	if e.kind != KindMap {
		e.kind, e.raw, e.items, e.fields = KindMap, nil, nil, orderedmap.New[string, ID]()
	}
	return n.tree.node(id), nil
}

// SetList turns the node into a list. Existing lists are left untouched.
func (n Node) SetList() (Node, error) {
	id, err := n.materialize()
	if err != nil {
		return Node{}, err
	}
	e := n.tree.at(id)
	if e.kind != KindList {
		e.kind, e.raw, e.items, e.fields = KindList, nil, nil, nil
	}
	return n.tree.node(id), nil
}

// Append adds a scalar child to a list node and returns it. A virtual or
// null node becomes a list first.
func (n Node) Append(v any) (Node, error) {
	raw, err := normalizeScalar(v)
	if err != nil {
		return Node{}, errors.Errorf("appending to %s: %w", n.PathString(), err)
	}
	id, err := n.materialize()
	if err != nil {
		return Node{}, err
	}
	e := n.tree.at(id)
	if e.kind == KindScalar && e.raw == nil {
		e.kind = KindList
	}
	if e.kind != KindList {
		return Node{}, &TypeMismatchError{Path: n.PathString(), Want: "list", Got: e.kind, Raw: e.raw}
	}
	child := n.tree.alloc(entry{kind: KindScalar, key: len(e.items), parent: id, raw: raw})
	p := n.tree.at(id)
	p.items = append(p.items, child)
	return n.tree.node(child), nil
}

// 🗑️ Remove detaches the node from its parent. Removing the root resets it to
// null. Removing a virtual node is a no-op and reports false.
func (n Node) Remove() bool {
	if n.IsVirtual() {
		return false
	}
	e := n.tree.at(n.id)
	if e.parent == NoID {
		e.kind, e.raw, e.items, e.fields = KindScalar, nil, nil, nil
		return true
	}
	p := n.tree.at(e.parent)
	switch p.kind {
	case KindMap:
		p.fields.Delete(e.key.(string))
	case KindList:
		idx := e.key.(int)
		p.items = append(p.items[:idx], p.items[idx+1:]...)
		for i := idx; i < len(p.items); i++ {
			n.tree.at(p.items[i]).key = i
		}
	}
	e.parent = NoID
	return true
}

// Rename changes the key of a map child while keeping its position
func (n Node) Rename(newKey string) error {
	if n.IsVirtual() {
		return nil
	}
	e := n.tree.at(n.id)
	if e.parent == NoID {
		return errors.Errorf("cannot rename the root node")
	}
	p := n.tree.at(e.parent)
	if p.kind != KindMap {
		return errors.Errorf("cannot rename %s: parent is a %s", n.PathString(), p.kind)
	}
	oldKey := e.key.(string)
	if oldKey == newKey {
		return nil
	}
	if _, exists := p.fields.Get(newKey); exists {
		return errors.Errorf("cannot rename %s: key %q already exists", n.PathString(), newKey)
	}
	p.fields.Set(newKey, n.id)
	if err := p.fields.MoveBefore(newKey, oldKey); err != nil {
		return errors.Errorf("reordering %s: %w", newKey, err)
	}
	p.fields.Delete(oldKey)
	e.key = newKey
	return nil
}

// 🚚 MoveTo copies the node's subtree onto dst, then removes the node. dst
// may live in another tree but must not be a descendant of the node.
func (n Node) MoveTo(dst Node) (Node, error) {
	if n.IsVirtual() {
		return dst, nil
	}
	if dst.tree == n.tree && dst.within(n.id) {
		return Node{}, errors.Errorf("cannot move %s into its own subtree", n.PathString())
	}
	id, err := dst.materialize()
	if err != nil {
		return Node{}, err
	}
	cloneInto(n.tree, n.id, dst.tree, id)
	n.Remove()
	return dst.tree.node(id), nil
}

func (n Node) within(ancestor ID) bool {
	id := n.id
	if n.IsVirtual() {
		id = n.anchor
	}
	for id != NoID {
		if id == ancestor {
			return true
		}
		id = n.tree.at(id).parent
	}
	return false
}

func (n Node) materialize() (ID, error) {
	if n.tree == nil {
		return NoID, ErrDetached
	}
	if !n.IsVirtual() {
		return n.id, nil
	}
	cur := n.anchor
	for _, p := range n.path {
		next, err := n.tree.ensureChild(cur, p)
		if err != nil {
			return NoID, err
		}
		cur = next
	}
	return cur, nil
}

func (t *Tree) ensureChild(id ID, key any) (ID, error) {
	if child, ok := t.lookup(id, key); ok {
		return child, nil
	}
	e := t.at(id)
	if e.kind == KindScalar && e.raw == nil {
		if _, isIndex := key.(int); isIndex {
			e.kind = KindList
		} else {
			e.kind, e.fields = KindMap, orderedmap.New[string, ID]()
		}
	}
	switch e.kind {
	case KindMap:
		k := mapKey(key)
		child := t.alloc(entry{kind: KindScalar, key: k, parent: id})
		t.at(id).fields.Set(k, child)
		return child, nil
	case KindList:
		idx, ok := key.(int)
		if !ok || idx != len(e.items) {
			return NoID, errors.Errorf("cannot create list element %v of %s: only appending is supported",
				key, FormatPath(t.node(id).Path()))
		}
		child := t.alloc(entry{kind: KindScalar, key: idx, parent: id})
		p := t.at(id)
		p.items = append(p.items, child)
		return child, nil
	default:
		return NoID, &TypeMismatchError{Path: FormatPath(t.node(id).Path()), Want: "map or list", Got: e.kind, Raw: e.raw}
	}
}

func normalizeScalar(v any) (any, error) {
	switch x := v.(type) {
	case nil, string, bool, int, float64:
		return x, nil
	case int8:
		return int(x), nil
	case int16:
		return int(x), nil
	case int32:
		return int(x), nil
	case int64:
		return int(x), nil
	case uint:
		return int(x), nil
	case uint8:
		return int(x), nil
	case uint16:
		return int(x), nil
	case uint32:
		return int(x), nil
	case uint64:
		return int(x), nil
	case float32:
		return float64(x), nil
	default:
		return nil, errors.Errorf("unsupported scalar type %T", v)
	}
}
