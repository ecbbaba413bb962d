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
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/Heleguo/CrossplatForms/pkg/node"
	"github.com/Heleguo/CrossplatForms/pkg/text"
)

// Transform mutates a tree as part of a step. Paths given to the helpers
// below are dotted ("forms.main.buttons.0"); numeric segments address list
// indices. Helpers whose source path is missing do nothing.
type Transform func(root node.Node) error

// ParsePath splits a dotted path into node keys
func ParsePath(path string) []any {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, ".")
	out := make([]any, 0, len(parts))
	for _, p := range parts {
		if i, err := strconv.Atoi(p); err == nil && i >= 0 {
			out = append(out, i)
			continue
		}
		out = append(out, p)
	}
	return out
}

// Rename renames the map entry at path to newKey, keeping its position
func Rename(path, newKey string) Transform {
	return func(root node.Node) error {
		n := root.Child(ParsePath(path)...)
		if n.IsVirtual() {
			return nil
		}
		if err := n.Rename(newKey); err != nil {
			return errors.Errorf("renaming %s: %w", n.PathString(), err)
		}
		return nil
	}
}

// Move moves the subtree at from to to, replacing whatever is there
func Move(from, to string) Transform {
	return func(root node.Node) error {
		n := root.Child(ParsePath(from)...)
		if n.IsVirtual() {
			return nil
		}
		if _, err := n.MoveTo(root.Child(ParsePath(to)...)); err != nil {
			return errors.Errorf("moving %s to %s: %w", from, to, err)
		}
		return nil
	}
}

// Remove deletes the subtree at path
func Remove(path string) Transform {
	return func(root node.Node) error {
		root.Child(ParsePath(path)...).Remove()
		return nil
	}
}

// SetIfAbsent writes value at path unless a non-null value is already there
func SetIfAbsent(path string, value any) Transform {
	return func(root node.Node) error {
		n := root.Child(ParsePath(path)...)
		if !n.IsNull() {
			return nil
		}
		if _, err := n.Set(value); err != nil {
			return errors.Errorf("setting %s: %w", path, err)
		}
		return nil
	}
}

// Each applies t to every child of the map or list at path. Each child is
// passed to t as its root.
func Each(path string, t Transform) Transform {
	return func(root node.Node) error {
		parent := root.Child(ParsePath(path)...)
		for _, child := range parent.Children() {
			if err := t(child); err != nil {
				return err
			}
		}
		return nil
	}
}

// At applies t to the node at path, passed as its root. Missing paths are
// skipped.
func At(path string, t Transform) Transform {
	return func(root node.Node) error {
		n := root.Child(ParsePath(path)...)
		if n.IsVirtual() {
			return nil
		}
		return t(n)
	}
}

// All applies the transforms in order
func All(ts ...Transform) Transform {
	return func(root node.Node) error {
		for _, t := range ts {
			if err := t(root); err != nil {
				return err
			}
		}
		return nil
	}
}

// ReplaceText rewrites every string value below root with rules. Rule globs
// match slash separated paths relative to the transform's root.
func ReplaceText(rules ...text.ReplacementRule) Transform {
	replacer := text.NewReplacer()
	return func(root node.Node) error {
		if err := replacer.ValidateRules(rules); err != nil {
			return err
		}
		return replaceIn(replacer, root, nil, rules)
	}
}

func replaceIn(r *text.Replacer, n node.Node, path []string, rules []text.ReplacementRule) error {
	switch n.Kind() {
	case node.KindMap, node.KindList:
		for _, child := range n.Children() {
			key := child.Key()
			seg, ok := key.(string)
			if !ok {
				seg = strconv.Itoa(key.(int))
			}
			if err := replaceIn(r, child, append(path, seg), rules); err != nil {
				return err
			}
		}
	case node.KindScalar:
		s, ok := n.Raw().(string)
		if !ok {
			return nil
		}
		res, err := r.Replace(strings.Join(path, "/"), s, rules)
		if err != nil {
			return errors.Errorf("replacing text in %s: %w", n.PathString(), err)
		}
		if res.WasModified {
			if _, err := n.Set(res.ModifiedContent); err != nil {
				return err
			}
		}
	}
	return nil
}

// Step returns t as a chain step
func (t Transform) Step(to int, description string) Step {
	return Step{To: to, Description: description, Apply: t}
}
