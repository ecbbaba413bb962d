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

// Package migrate upgrades versioned node trees in place through ordered
// version-bump steps.
package migrate

import (
	"math"
	"slices"

	"gitlab.com/tozd/go/errors"

	"github.com/Heleguo/CrossplatForms/pkg/node"
)

// VersionKey is the root key holding a tree's schema version
const VersionKey = "version"

// 🔄 State is the outcome of running a migration against a tree
type State int

const (
	Unversioned State = iota
	VersionMismatchFatal
	VersionMismatchMigratable
	UpToDate
	MigrationApplied
	MigrationFailed
)

func (s State) String() string {
	switch s {
	case Unversioned:
		return "unversioned"
	case VersionMismatchFatal:
		return "version mismatch"
	case VersionMismatchMigratable:
		return "migratable"
	case UpToDate:
		return "up to date"
	case MigrationApplied:
		return "migrated"
	case MigrationFailed:
		return "migration failed"
	default:
		return "unknown"
	}
}

// Fatal reports whether the state prevents decoding the tree
func (s State) Fatal() bool {
	return s == Unversioned || s == VersionMismatchFatal || s == MigrationFailed
}

// 📦 Step moves a tree from version To-1 to version To
type Step struct {
	To          int
	Description string
	Apply       func(root node.Node) error
}

// StepResult records one executed step
type StepResult struct {
	From        int
	To          int
	Description string
	Err         error
}

// ⛓️ Chain is an ordered set of steps
type Chain struct {
	steps []Step
}

// NewChain creates a chain from steps, ordered by target version
func NewChain(steps ...Step) *Chain {
	c := &Chain{}
	for _, s := range steps {
		c.Add(s)
	}
	return c
}

// Add inserts a step keeping the chain ordered by target version
func (c *Chain) Add(s Step) *Chain {
	c.steps = append(c.steps, s)
	slices.SortStableFunc(c.steps, func(a, b Step) int { return a.To - b.To })
	return c
}

// Then appends a step built from its parts
func (c *Chain) Then(to int, description string, apply func(root node.Node) error) *Chain {
	return c.Add(Step{To: to, Description: description, Apply: apply})
}

// Steps returns a copy of the chain's steps
func (c *Chain) Steps() []Step {
	return slices.Clone(c.steps)
}

// 🚀 Apply runs every step whose target is exactly one above the tree's
// version, bumping the version after each step. It stops at the first gap
// or failure and returns the steps it ran.
func (c *Chain) Apply(root node.Node) ([]StepResult, error) {
	v, err := Version(root)
	if err != nil {
		return nil, err
	}
	var ran []StepResult
	for _, s := range c.steps {
		if s.To <= v {
			continue
		}
		if s.To != v+1 {
			break
		}
		res := StepResult{From: v, To: s.To, Description: s.Description}
		if s.Apply != nil {
			if err := s.Apply(root); err != nil {
				res.Err = err
				ran = append(ran, res)
				return ran, errors.Errorf("migrating from version %d to %d: %w", v, s.To, err)
			}
		}
		if _, err := root.Child(VersionKey).Set(s.To); err != nil {
			return ran, errors.Errorf("bumping version to %d: %w", s.To, err)
		}
		ran = append(ran, res)
		v = s.To
	}
	return ran, nil
}

// Version reads the tree's version field
func Version(root node.Node) (int, error) {
	n := root.Child(VersionKey)
	if n.IsNull() {
		return 0, ErrMissingVersion
	}
	f, err := node.Scalar[float64](n)
	if err != nil {
		return 0, errors.Errorf("%w: %v", ErrInvalidVersion, err)
	}
	if f != math.Trunc(f) {
		return 0, errors.Errorf("%w: %v", ErrInvalidVersion, n.Raw())
	}
	return int(f), nil
}

// 🎯 Target is the version window a tree must end up in
type Target struct {
	Current int
	Minimum int
	Chain   *Chain
}

// 📊 Result describes what Run did
type Result struct {
	State State
	From  int
	To    int
	Steps []StepResult

	// Snapshot holds a deep copy of the tree taken before the chain ran.
	// It is only set when a migration was attempted.
	Snapshot *node.Tree
}

// Changed reports whether the tree was rewritten and must be persisted
func (r *Result) Changed() bool {
	return r != nil && r.State == MigrationApplied
}

// 🚀 Run validates the tree's version against t and migrates it in place when
// possible. The returned error is non-nil exactly when the state is fatal.
func Run(root node.Node, t Target) (*Result, error) {
	v, err := Version(root)
	if err != nil {
		return &Result{State: Unversioned}, err
	}
	res := &Result{State: VersionMismatchMigratable, From: v, To: v}

	if v == t.Current {
		res.State = UpToDate
		return res, nil
	}
	if t.Chain == nil || v < t.Minimum || v > t.Current {
		res.State = VersionMismatchFatal
		return res, &VersionOutOfRangeError{Version: v, Minimum: t.Minimum, Current: t.Current, Migratable: t.Chain != nil}
	}

	res.Snapshot = root.Copy()
	res.Steps, err = t.Chain.Apply(root)
	if err != nil {
		res.State = MigrationFailed
		res.To, _ = Version(root)
		return res, err
	}

	end, err := Version(root)
	if err != nil {
		res.State = MigrationFailed
		return res, err
	}
	res.To = end
	if end != t.Current {
		res.State = MigrationFailed
		return res, &MigrationIncompleteError{From: v, Reached: end, Current: t.Current}
	}
	res.State = MigrationApplied
	return res, nil
}
