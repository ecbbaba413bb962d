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

package config

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrDefaultConstruction means a type has no usable defaults. It is the
	// only failure that aborts LoadAll.
	ErrDefaultConstruction = errors.Base("default construction failed")

	// ErrDuplicateDescriptor means another descriptor already claims the
	// same type or file
	ErrDuplicateDescriptor = errors.Base("duplicate descriptor")
)

// DefaultConstructionError reports a missing or failing default factory
type DefaultConstructionError struct {
	Type string
	Err  error
}

func (e *DefaultConstructionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s has no default factory", e.Type)
	}
	return fmt.Sprintf("constructing defaults for %s: %v", e.Type, e.Err)
}

func (e *DefaultConstructionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDefaultConstruction}
	}
	return []error{ErrDefaultConstruction, e.Err}
}

// DecodeError reports a tree that could not be mapped to its target type
type DecodeError struct {
	File string
	Type string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("mapping %s to %s: %v", e.File, e.Type, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
