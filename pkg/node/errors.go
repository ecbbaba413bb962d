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

	"gitlab.com/tozd/go/errors"
)

// ErrDetached is returned when mutating a node that belongs to no tree
var ErrDetached = errors.Base("node is detached from a tree")

// ErrAliasExpansion is returned when YAML aliases expand past the parse budget
var ErrAliasExpansion = errors.Base("alias expansion too large")

// ❌ ParseError reports malformed source text
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ❌ TypeMismatchError reports a node that cannot be read as the requested type
type TypeMismatchError struct {
	Path string
	Want string
	Got  Kind
	Raw  any
	Err  error
}

func (e *TypeMismatchError) Error() string {
	got := e.Got.String()
	if e.Got == KindScalar {
		got = fmt.Sprintf("scalar %q", fmt.Sprint(e.Raw))
		if e.Raw == nil {
			got = "null"
		}
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: cannot read %s as %s: %v", e.Path, got, e.Want, e.Err)
	}
	return fmt.Sprintf("%s: cannot read %s as %s", e.Path, got, e.Want)
}

func (e *TypeMismatchError) Unwrap() error { return e.Err }
