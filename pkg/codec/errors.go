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

package codec

import (
	"fmt"
	"reflect"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrDecodeNull is returned when a record is decoded from a missing or null node
var ErrDecodeNull = errors.Base("mapping produced no object")

// ❌ NoCodecError reports a type with no registered or built-in codec
type NoCodecError struct {
	Type reflect.Type
}

func (e *NoCodecError) Error() string {
	return fmt.Sprintf("no codec registered for %s", e.Type)
}

// ❌ UnknownVariantError reports an unrecognized discriminator value
type UnknownVariantError struct {
	Path  string
	Field string
	Value string
	Known []string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("%s: unknown %s %q (expected one of: %s)", e.Path, e.Field, e.Value, strings.Join(e.Known, ", "))
}

// ❌ MissingFieldError reports a required field that is absent
type MissingFieldError struct {
	Path  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.Path, e.Field)
}

// nullError keeps the path of the node that produced no object
func nullError(path string) error {
	return errors.Errorf("%s: %w", path, ErrDecodeNull)
}
