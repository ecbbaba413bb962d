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
	"github.com/spf13/cast"
)

// ScalarType lists the Go types a scalar node can be coerced to
type ScalarType interface {
	string | bool | int | int64 | float64
}

// 🎯 Scalar coerces a scalar node to T. Containers, null and virtual nodes,
// and values that cannot be converted fail with *TypeMismatchError.
func Scalar[T ScalarType](n Node) (T, error) {
	var zero T
	kind := n.Kind()
	raw := n.Raw()
	if kind != KindScalar || raw == nil {
		return zero, &TypeMismatchError{Path: n.PathString(), Want: typeName[T](), Got: kind, Raw: raw}
	}

	var (
		out any
		err error
	)
	switch any(zero).(type) {
	case string:
		out, err = cast.ToStringE(raw)
	case bool:
		out, err = cast.ToBoolE(raw)
	case int:
		out, err = cast.ToIntE(raw)
	case int64:
		out, err = cast.ToInt64E(raw)
	case float64:
		out, err = cast.ToFloat64E(raw)
	}
	if err != nil {
		return zero, &TypeMismatchError{Path: n.PathString(), Want: typeName[T](), Got: kind, Raw: raw, Err: err}
	}
	return out.(T), nil
}

func typeName[T ScalarType]() string {
	var zero T
	switch any(zero).(type) {
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int64:
		return "integer"
	default:
		return "number"
	}
}

// The helpers below return def when the node is absent or not coercible.
// def is never written to the tree.

func String(n Node, def string) string {
	if v, err := Scalar[string](n); err == nil {
		return v
	}
	return def
}

func Int(n Node, def int) int {
	if v, err := Scalar[int](n); err == nil {
		return v
	}
	return def
}

func Bool(n Node, def bool) bool {
	if v, err := Scalar[bool](n); err == nil {
		return v
	}
	return def
}
