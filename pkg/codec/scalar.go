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
	"gitlab.com/tozd/go/errors"

	"github.com/Heleguo/CrossplatForms/pkg/node"
)

// scalarCodec handles the built-in scalar types through node.Scalar
type scalarCodec[S node.ScalarType] struct{}

func (scalarCodec[S]) Decode(_ *Registry, n node.Node) (S, error) {
	return node.Scalar[S](n)
}

func (scalarCodec[S]) Encode(_ *Registry, v S, n node.Node) error {
	if _, err := n.Set(v); err != nil {
		return errors.Errorf("encoding %s: %w", n.PathString(), err)
	}
	return nil
}

func builtin[T any]() (Codec[T], bool) {
	var zero T
	var c any
	switch any(zero).(type) {
	case string:
		c = scalarCodec[string]{}
	case bool:
		c = scalarCodec[bool]{}
	case int:
		c = scalarCodec[int]{}
	case int64:
		c = scalarCodec[int64]{}
	case float64:
		c = scalarCodec[float64]{}
	default:
		return nil, false
	}
	return c.(Codec[T]), true
}

// Func adapts a pair of functions into a Codec
type Func[T any] struct {
	DecodeFunc func(r *Registry, n node.Node) (T, error)
	EncodeFunc func(r *Registry, v T, n node.Node) error
}

func (f Func[T]) Decode(r *Registry, n node.Node) (T, error) {
	return f.DecodeFunc(r, n)
}

func (f Func[T]) Encode(r *Registry, v T, n node.Node) error {
	if f.EncodeFunc == nil {
		return errors.Errorf("encoding %s: codec is decode-only", n.PathString())
	}
	return f.EncodeFunc(r, v, n)
}
