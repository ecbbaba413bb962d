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
	"reflect"

	"github.com/Heleguo/CrossplatForms/pkg/node"
)

// 🔌 Codec converts between a node and a typed value
type Codec[T any] interface {
	// 📝 Decode builds a value from n. Codecs never write to n while decoding.
	Decode(r *Registry, n node.Node) (T, error)

	// 💾 Encode writes v into n, materializing n if needed
	Encode(r *Registry, v T, n node.Node) error
}

// 🗂️ Registry maps target types to codecs. Types are only used as map keys.
type Registry struct {
	exact   map[reflect.Type]any
	records map[reflect.Type]any
}

// 🏭 NewRegistry creates an empty registry. Built-in scalar codecs are always
// available and need no registration.
func NewRegistry() *Registry {
	return &Registry{
		exact:   map[reflect.Type]any{},
		records: map[reflect.Type]any{},
	}
}

// 📝 Register installs an exact-type codec for T, replacing any previous one
func Register[T any](r *Registry, c Codec[T]) {
	r.exact[reflect.TypeFor[T]()] = c
}

// Has reports whether T resolves to any codec
func Has[T any](r *Registry) bool {
	_, err := Lookup[T](r)
	return err == nil
}

// 🔍 Lookup resolves the codec for T: exact codec, then record descriptor,
// then built-in scalar codec.
func Lookup[T any](r *Registry) (Codec[T], error) {
	typ := reflect.TypeFor[T]()
	if r != nil {
		if c, ok := r.exact[typ]; ok {
			return c.(Codec[T]), nil
		}
		if c, ok := r.records[typ]; ok {
			return c.(Codec[T]), nil
		}
	}
	if c, ok := builtin[T](); ok {
		return c, nil
	}
	return nil, &NoCodecError{Type: typ}
}

// 🎯 Decode decodes n as T with the codec resolved from r
func Decode[T any](r *Registry, n node.Node) (T, error) {
	c, err := Lookup[T](r)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.Decode(r, n)
}

// 🎯 Encode writes v into n with the codec resolved from r
func Encode[T any](r *Registry, v T, n node.Node) error {
	c, err := Lookup[T](r)
	if err != nil {
		return err
	}
	return c.Encode(r, v, n)
}

// EncodeTree encodes v into a fresh tree
func EncodeTree[T any](r *Registry, v T) (*node.Tree, error) {
	t := node.NewTree()
	if err := Encode(r, v, t.Root()); err != nil {
		return nil, err
	}
	return t, nil
}
