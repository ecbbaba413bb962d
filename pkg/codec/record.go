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

	"gitlab.com/tozd/go/errors"

	"github.com/Heleguo/CrossplatForms/pkg/node"
)

// 📋 Record describes how a struct type maps to a map node, field by field
type Record[T any] struct {
	// New returns the value fields are decoded into. Absent fields keep the
	// values New sets. Nil means the zero value.
	New func() T

	Fields []Field[T]

	// Validate runs after every field decoded
	Validate func(*T) error
}

// Field binds one map key to one struct field
type Field[T any] struct {
	name     string
	required bool
	decode   func(r *Registry, n node.Node, dst *T) error
	encode   func(r *Registry, src *T, n node.Node) error
}

// Name returns the map key of the field
func (f Field[T]) Name() string { return f.name }

// FieldOption configures a Field
type FieldOption func(*fieldOptions)

type fieldOptions struct {
	required bool
}

// Required makes decoding fail with *MissingFieldError when the key is absent
func Required() FieldOption {
	return func(o *fieldOptions) { o.required = true }
}

// 🔗 Bind binds key to the field returned by get, using the registry codec for V
func Bind[T, V any](key string, get func(*T) *V, opts ...FieldOption) Field[T] {
	return bind(key, get, func(r *Registry) (Codec[V], error) { return Lookup[V](r) }, opts)
}

// 🔗 BindWith binds key to the field returned by get, using c
func BindWith[T, V any](key string, c Codec[V], get func(*T) *V, opts ...FieldOption) Field[T] {
	return bind(key, get, func(*Registry) (Codec[V], error) { return c, nil }, opts)
}

func bind[T, V any](key string, get func(*T) *V, resolve func(*Registry) (Codec[V], error), opts []FieldOption) Field[T] {
	var o fieldOptions
	for _, opt := range opts {
		opt(&o)
	}
	return Field[T]{
		name:     key,
		required: o.required,
		decode: func(r *Registry, n node.Node, dst *T) error {
			c, err := resolve(r)
			if err != nil {
				return err
			}
			v, err := c.Decode(r, n)
			if err != nil {
				return err
			}
			*get(dst) = v
			return nil
		},
		encode: func(r *Registry, src *T, n node.Node) error {
			c, err := resolve(r)
			if err != nil {
				return err
			}
			return c.Encode(r, *get(src), n)
		},
	}
}

// 📝 RegisterRecord installs a structural codec for T
func RegisterRecord[T any](r *Registry, rec Record[T]) {
	r.records[reflect.TypeFor[T]()] = &recordCodec[T]{rec: rec}
}

// NewRecord returns the structural codec for rec without registering it
func NewRecord[T any](rec Record[T]) Codec[T] {
	return &recordCodec[T]{rec: rec}
}

type recordCodec[T any] struct {
	rec Record[T]
}

func (c *recordCodec[T]) Decode(r *Registry, n node.Node) (T, error) {
	var out T
	if n.IsNull() {
		return out, nullError(n.PathString())
	}
	if !n.IsMap() {
		return out, &node.TypeMismatchError{Path: n.PathString(), Want: "map", Got: n.Kind(), Raw: n.Raw()}
	}
	if c.rec.New != nil {
		out = c.rec.New()
	}
	for _, f := range c.rec.Fields {
		child := n.Child(f.name)
		if child.IsNull() {
			if f.required {
				return out, &MissingFieldError{Path: n.PathString(), Field: f.name}
			}
			continue
		}
		if err := f.decode(r, child, &out); err != nil {
			return out, err
		}
	}
	if c.rec.Validate != nil {
		if err := c.rec.Validate(&out); err != nil {
			return out, errors.Errorf("validating %s: %w", n.PathString(), err)
		}
	}
	return out, nil
}

func (c *recordCodec[T]) Encode(r *Registry, v T, n node.Node) error {
	m, err := n.SetMap()
	if err != nil {
		return errors.Errorf("encoding %s: %w", n.PathString(), err)
	}
	for _, f := range c.rec.Fields {
		if err := f.encode(r, &v, m.Child(f.name)); err != nil {
			return errors.Errorf("encoding field %q: %w", f.name, err)
		}
	}
	return nil
}
