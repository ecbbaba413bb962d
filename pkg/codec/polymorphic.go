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
	"slices"

	"gitlab.com/tozd/go/errors"

	"github.com/Heleguo/CrossplatForms/pkg/node"
)

// Kinded is implemented by variant types that name their own discriminator
type Kinded interface {
	Kind() string
}

// 🎭 Polymorphic describes a closed family of variants behind T, selected by
// a discriminator field embedded in the map node
type Polymorphic[T any] struct {
	// Field is the discriminator key, e.g. "type"
	Field string

	// Default is the variant used when the discriminator is absent or the
	// node is a scalar. Empty means the discriminator is required.
	Default string

	Variants map[string]Codec[T]

	// KindOf names the variant of a value when encoding. Nil means values
	// must implement Kinded.
	KindOf func(T) string
}

// 📝 RegisterPolymorphic installs a discriminator-based codec for T
func RegisterPolymorphic[T any](r *Registry, p Polymorphic[T]) {
	Register[T](r, NewPolymorphic(p))
}

// NewPolymorphic returns the discriminator-based codec for p without
// registering it
func NewPolymorphic[T any](p Polymorphic[T]) Codec[T] {
	if p.Default != "" {
		if _, ok := p.Variants[p.Default]; !ok {
			panic(fmt.Sprintf("codec: default variant %q is not one of the variants", p.Default))
		}
	}
	return &polymorphicCodec[T]{p: p}
}

type polymorphicCodec[T any] struct {
	p Polymorphic[T]
}

func (c *polymorphicCodec[T]) known() []string {
	out := make([]string, 0, len(c.p.Variants))
	for k := range c.p.Variants {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Kind resolves the variant name for n without decoding it
func (c *polymorphicCodec[T]) kind(n node.Node) (string, error) {
	if !n.IsMap() || n.Child(c.p.Field).IsNull() {
		if c.p.Default == "" {
			if !n.IsMap() {
				return "", &node.TypeMismatchError{Path: n.PathString(), Want: "map", Got: n.Kind(), Raw: n.Raw()}
			}
			return "", &MissingFieldError{Path: n.PathString(), Field: c.p.Field}
		}
		return c.p.Default, nil
	}
	kind, err := node.Scalar[string](n.Child(c.p.Field))
	if err != nil {
		return "", err
	}
	if _, ok := c.p.Variants[kind]; !ok {
		return "", &UnknownVariantError{Path: n.PathString(), Field: c.p.Field, Value: kind, Known: c.known()}
	}
	return kind, nil
}

func (c *polymorphicCodec[T]) Decode(r *Registry, n node.Node) (T, error) {
	var zero T
	if n.IsNull() {
		return zero, nullError(n.PathString())
	}
	kind, err := c.kind(n)
	if err != nil {
		return zero, err
	}
	v, err := c.p.Variants[kind].Decode(r, n)
	if err != nil {
		return zero, errors.Errorf("decoding %s variant %q: %w", n.PathString(), kind, err)
	}
	return v, nil
}

func (c *polymorphicCodec[T]) Encode(r *Registry, v T, n node.Node) error {
	var kind string
	switch {
	case c.p.KindOf != nil:
		kind = c.p.KindOf(v)
	default:
		k, ok := any(v).(Kinded)
		if !ok {
			return errors.Errorf("encoding %s: %T does not name its variant", n.PathString(), v)
		}
		kind = k.Kind()
	}
	variant, ok := c.p.Variants[kind]
	if !ok {
		return &UnknownVariantError{Path: n.PathString(), Field: c.p.Field, Value: kind, Known: c.known()}
	}
	m, err := n.SetMap()
	if err != nil {
		return errors.Errorf("encoding %s: %w", n.PathString(), err)
	}
	if _, err := m.Child(c.p.Field).Set(kind); err != nil {
		return errors.Errorf("encoding %s: %w", n.PathString(), err)
	}
	return variant.Encode(r, v, m)
}

// 🧩 Variant adapts the registry codec of the concrete type V into a variant
// of T. V must be assignable to T.
func Variant[T, V any]() Codec[T] {
	return variantCodec[T, V]{resolve: func(r *Registry) (Codec[V], error) { return Lookup[V](r) }}
}

// VariantWith adapts c into a variant of T
func VariantWith[T, V any](c Codec[V]) Codec[T] {
	return variantCodec[T, V]{resolve: func(*Registry) (Codec[V], error) { return c, nil }}
}

type variantCodec[T, V any] struct {
	resolve func(*Registry) (Codec[V], error)
}

func (c variantCodec[T, V]) Decode(r *Registry, n node.Node) (T, error) {
	var zero T
	vc, err := c.resolve(r)
	if err != nil {
		return zero, err
	}
	v, err := vc.Decode(r, n)
	if err != nil {
		return zero, err
	}
	out, ok := any(v).(T)
	if !ok {
		return zero, errors.Errorf("%T is not a variant of %T", v, zero)
	}
	return out, nil
}

func (c variantCodec[T, V]) Encode(r *Registry, v T, n node.Node) error {
	concrete, ok := any(v).(V)
	if !ok {
		return errors.Errorf("encoding %s: %T is not a %T", n.PathString(), v, concrete)
	}
	vc, err := c.resolve(r)
	if err != nil {
		return err
	}
	return vc.Encode(r, concrete, n)
}
