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
	"strconv"

	"github.com/spf13/cast"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gitlab.com/tozd/go/errors"

	"github.com/Heleguo/CrossplatForms/pkg/node"
)

// Collection codecs decode a missing or null node as a nil collection and
// skip encoding nil collections, leaving the target node untouched.

// 📚 ListOf returns a codec for []E. A scalar decodes as a one-element list.
// The first element that fails aborts the decode.
func ListOf[E any]() Codec[[]E] {
	return listCodec[E]{}
}

type listCodec[E any] struct{}

func (listCodec[E]) Decode(r *Registry, n node.Node) ([]E, error) {
	if n.IsNull() {
		return nil, nil
	}
	if !n.IsList() {
		v, err := Decode[E](r, n)
		if err != nil {
			return nil, err
		}
		return []E{v}, nil
	}
	out := make([]E, 0, n.Len())
	for _, child := range n.ChildrenList() {
		v, err := Decode[E](r, child)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (listCodec[E]) Encode(r *Registry, v []E, n node.Node) error {
	return encodeList(r, v, n)
}

func encodeList[E any](r *Registry, v []E, n node.Node) error {
	if v == nil {
		return nil
	}
	list, err := n.SetList()
	if err != nil {
		return errors.Errorf("encoding %s: %w", n.PathString(), err)
	}
	for i, e := range v {
		if err := Encode(r, e, list.Child(i)); err != nil {
			return err
		}
	}
	return nil
}

// 🎭 PolymorphicList returns a codec for a list of variants of T.
//
// A scalar, or a map lacking the discriminator, is the shorthand for a single
// entry and decodes as a one-element list through T's codec, which falls back
// to its default variant. Every element is decoded independently: failures
// are joined into the returned error and the elements that did decode are
// still returned.
func PolymorphicList[T any]() Codec[[]T] {
	return polymorphicList[T]{}
}

type polymorphicList[T any] struct{}

func (polymorphicList[T]) Decode(r *Registry, n node.Node) ([]T, error) {
	if n.IsNull() {
		return nil, nil
	}
	if !n.IsList() {
		v, err := Decode[T](r, n)
		if err != nil {
			return nil, err
		}
		return []T{v}, nil
	}
	out := make([]T, 0, n.Len())
	var errs []error
	for _, child := range n.ChildrenList() {
		v, err := Decode[T](r, child)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, v)
	}
	return out, errors.Join(errs...)
}

func (polymorphicList[T]) Encode(r *Registry, v []T, n node.Node) error {
	return encodeList(r, v, n)
}

// 🗺️ MapOf returns a codec for an ordered string-keyed map of V
func MapOf[V any]() Codec[*orderedmap.OrderedMap[string, V]] {
	return mapCodec[string, V]{key: cast.ToStringE, format: func(k string) string { return k }}
}

// 🗺️ IndexedMapOf returns a codec for an ordered map of V keyed by integers,
// such as inventory slots. Keys that are not integers fail the decode.
func IndexedMapOf[V any]() Codec[*orderedmap.OrderedMap[int, V]] {
	return mapCodec[int, V]{key: cast.ToIntE, format: strconv.Itoa}
}

type mapCodec[K comparable, V any] struct {
	key    func(any) (K, error)
	format func(K) string
}

func (c mapCodec[K, V]) Decode(r *Registry, n node.Node) (*orderedmap.OrderedMap[K, V], error) {
	if n.IsNull() {
		return nil, nil
	}
	if !n.IsMap() {
		return nil, &node.TypeMismatchError{Path: n.PathString(), Want: "map", Got: n.Kind(), Raw: n.Raw()}
	}
	out := orderedmap.New[K, V](n.Len())
	for _, child := range n.ChildrenMap() {
		k, err := c.key(child.Key())
		if err != nil {
			return nil, &node.TypeMismatchError{Path: child.PathString(), Want: "map key", Got: node.KindScalar, Raw: child.Key(), Err: err}
		}
		v, err := Decode[V](r, child)
		if err != nil {
			return nil, err
		}
		out.Set(k, v)
	}
	return out, nil
}

func (c mapCodec[K, V]) Encode(r *Registry, v *orderedmap.OrderedMap[K, V], n node.Node) error {
	if v == nil {
		return nil
	}
	m, err := n.SetMap()
	if err != nil {
		return errors.Errorf("encoding %s: %w", n.PathString(), err)
	}
	for pair := v.Oldest(); pair != nil; pair = pair.Next() {
		if err := Encode(r, pair.Value, m.Child(c.format(pair.Key))); err != nil {
			return err
		}
	}
	return nil
}

// PointerTo returns a codec for optional values: missing or null nodes decode
// as nil and nil pointers are not encoded
func PointerTo[V any]() Codec[*V] {
	return pointerCodec[V]{}
}

type pointerCodec[V any] struct{}

func (pointerCodec[V]) Decode(r *Registry, n node.Node) (*V, error) {
	if n.IsNull() {
		return nil, nil
	}
	v, err := Decode[V](r, n)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (pointerCodec[V]) Encode(r *Registry, v *V, n node.Node) error {
	if v == nil {
		return nil
	}
	return Encode(r, *v, n)
}
