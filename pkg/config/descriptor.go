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
	"reflect"

	"gitlab.com/tozd/go/errors"

	"github.com/Heleguo/CrossplatForms/pkg/codec"
	"github.com/Heleguo/CrossplatForms/pkg/migrate"
	"github.com/Heleguo/CrossplatForms/pkg/node"
)

// 📋 Descriptor binds a config file to its target type, version bounds,
// migration chain and default factory. Build one with Describe.
type Descriptor struct {
	fileName  string
	template  string
	current   int
	minimum   int
	migration func() *migrate.Chain

	typ      reflect.Type
	decode   func(r *codec.Registry, n node.Node) (any, error)
	encode   func(r *codec.Registry, v any) (*node.Tree, error)
	defaults func() (any, error)
}

// DescriptorOption configures a Descriptor
type DescriptorOption func(*Descriptor)

// Version sets the current version and the oldest version that can still be
// migrated. Both default to 1.
func Version(current, minimum int) DescriptorOption {
	return func(d *Descriptor) {
		d.current = current
		d.minimum = minimum
	}
}

// Migration sets the supplier of the chain that upgrades old files
func Migration(chain func() *migrate.Chain) DescriptorOption {
	return func(d *Descriptor) { d.migration = chain }
}

// Template names the bundled resource copied into place when the file is
// missing. It defaults to the file name.
func Template(name string) DescriptorOption {
	return func(d *Descriptor) { d.template = name }
}

// 🏭 Describe creates the descriptor of a config file decoded into T.
// defaults builds the object used when the file cannot be loaded; nil means
// T has no usable defaults. Describe panics when the minimum version is
// above the current one.
func Describe[T any](fileName string, defaults func() (T, error), opts ...DescriptorOption) *Descriptor {
	d := &Descriptor{
		fileName: fileName,
		template: fileName,
		current:  1,
		minimum:  1,
		typ:      reflect.TypeFor[T](),
		decode: func(r *codec.Registry, n node.Node) (any, error) {
			return codec.Decode[T](r, n)
		},
		encode: func(r *codec.Registry, v any) (*node.Tree, error) {
			return codec.EncodeTree(r, v.(T))
		},
	}
	if defaults != nil {
		d.defaults = func() (any, error) { return defaults() }
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.minimum > d.current {
		panic(fmt.Sprintf("config: %s: minimum version %d is above current version %d", fileName, d.minimum, d.current))
	}
	return d
}

// FileName returns the file's path relative to the config root
func (d *Descriptor) FileName() string { return d.fileName }

// TemplateName returns the bundled resource name
func (d *Descriptor) TemplateName() string { return d.template }

// CurrentVersion returns the version files are upgraded to
func (d *Descriptor) CurrentVersion() int { return d.current }

// MinimumVersion returns the oldest version that can be migrated
func (d *Descriptor) MinimumVersion() int { return d.minimum }

// Type returns the target type
func (d *Descriptor) Type() reflect.Type { return d.typ }

// TypeName returns the target type's name for logs
func (d *Descriptor) TypeName() string { return d.typ.String() }

func (d *Descriptor) target() migrate.Target {
	t := migrate.Target{Current: d.current, Minimum: d.minimum}
	if d.migration != nil {
		t.Chain = d.migration()
	}
	return t
}

// Defaults builds the default object
func (d *Descriptor) Defaults() (any, error) {
	if d.defaults == nil {
		return nil, &DefaultConstructionError{Type: d.TypeName()}
	}
	v, err := d.defaults()
	if err != nil {
		return nil, &DefaultConstructionError{Type: d.TypeName(), Err: err}
	}
	return v, nil
}

// 💾 DefaultTree encodes the default object with r, stamped with the current
// version
func (d *Descriptor) DefaultTree(r *codec.Registry) (*node.Tree, error) {
	v, err := d.Defaults()
	if err != nil {
		return nil, err
	}
	tree, err := d.encode(r, v)
	if err != nil {
		return nil, errors.Errorf("encoding defaults for %s: %w", d.fileName, err)
	}
	if tree.Root().IsMap() {
		if _, err := tree.Root().Child(migrate.VersionKey).Set(d.current); err != nil {
			return nil, errors.Errorf("stamping version: %w", err)
		}
	}
	return tree, nil
}
