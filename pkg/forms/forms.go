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

// Package forms holds the CrossplatForms configuration files: their typed
// shapes, codecs, bundled defaults and migrations.
package forms

import (
	"embed"
	"io/fs"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gitlab.com/tozd/go/errors"

	"github.com/Heleguo/CrossplatForms/pkg/codec"
	"github.com/Heleguo/CrossplatForms/pkg/config"
)

//go:embed defaults/*.yml
var bundled embed.FS

// Config files
const (
	GeneralFile     = "config.yml"
	AccessItemsFile = "access-items.yml"
	FormsFile       = "bedrock-forms.yml"
	MenusFile       = "java-menus.yml"
)

var (
	GeneralDescriptor = config.Describe(GeneralFile, func() (GeneralConfig, error) {
		return GeneralConfig{Prefix: "[CrossplatForms]"}, nil
	})

	AccessItemsDescriptor = config.Describe(AccessItemsFile, func() (AccessItemConfig, error) {
		return AccessItemConfig{Enable: true, Items: orderedmap.New[string, AccessItem]()}, nil
	})

	FormsDescriptor = config.Describe(FormsFile, func() (FormConfig, error) {
		return FormConfig{Enable: true, Forms: orderedmap.New[string, BedrockForm]()}, nil
	}, config.Version(3, 1), config.Migration(FormsMigration))

	MenusDescriptor = config.Describe(MenusFile, func() (MenuConfig, error) {
		return MenuConfig{Enable: true, Menus: orderedmap.New[string, JavaMenu]()}, nil
	}, config.Version(2, 1), config.Migration(MenusMigration))
)

// Descriptors returns every config file in load order
func Descriptors() []*config.Descriptor {
	return []*config.Descriptor{GeneralDescriptor, AccessItemsDescriptor, FormsDescriptor, MenusDescriptor}
}

// 📝 RegisterCodecs adds the codecs of every config type to r
func RegisterCodecs(r *codec.Registry) {
	codec.Register[DispatchableCommand](r, newCommandCodec())
	registerActions(r)
	registerComponents(r)
	registerForms(r)
	registerMenus(r)
	registerGeneral(r)
}

// NewRegistry returns a registry holding the codecs of every config type
func NewRegistry() *codec.Registry {
	r := codec.NewRegistry()
	RegisterCodecs(r)
	return r
}

// Resources returns the bundled default files
func Resources() fs.FS {
	sub, err := fs.Sub(bundled, "defaults")
	if err != nil {
		panic(err)
	}
	return sub
}

// 🏭 NewManager creates a manager for dir with every config file registered
func NewManager(dir string, opts ...config.Option) (*config.Manager, error) {
	opts = append([]config.Option{config.WithRegistry(NewRegistry()), config.WithResources(Resources())}, opts...)
	m := config.NewManager(dir, opts...)
	for _, d := range Descriptors() {
		if err := m.Register(d); err != nil {
			return nil, errors.Errorf("registering %s: %w", d.FileName(), err)
		}
	}
	return m, nil
}
