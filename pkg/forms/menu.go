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

package forms

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gitlab.com/tozd/go/errors"

	"github.com/Heleguo/CrossplatForms/pkg/codec"
)

// 📦 JavaButton is an item in a chest menu
type JavaButton struct {
	Material   string
	Name       string
	Lore       []string
	LeftClick  []Action
	RightClick []Action
}

// JavaMenu is a chest inventory shown to Java players. Buttons are keyed by
// slot.
type JavaMenu struct {
	Title   string
	Size    int
	Buttons *orderedmap.OrderedMap[int, JavaButton]
}

// 📋 MenuConfig is java-menus.yml
type MenuConfig struct {
	Enable bool
	Menus  *orderedmap.OrderedMap[string, JavaMenu]
}

func registerMenus(r *codec.Registry) {
	actions := codec.PolymorphicList[Action]()

	codec.RegisterRecord(r, codec.Record[JavaButton]{
		Fields: []codec.Field[JavaButton]{
			codec.Bind("material", func(b *JavaButton) *string { return &b.Material }, codec.Required()),
			codec.Bind("name", func(b *JavaButton) *string { return &b.Name }),
			codec.BindWith("lore", codec.ListOf[string](), func(b *JavaButton) *[]string { return &b.Lore }),
			codec.BindWith("left-click", actions, func(b *JavaButton) *[]Action { return &b.LeftClick }),
			codec.BindWith("right-click", actions, func(b *JavaButton) *[]Action { return &b.RightClick }),
		},
	})
	codec.RegisterRecord(r, codec.Record[JavaMenu]{
		New: func() JavaMenu { return JavaMenu{Size: 27} },
		Fields: []codec.Field[JavaMenu]{
			codec.Bind("title", func(m *JavaMenu) *string { return &m.Title }, codec.Required()),
			codec.Bind("size", func(m *JavaMenu) *int { return &m.Size }),
			codec.BindWith("buttons", codec.IndexedMapOf[JavaButton](), func(m *JavaMenu) **orderedmap.OrderedMap[int, JavaButton] { return &m.Buttons }),
		},
		Validate: func(m *JavaMenu) error {
			if m.Size <= 0 || m.Size > 54 || m.Size%9 != 0 {
				return errors.Errorf("menu size must be a multiple of 9 up to 54, got %d", m.Size)
			}
			if m.Buttons == nil {
				return nil
			}
			for pair := m.Buttons.Oldest(); pair != nil; pair = pair.Next() {
				if pair.Key < 0 || pair.Key >= m.Size {
					return errors.Errorf("button slot %d is outside a menu of size %d", pair.Key, m.Size)
				}
			}
			return nil
		},
	})
	codec.RegisterRecord(r, codec.Record[MenuConfig]{
		New: func() MenuConfig { return MenuConfig{Enable: true} },
		Fields: []codec.Field[MenuConfig]{
			codec.Bind("enable", func(c *MenuConfig) *bool { return &c.Enable }),
			codec.BindWith("menus", codec.MapOf[JavaMenu](), func(c *MenuConfig) **orderedmap.OrderedMap[string, JavaMenu] { return &c.Menus }),
		},
	})
}
