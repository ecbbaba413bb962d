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

	"github.com/Heleguo/CrossplatForms/pkg/codec"
)

// 🔑 AccessItem is an inventory item that opens a form or menu when used
type AccessItem struct {
	Material    string
	Name        string
	Lore        []string
	Slot        int
	Form        string
	Persist     bool
	DropOnDeath bool
}

// AccessItemConfig is access-items.yml
type AccessItemConfig struct {
	Enable      bool
	SetHeldSlot bool
	Items       *orderedmap.OrderedMap[string, AccessItem]
}

// GeneralConfig is config.yml
type GeneralConfig struct {
	EnableDebug bool
	Prefix      string
}

func registerGeneral(r *codec.Registry) {
	codec.RegisterRecord(r, codec.Record[AccessItem]{
		Fields: []codec.Field[AccessItem]{
			codec.Bind("material", func(i *AccessItem) *string { return &i.Material }, codec.Required()),
			codec.Bind("name", func(i *AccessItem) *string { return &i.Name }),
			codec.BindWith("lore", codec.ListOf[string](), func(i *AccessItem) *[]string { return &i.Lore }),
			codec.Bind("slot", func(i *AccessItem) *int { return &i.Slot }),
			codec.Bind("form", func(i *AccessItem) *string { return &i.Form }, codec.Required()),
			codec.Bind("persist", func(i *AccessItem) *bool { return &i.Persist }),
			codec.Bind("drop-on-death", func(i *AccessItem) *bool { return &i.DropOnDeath }),
		},
	})
	codec.RegisterRecord(r, codec.Record[AccessItemConfig]{
		New: func() AccessItemConfig { return AccessItemConfig{Enable: true} },
		Fields: []codec.Field[AccessItemConfig]{
			codec.Bind("enable", func(c *AccessItemConfig) *bool { return &c.Enable }),
			codec.Bind("set-held-slot", func(c *AccessItemConfig) *bool { return &c.SetHeldSlot }),
			codec.BindWith("items", codec.MapOf[AccessItem](), func(c *AccessItemConfig) **orderedmap.OrderedMap[string, AccessItem] { return &c.Items }),
		},
	})
	codec.RegisterRecord(r, codec.Record[GeneralConfig]{
		New: func() GeneralConfig { return GeneralConfig{Prefix: "[CrossplatForms]"} },
		Fields: []codec.Field[GeneralConfig]{
			codec.Bind("enable-debug", func(c *GeneralConfig) *bool { return &c.EnableDebug }),
			codec.Bind("prefix", func(c *GeneralConfig) *string { return &c.Prefix }),
		},
	})
}
