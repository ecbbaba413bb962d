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

// Form kinds
const (
	KindSimple = "simple"
	KindModal  = "modal"
	KindCustom = "custom"
)

// 📱 BedrockForm is a form shown to Bedrock players
type BedrockForm interface {
	Kind() string
	FormTitle() string
}

// SimpleButton is a button of a simple form
type SimpleButton struct {
	Text    string
	Image   *FormImage
	Actions []Action
}

// ModalButton is one of the two buttons of a modal form
type ModalButton struct {
	Text    string
	Actions []Action
}

// SimpleForm is a list of buttons
type SimpleForm struct {
	Title   string
	Content string
	Buttons []SimpleButton
}

// ModalForm asks a question with two answers
type ModalForm struct {
	Title   string
	Content string
	Button1 ModalButton
	Button2 ModalButton
}

// CustomForm collects input from components and runs its actions on submit
type CustomForm struct {
	Title      string
	Image      *FormImage
	Components []CustomComponent
	Actions    []Action
}

func (SimpleForm) Kind() string        { return KindSimple }
func (ModalForm) Kind() string         { return KindModal }
func (CustomForm) Kind() string        { return KindCustom }
func (f SimpleForm) FormTitle() string { return f.Title }
func (f ModalForm) FormTitle() string  { return f.Title }
func (f CustomForm) FormTitle() string { return f.Title }

// 📋 FormConfig is bedrock-forms.yml
type FormConfig struct {
	Enable bool
	Forms  *orderedmap.OrderedMap[string, BedrockForm]
}

func registerForms(r *codec.Registry) {
	actions := codec.PolymorphicList[Action]()

	codec.Register[FormImage](r, imageCodec)
	codec.RegisterRecord(r, codec.Record[SimpleButton]{
		Fields: []codec.Field[SimpleButton]{
			codec.Bind("text", func(b *SimpleButton) *string { return &b.Text }, codec.Required()),
			codec.BindWith("image", codec.PointerTo[FormImage](), func(b *SimpleButton) **FormImage { return &b.Image }),
			codec.BindWith("actions", actions, func(b *SimpleButton) *[]Action { return &b.Actions }),
		},
	})
	codec.RegisterRecord(r, codec.Record[ModalButton]{
		Fields: []codec.Field[ModalButton]{
			codec.Bind("text", func(b *ModalButton) *string { return &b.Text }, codec.Required()),
			codec.BindWith("actions", actions, func(b *ModalButton) *[]Action { return &b.Actions }),
		},
	})

	codec.RegisterRecord(r, codec.Record[SimpleForm]{
		Fields: []codec.Field[SimpleForm]{
			codec.Bind("title", func(f *SimpleForm) *string { return &f.Title }, codec.Required()),
			codec.Bind("content", func(f *SimpleForm) *string { return &f.Content }),
			codec.BindWith("buttons", codec.ListOf[SimpleButton](), func(f *SimpleForm) *[]SimpleButton { return &f.Buttons }),
		},
	})
	codec.RegisterRecord(r, codec.Record[ModalForm]{
		Fields: []codec.Field[ModalForm]{
			codec.Bind("title", func(f *ModalForm) *string { return &f.Title }, codec.Required()),
			codec.Bind("content", func(f *ModalForm) *string { return &f.Content }),
			codec.Bind("button1", func(f *ModalForm) *ModalButton { return &f.Button1 }, codec.Required()),
			codec.Bind("button2", func(f *ModalForm) *ModalButton { return &f.Button2 }, codec.Required()),
		},
	})
	codec.RegisterRecord(r, codec.Record[CustomForm]{
		Fields: []codec.Field[CustomForm]{
			codec.Bind("title", func(f *CustomForm) *string { return &f.Title }, codec.Required()),
			codec.BindWith("image", codec.PointerTo[FormImage](), func(f *CustomForm) **FormImage { return &f.Image }),
			codec.BindWith("components", codec.ListOf[CustomComponent](), func(f *CustomForm) *[]CustomComponent { return &f.Components }),
			codec.BindWith("actions", actions, func(f *CustomForm) *[]Action { return &f.Actions }, codec.Required()),
		},
	})

	codec.RegisterPolymorphic(r, codec.Polymorphic[BedrockForm]{
		Field:   "type",
		Default: KindSimple,
		Variants: map[string]codec.Codec[BedrockForm]{
			KindSimple: codec.Variant[BedrockForm, SimpleForm](),
			KindModal:  codec.Variant[BedrockForm, ModalForm](),
			KindCustom: codec.Variant[BedrockForm, CustomForm](),
		},
	})

	codec.RegisterRecord(r, codec.Record[FormConfig]{
		New: func() FormConfig { return FormConfig{Enable: true} },
		Fields: []codec.Field[FormConfig]{
			codec.Bind("enable", func(c *FormConfig) *bool { return &c.Enable }),
			codec.BindWith("forms", codec.MapOf[BedrockForm](), func(c *FormConfig) **orderedmap.OrderedMap[string, BedrockForm] { return &c.Forms }),
		},
	})
}
