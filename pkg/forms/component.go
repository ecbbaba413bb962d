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
	"gitlab.com/tozd/go/errors"

	"github.com/Heleguo/CrossplatForms/pkg/codec"
)

// Component kinds
const (
	KindDropdown   = "dropdown"
	KindInput      = "input"
	KindLabel      = "label"
	KindSlider     = "slider"
	KindStepSlider = "step_slider"
	KindToggle     = "toggle"
)

// 🧩 CustomComponent is an element of a custom form
type CustomComponent interface {
	Kind() string
	Label() string
}

type Dropdown struct {
	Text    string
	Options []string
	Default int
}

type Input struct {
	Text        string
	Placeholder string
	Default     string
}

type Label struct {
	Text string
}

type Slider struct {
	Text    string
	Min     float64
	Max     float64
	Step    float64
	Default float64
}

type StepSlider struct {
	Text    string
	Steps   []string
	Default int
}

type Toggle struct {
	Text    string
	Default bool
}

func (Dropdown) Kind() string   { return KindDropdown }
func (Input) Kind() string      { return KindInput }
func (Label) Kind() string      { return KindLabel }
func (Slider) Kind() string     { return KindSlider }
func (StepSlider) Kind() string { return KindStepSlider }
func (Toggle) Kind() string     { return KindToggle }

func (c Dropdown) Label() string   { return c.Text }
func (c Input) Label() string      { return c.Text }
func (c Label) Label() string      { return c.Text }
func (c Slider) Label() string     { return c.Text }
func (c StepSlider) Label() string { return c.Text }
func (c Toggle) Label() string     { return c.Text }

func textField[T any](get func(*T) *string) codec.Field[T] {
	return codec.Bind("text", get, codec.Required())
}

func registerComponents(r *codec.Registry) {
	codec.RegisterRecord(r, codec.Record[Dropdown]{
		Fields: []codec.Field[Dropdown]{
			textField(func(c *Dropdown) *string { return &c.Text }),
			codec.BindWith("options", codec.ListOf[string](), func(c *Dropdown) *[]string { return &c.Options }, codec.Required()),
			codec.Bind("default", func(c *Dropdown) *int { return &c.Default }),
		},
		Validate: func(c *Dropdown) error {
			if c.Default < 0 || c.Default >= len(c.Options) {
				return errors.Errorf("default option %d is out of range for %d options", c.Default, len(c.Options))
			}
			return nil
		},
	})
	codec.RegisterRecord(r, codec.Record[Input]{
		Fields: []codec.Field[Input]{
			textField(func(c *Input) *string { return &c.Text }),
			codec.Bind("placeholder", func(c *Input) *string { return &c.Placeholder }),
			codec.Bind("default", func(c *Input) *string { return &c.Default }),
		},
	})
	codec.RegisterRecord(r, codec.Record[Label]{
		Fields: []codec.Field[Label]{
			textField(func(c *Label) *string { return &c.Text }),
		},
	})
	codec.RegisterRecord(r, codec.Record[Slider]{
		New: func() Slider { return Slider{Max: 100, Step: 1} },
		Fields: []codec.Field[Slider]{
			textField(func(c *Slider) *string { return &c.Text }),
			codec.Bind("min", func(c *Slider) *float64 { return &c.Min }),
			codec.Bind("max", func(c *Slider) *float64 { return &c.Max }),
			codec.Bind("step", func(c *Slider) *float64 { return &c.Step }),
			codec.Bind("default", func(c *Slider) *float64 { return &c.Default }),
		},
		Validate: func(c *Slider) error {
			if c.Min > c.Max {
				return errors.Errorf("slider min %v is above max %v", c.Min, c.Max)
			}
			if c.Step <= 0 {
				return errors.Errorf("slider step must be positive, got %v", c.Step)
			}
			if c.Default < c.Min || c.Default > c.Max {
				return errors.Errorf("slider default %v is outside [%v, %v]", c.Default, c.Min, c.Max)
			}
			return nil
		},
	})
	codec.RegisterRecord(r, codec.Record[StepSlider]{
		Fields: []codec.Field[StepSlider]{
			textField(func(c *StepSlider) *string { return &c.Text }),
			codec.BindWith("steps", codec.ListOf[string](), func(c *StepSlider) *[]string { return &c.Steps }, codec.Required()),
			codec.Bind("default", func(c *StepSlider) *int { return &c.Default }),
		},
		Validate: func(c *StepSlider) error {
			if c.Default < 0 || c.Default >= len(c.Steps) {
				return errors.Errorf("default step %d is out of range for %d steps", c.Default, len(c.Steps))
			}
			return nil
		},
	})
	codec.RegisterRecord(r, codec.Record[Toggle]{
		Fields: []codec.Field[Toggle]{
			textField(func(c *Toggle) *string { return &c.Text }),
			codec.Bind("default", func(c *Toggle) *bool { return &c.Default }),
		},
	})

	codec.RegisterPolymorphic(r, codec.Polymorphic[CustomComponent]{
		Field: "type",
		Variants: map[string]codec.Codec[CustomComponent]{
			KindDropdown:   codec.Variant[CustomComponent, Dropdown](),
			KindInput:      codec.Variant[CustomComponent, Input](),
			KindLabel:      codec.Variant[CustomComponent, Label](),
			KindSlider:     codec.Variant[CustomComponent, Slider](),
			KindStepSlider: codec.Variant[CustomComponent, StepSlider](),
			KindToggle:     codec.Variant[CustomComponent, Toggle](),
		},
	})
}
