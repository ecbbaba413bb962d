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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/Heleguo/CrossplatForms/pkg/node"
)

type Shape interface {
	Kind() string
}

type Circle struct {
	Radius float64
	Label  string
}

func (Circle) Kind() string { return "circle" }

type Square struct {
	Side  float64
	Label string
}

func (Square) Kind() string { return "square" }

type Drawing struct {
	Name   string
	Scale  int
	Shapes []Shape
	Tags   []string
	Owner  *string
}

// circleCodec accepts a bare radius as shorthand
var circleCodec = Func[Circle]{
	DecodeFunc: func(r *Registry, n node.Node) (Circle, error) {
		if n.IsScalar() {
			radius, err := node.Scalar[float64](n)
			return Circle{Radius: radius}, err
		}
		return NewRecord(Record[Circle]{
			Fields: []Field[Circle]{
				Bind("radius", func(c *Circle) *float64 { return &c.Radius }, Required()),
				Bind("label", func(c *Circle) *string { return &c.Label }),
			},
		}).Decode(r, n)
	},
	EncodeFunc: func(r *Registry, v Circle, n node.Node) error {
		_, err := n.Child("radius").Set(v.Radius)
		return err
	},
}

func newTestRegistry() *Registry {
	r := NewRegistry()
	RegisterRecord(r, Record[Square]{
		Fields: []Field[Square]{
			Bind("side", func(s *Square) *float64 { return &s.Side }, Required()),
			Bind("label", func(s *Square) *string { return &s.Label }),
		},
	})
	RegisterPolymorphic(r, Polymorphic[Shape]{
		Field:   "type",
		Default: "circle",
		Variants: map[string]Codec[Shape]{
			"circle": VariantWith[Shape](Codec[Circle](circleCodec)),
			"square": Variant[Shape, Square](),
		},
	})
	RegisterRecord(r, Record[Drawing]{
		New: func() Drawing { return Drawing{Scale: 1} },
		Fields: []Field[Drawing]{
			Bind("name", func(d *Drawing) *string { return &d.Name }, Required()),
			Bind("scale", func(d *Drawing) *int { return &d.Scale }),
			BindWith("shapes", PolymorphicList[Shape](), func(d *Drawing) *[]Shape { return &d.Shapes }),
			BindWith("tags", ListOf[string](), func(d *Drawing) *[]string { return &d.Tags }),
			BindWith("owner", PointerTo[string](), func(d *Drawing) **string { return &d.Owner }),
		},
		Validate: func(d *Drawing) error {
			if d.Scale <= 0 {
				return errors.New("scale must be positive")
			}
			return nil
		},
	})
	return r
}

func parse(t *testing.T, src string) node.Node {
	t.Helper()
	tree, err := node.Parse("test.yml", []byte(src))
	require.NoError(t, err)
	return tree.Root()
}

// 🧪 TestRecordDecoding tests structural decoding through field descriptors
func TestRecordDecoding(t *testing.T) {
	r := newTestRegistry()
	owner := "ada"

	tests := []struct {
		name    string
		src     string
		want    Drawing
		wantErr func(t *testing.T, err error)
	}{
		{
			name: "full",
			src:  "name: d1\nscale: 3\nshapes:\n  - type: square\n    side: 2\n  - radius: 1\ntags: [a, b]\nowner: ada\n",
			want: Drawing{
				Name:   "d1",
				Scale:  3,
				Shapes: []Shape{Square{Side: 2}, Circle{Radius: 1}},
				Tags:   []string{"a", "b"},
				Owner:  &owner,
			},
		},
		{
			name: "defaults_from_new",
			src:  "name: d2\nunknown_key: ignored\n",
			want: Drawing{Name: "d2", Scale: 1},
		},
		{
			name: "null_values_count_as_absent",
			src:  "name: d3\nscale:\nowner: ~\n",
			want: Drawing{Name: "d3", Scale: 1},
		},
		{
			name: "missing_required",
			src:  "scale: 2\n",
			wantErr: func(t *testing.T, err error) {
				var missing *MissingFieldError
				require.ErrorAs(t, err, &missing)
				assert.Equal(t, "name", missing.Field)
			},
		},
		{
			name: "type_mismatch",
			src:  "name: d4\nscale: big\n",
			wantErr: func(t *testing.T, err error) {
				var mismatch *node.TypeMismatchError
				require.ErrorAs(t, err, &mismatch)
				assert.Equal(t, "scale", mismatch.Path)
			},
		},
		{
			name: "validation",
			src:  "name: d5\nscale: -1\n",
			wantErr: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "scale must be positive")
			},
		},
		{
			name: "not_a_map",
			src:  "- a\n- b\n",
			wantErr: func(t *testing.T, err error) {
				var mismatch *node.TypeMismatchError
				assert.ErrorAs(t, err, &mismatch)
			},
		},
		{
			name: "empty_document",
			src:  "",
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrDecodeNull)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode[Drawing](r, parse(t, tt.src))
			if tt.wantErr != nil {
				require.Error(t, err)
				tt.wantErr(t, err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("decoded drawing mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// 🧪 TestDecodeDoesNotTouchTree tests that decoding never materializes nodes
func TestDecodeDoesNotTouchTree(t *testing.T) {
	r := newTestRegistry()
	root := parse(t, "name: d\n")
	before := root.Copy()

	_, err := Decode[Drawing](r, root)
	require.NoError(t, err)
	assert.True(t, node.Equal(before.Root(), root), "decode must not write defaults back")
	assert.True(t, root.Child("scale").IsVirtual())
}

// 🧪 TestPolymorphicDecoding tests discriminator resolution
func TestPolymorphicDecoding(t *testing.T) {
	r := newTestRegistry()

	shape, err := Decode[Shape](r, parse(t, "type: square\nside: 4\nlabel: box\n"))
	require.NoError(t, err)
	assert.Equal(t, Square{Side: 4, Label: "box"}, shape)

	shape, err = Decode[Shape](r, parse(t, "radius: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, Circle{Radius: 2}, shape, "missing discriminator uses the default variant")

	shape, err = Decode[Shape](r, parse(t, "5\n"))
	require.NoError(t, err)
	assert.Equal(t, Circle{Radius: 5}, shape, "scalars use the default variant")

	_, err = Decode[Shape](r, parse(t, "type: hexagon\n"))
	var unknown *UnknownVariantError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "hexagon", unknown.Value)
	assert.Equal(t, []string{"circle", "square"}, unknown.Known)

	_, err = Decode[Shape](r, parse(t, "type: square\n"))
	var missing *MissingFieldError
	assert.ErrorAs(t, err, &missing, "fields of the resolved variant are checked")
}

// 🧪 TestPolymorphicWithoutDefault tests that the discriminator can be mandatory
func TestPolymorphicWithoutDefault(t *testing.T) {
	r := newTestRegistry()
	strict := NewPolymorphic(Polymorphic[Shape]{
		Field:    "type",
		Variants: map[string]Codec[Shape]{"square": Variant[Shape, Square]()},
	})

	_, err := strict.Decode(r, parse(t, "side: 1\n"))
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "type", missing.Field)

	assert.Panics(t, func() {
		NewPolymorphic(Polymorphic[Shape]{Field: "type", Default: "nope", Variants: map[string]Codec[Shape]{}})
	})
}

// 🧪 TestPolymorphicListShorthand tests the single-entry shorthand and error containment
func TestPolymorphicListShorthand(t *testing.T) {
	r := newTestRegistry()
	c := PolymorphicList[Shape]()

	fromScalar, err := c.Decode(r, parse(t, "3\n"))
	require.NoError(t, err)
	fromList, err := c.Decode(r, parse(t, "[3]\n"))
	require.NoError(t, err)
	assert.Equal(t, fromList, fromScalar, "bare scalar equals a one-element list")
	assert.Equal(t, []Shape{Circle{Radius: 3}}, fromScalar)

	fromMap, err := c.Decode(r, parse(t, "radius: 1\nlabel: x\n"))
	require.NoError(t, err)
	assert.Equal(t, []Shape{Circle{Radius: 1, Label: "x"}}, fromMap, "map without discriminator is one entry")

	mixed, err := c.Decode(r, parse(t, "- type: square\n  side: 2\n- type: hexagon\n- 7\n- type: square\n"))
	require.Error(t, err)
	var unknown *UnknownVariantError
	assert.ErrorAs(t, err, &unknown, "unknown variants are reported")
	var missing *MissingFieldError
	assert.ErrorAs(t, err, &missing, "every failure is reported")
	assert.Equal(t, []Shape{Square{Side: 2}, Circle{Radius: 7}}, mixed, "siblings still decode")

	empty, err := c.Decode(r, parse(t, "shapes:\n").Child("missing"))
	require.NoError(t, err)
	assert.Nil(t, empty)
}

// 🧪 TestLookupOrder tests exact codecs winning over records and builtins
func TestLookupOrder(t *testing.T) {
	r := newTestRegistry()

	_, err := Decode[Square](r, parse(t, "side: 2\n"))
	require.NoError(t, err)

	Register(r, Codec[Square](Func[Square]{
		DecodeFunc: func(*Registry, node.Node) (Square, error) { return Square{Label: "exact"}, nil },
	}))
	sq, err := Decode[Square](r, parse(t, "side: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, "exact", sq.Label)

	Register(r, Codec[string](Func[string]{
		DecodeFunc: func(_ *Registry, n node.Node) (string, error) { return "custom", nil },
	}))
	s, err := Decode[string](r, parse(t, "x\n"))
	require.NoError(t, err)
	assert.Equal(t, "custom", s)

	n, err := Decode[int](NewRegistry(), parse(t, "12\n"))
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	_, err = Decode[struct{ X int }](r, parse(t, "x: 1\n"))
	var none *NoCodecError
	assert.ErrorAs(t, err, &none)
	assert.False(t, Has[[]int](r))
	assert.True(t, Has[Drawing](r))
}

// 🧪 TestMapCodecs tests ordered map decoding
func TestMapCodecs(t *testing.T) {
	r := newTestRegistry()

	m, err := MapOf[int]().Decode(r, parse(t, "zeta: 1\nalpha: 2\nmid: 3\n"))
	require.NoError(t, err)
	var keys []string
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, keys)

	slots, err := IndexedMapOf[string]().Decode(r, parse(t, "4: a\n0: b\n"))
	require.NoError(t, err)
	v, ok := slots.Get(4)
	require.True(t, ok)
	assert.Equal(t, "a", v)
	assert.Equal(t, 4, slots.Oldest().Key)

	_, err = IndexedMapOf[string]().Decode(r, parse(t, "four: a\n"))
	var mismatch *node.TypeMismatchError
	assert.ErrorAs(t, err, &mismatch)

	_, err = MapOf[int]().Decode(r, parse(t, "[1]\n"))
	assert.ErrorAs(t, err, &mismatch)
}

// 🧪 TestEncodeRoundTrip tests that encoded values decode back to themselves
func TestEncodeRoundTrip(t *testing.T) {
	r := newTestRegistry()
	owner := "grace"
	in := Drawing{
		Name:   "roundtrip",
		Scale:  2,
		Shapes: []Shape{Square{Side: 1.5, Label: "s"}, Circle{Radius: 4}},
		Tags:   []string{"x"},
		Owner:  &owner,
	}

	tree, err := EncodeTree(r, in)
	require.NoError(t, err)
	assert.Equal(t, "square", tree.Root().Child("shapes", 0, "type").Raw())
	assert.Equal(t, "circle", tree.Root().Child("shapes", 1, "type").Raw())

	out, err := Decode[Drawing](r, tree.Root())
	require.NoError(t, err)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	bare, err := EncodeTree(r, Drawing{Name: "bare", Scale: 1})
	require.NoError(t, err)
	assert.True(t, bare.Root().Child("shapes").IsVirtual(), "nil collections are not written")
	assert.True(t, bare.Root().Child("owner").IsVirtual())
}
