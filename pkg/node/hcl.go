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

package node

import (
	"math/big"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLFormat{})
}

// 🔧 HCLFormat reads and writes HCL native syntax.
//
// Blocks become maps: `form "main" { ... }` is read as forms→form→main. Repeated
// unlabeled blocks of one type become a list. Expressions are evaluated without
// variables or functions.
type HCLFormat struct{}

// 🔍 CanParse checks if this format can handle the given file
func (f *HCLFormat) CanParse(filename string) bool {
	return hasExt(filename, ".hcl")
}

// 📝 Parse parses HCL into a tree
func (f *HCLFormat) Parse(data []byte) (*Tree, error) {
	file, diags := hclsyntax.ParseConfig(data, "config.hcl", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, errors.Errorf("parsing HCL: unexpected body type %T", file.Body)
	}
	b := newBuilder()
	if len(body.Attributes) == 0 && len(body.Blocks) == 0 {
		return b.t, nil
	}
	if err := b.fromHCLBody(b.t.root, body); err != nil {
		return nil, err
	}
	return b.t, nil
}

type hclItem struct {
	offset int
	attr   *hclsyntax.Attribute
	block  *hclsyntax.Block
}

func (b *builder) fromHCLBody(id ID, body *hclsyntax.Body) error {
	b.makeMap(id)

	items := make([]hclItem, 0, len(body.Attributes)+len(body.Blocks))
	for _, a := range body.Attributes {
		items = append(items, hclItem{offset: a.SrcRange.Start.Byte, attr: a})
	}
	unlabeled := map[string]int{}
	for _, blk := range body.Blocks {
		items = append(items, hclItem{offset: blk.TypeRange.Start.Byte, block: blk})
		if len(blk.Labels) == 0 {
			unlabeled[blk.Type]++
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].offset < items[j].offset })

	for _, it := range items {
		if it.attr != nil {
			if err := b.fromHCLExpr(b.field(id, it.attr.Name), it.attr.Expr); err != nil {
				return errors.Errorf("attribute %q: %w", it.attr.Name, err)
			}
			continue
		}
		blk := it.block
		if len(blk.Labels) == 0 {
			if unlabeled[blk.Type] > 1 {
				list := b.containerField(id, blk.Type, KindList)
				if err := b.fromHCLBody(b.item(list), blk.Body); err != nil {
					return err
				}
				continue
			}
			if err := b.fromHCLBody(b.field(id, blk.Type), blk.Body); err != nil {
				return err
			}
			continue
		}
		cur := b.containerField(id, blk.Type, KindMap)
		for _, label := range blk.Labels[:len(blk.Labels)-1] {
			cur = b.containerField(cur, label, KindMap)
		}
		if err := b.fromHCLBody(b.field(cur, blk.Labels[len(blk.Labels)-1]), blk.Body); err != nil {
			return err
		}
	}
	return nil
}

// containerField returns the existing child under key when it already has
// the wanted kind, or replaces it with an empty container
func (b *builder) containerField(id ID, key string, kind Kind) ID {
	if existing, ok := b.t.at(id).fields.Get(key); ok && b.t.at(existing).kind == kind {
		return existing
	}
	child := b.field(id, key)
	if kind == KindMap {
		b.makeMap(child)
	} else {
		b.makeList(child)
	}
	return child
}

func (b *builder) fromHCLExpr(id ID, expr hclsyntax.Expression) error {
	switch e := expr.(type) {
	case *hclsyntax.ObjectConsExpr:
		b.makeMap(id)
		for _, item := range e.Items {
			kv, diags := item.KeyExpr.Value(nil)
			if diags.HasErrors() {
				return errors.Errorf("evaluating key: %s", diags.Error())
			}
			ks, err := convert.Convert(kv, cty.String)
			if err != nil || ks.IsNull() || !ks.IsKnown() {
				return errors.Errorf("object keys must be strings")
			}
			if err := b.fromHCLExpr(b.field(id, ks.AsString()), item.ValueExpr); err != nil {
				return err
			}
		}
		return nil
	case *hclsyntax.TupleConsExpr:
		b.makeList(id)
		for _, item := range e.Exprs {
			if err := b.fromHCLExpr(b.item(id), item); err != nil {
				return err
			}
		}
		return nil
	default:
		v, diags := expr.Value(nil)
		if diags.HasErrors() {
			return errors.Errorf("evaluating expression: %s", diags.Error())
		}
		return b.fromCty(id, v)
	}
}

func (b *builder) fromCty(id ID, v cty.Value) error {
	if !v.IsWhollyKnown() {
		return errors.Errorf("value is not known without an evaluation context")
	}
	if v.IsNull() {
		b.setScalar(id, nil)
		return nil
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		b.setScalar(id, v.AsString())
	case ty == cty.Bool:
		b.setScalar(id, v.True())
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				b.setScalar(id, int(i))
				return nil
			}
		}
		fl, _ := bf.Float64()
		b.setScalar(id, fl)
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		b.makeList(id)
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			if err := b.fromCty(b.item(id), ev); err != nil {
				return err
			}
		}
	case ty.IsObjectType() || ty.IsMapType():
		b.makeMap(id)
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			if err := b.fromCty(b.field(id, k.AsString()), ev); err != nil {
				return err
			}
		}
	default:
		return errors.Errorf("unsupported HCL type %s", ty.FriendlyName())
	}
	return nil
}

// 💾 Serialize renders a map node as an HCL body. Map children become blocks,
// everything else becomes an attribute.
func (f *HCLFormat) Serialize(n Node) ([]byte, error) {
	if n.IsNull() {
		return nil, nil
	}
	if !n.IsMap() {
		return nil, errors.Errorf("%s: only maps can be written as an HCL body, got %s", n.PathString(), n.Kind())
	}
	file := hclwrite.NewEmptyFile()
	if err := writeHCLBody(file.Body(), n); err != nil {
		return nil, err
	}
	return hclwrite.Format(file.Bytes()), nil
}

func writeHCLBody(body *hclwrite.Body, n Node) error {
	for _, child := range n.ChildrenMap() {
		key := mapKey(child.Key())
		if !hclsyntax.ValidIdentifier(key) {
			return errors.Errorf("%s: key %q is not a valid HCL identifier", child.PathString(), key)
		}
		if child.IsMap() {
			blk := body.AppendNewBlock(key, nil)
			if err := writeHCLBody(blk.Body(), child); err != nil {
				return err
			}
			continue
		}
		v, err := toCty(child)
		if err != nil {
			return err
		}
		body.SetAttributeValue(key, v)
	}
	return nil
}

func toCty(n Node) (cty.Value, error) {
	switch n.Kind() {
	case KindMap:
		children := n.ChildrenMap()
		if len(children) == 0 {
			return cty.EmptyObjectVal, nil
		}
		vals := make(map[string]cty.Value, len(children))
		for _, c := range children {
			v, err := toCty(c)
			if err != nil {
				return cty.NilVal, err
			}
			vals[mapKey(c.Key())] = v
		}
		return cty.ObjectVal(vals), nil
	case KindList:
		children := n.ChildrenList()
		if len(children) == 0 {
			return cty.EmptyTupleVal, nil
		}
		vals := make([]cty.Value, 0, len(children))
		for _, c := range children {
			v, err := toCty(c)
			if err != nil {
				return cty.NilVal, err
			}
			vals = append(vals, v)
		}
		return cty.TupleVal(vals), nil
	default:
		switch raw := n.Raw().(type) {
		case nil:
			return cty.NullVal(cty.DynamicPseudoType), nil
		case string:
			return cty.StringVal(raw), nil
		case bool:
			return cty.BoolVal(raw), nil
		case int:
			return cty.NumberIntVal(int64(raw)), nil
		case float64:
			return cty.NumberFloatVal(raw), nil
		default:
			return cty.NilVal, errors.Errorf("%s: unsupported scalar %T", n.PathString(), raw)
		}
	}
}
