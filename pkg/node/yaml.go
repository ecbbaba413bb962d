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
	"bytes"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

func init() {
	Register(&YAMLFormat{Indent: 2})
}

// 🔧 YAMLFormat reads and writes block-style YAML
type YAMLFormat struct {
	Indent int
}

// 🔍 CanParse checks if this format can handle the given file
func (f *YAMLFormat) CanParse(filename string) bool {
	return hasExt(filename, ".yml", ".yaml", ".conf")
}

// 📝 Parse parses YAML into a tree
func (f *YAMLFormat) Parse(data []byte) (*Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	b := newBuilder()
	b.aliasBudget = max(minAliasBudget, aliasBudgetRatio*len(data))
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return b.t, nil
	}
	if err := b.fromYAML(b.t.root, doc.Content[0], 0); err != nil {
		return nil, err
	}
	return b.t, nil
}

// Alias limits. Depth stops alias chains that point back at themselves; the
// budget caps the entries materialized through aliases so a small document
// cannot expand exponentially.
const (
	maxAliasDepth    = 64
	minAliasBudget   = 10_000
	aliasBudgetRatio = 100
)

func (b *builder) fromYAML(id ID, y *yaml.Node, aliases int) error {
	if aliases > 0 {
		b.aliasEntries++
		if b.aliasEntries > b.aliasBudget {
			return errors.Errorf("line %d: %w (more than %d entries)", y.Line, ErrAliasExpansion, b.aliasBudget)
		}
	}
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return nil
		}
		return b.fromYAML(id, y.Content[0], aliases)
	case yaml.AliasNode:
		if aliases >= maxAliasDepth || y.Alias == nil {
			return errors.Errorf("line %d: alias nesting too deep", y.Line)
		}
		return b.fromYAML(id, y.Alias, aliases+1)
	case yaml.MappingNode:
		b.makeMap(id)
		for i := 0; i+1 < len(y.Content); i += 2 {
			k, v := y.Content[i], y.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return errors.Errorf("line %d: only scalar map keys are supported", k.Line)
			}
			if err := b.fromYAML(b.field(id, k.Value), v, aliases); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		b.makeList(id)
		for _, item := range y.Content {
			if err := b.fromYAML(b.item(id), item, aliases); err != nil {
				return err
			}
		}
	case yaml.ScalarNode:
		raw, err := yamlScalar(y)
		if err != nil {
			return err
		}
		b.setScalar(id, raw)
	}
	return nil
}

func yamlScalar(y *yaml.Node) (any, error) {
	switch y.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool", "!!int", "!!float":
		var v any
		if err := y.Decode(&v); err != nil {
			return nil, errors.Errorf("line %d: decoding %q: %w", y.Line, y.Value, err)
		}
		return normalizeScalar(v)
	default:
		return y.Value, nil
	}
}

// 💾 Serialize renders the node as block-style YAML
func (f *YAMLFormat) Serialize(n Node) ([]byte, error) {
	if n.IsVirtual() {
		return nil, nil
	}
	y, err := toYAML(n)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	indent := f.Indent
	if indent <= 0 {
		indent = 2
	}
	enc.SetIndent(indent)
	if err := enc.Encode(y); err != nil {
		return nil, errors.Errorf("encoding YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Errorf("closing YAML encoder: %w", err)
	}
	return buf.Bytes(), nil
}

func toYAML(n Node) (*yaml.Node, error) {
	switch n.Kind() {
	case KindMap:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, child := range n.ChildrenMap() {
			v, err := toYAML(child)
			if err != nil {
				return nil, err
			}
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: mapKey(child.Key())}
			out.Content = append(out.Content, key, v)
		}
		return out, nil
	case KindList:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, child := range n.ChildrenList() {
			v, err := toYAML(child)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, v)
		}
		return out, nil
	default:
		var out yaml.Node
		if err := out.Encode(n.Raw()); err != nil {
			return nil, errors.Errorf("encoding %s: %w", n.PathString(), err)
		}
		return &out, nil
	}
}
