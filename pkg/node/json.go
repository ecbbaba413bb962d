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
	"encoding/json"
	"io"
	"math"

	"gitlab.com/tozd/go/errors"
)

// 🔧 JSONFormat reads and writes JSON while keeping object key order
type JSONFormat struct{}

func init() {
	Register(&JSONFormat{})
}

// 🔍 CanParse checks if this format can handle the given file
func (f *JSONFormat) CanParse(filename string) bool {
	return hasExt(filename, ".json")
}

// 📝 Parse parses JSON into a tree
func (f *JSONFormat) Parse(data []byte) (*Tree, error) {
	b := newBuilder()
	if len(bytes.TrimSpace(data)) == 0 {
		return b.t, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := b.fromJSON(dec, b.t.root); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.Errorf("parsing JSON: unexpected data after top-level value")
	}
	return b.t, nil
}

func (b *builder) fromJSON(dec *json.Decoder, id ID) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			b.makeMap(id)
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return err
				}
				key, ok := kt.(string)
				if !ok {
					return errors.Errorf("expected object key, got %v", kt)
				}
				if err := b.fromJSON(dec, b.field(id, key)); err != nil {
					return err
				}
			}
		case '[':
			b.makeList(id)
			for dec.More() {
				if err := b.fromJSON(dec, b.item(id)); err != nil {
					return err
				}
			}
		default:
			return errors.Errorf("unexpected delimiter %v", v)
		}
		// closing delimiter
		_, err := dec.Token()
		return err
	case json.Number:
		if i, err := v.Int64(); err == nil && i >= math.MinInt && i <= math.MaxInt {
			b.setScalar(id, int(i))
			return nil
		}
		fl, err := v.Float64()
		if err != nil {
			return errors.Errorf("invalid number %q: %w", v.String(), err)
		}
		b.setScalar(id, fl)
	default:
		// string, bool or nil
		b.setScalar(id, v)
	}
	return nil
}

// 💾 Serialize renders the node as indented JSON
func (f *JSONFormat) Serialize(n Node) ([]byte, error) {
	if n.IsVirtual() {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := writeJSON(&buf, n); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, errors.Errorf("indenting JSON: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, n Node) error {
	switch n.Kind() {
	case KindMap:
		buf.WriteByte('{')
		for i, child := range n.ChildrenMap() {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, _ := json.Marshal(mapKey(child.Key()))
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeJSON(buf, child); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindList:
		buf.WriteByte('[')
		for i, child := range n.ChildrenList() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, child); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		raw := n.Raw()
		if fl, ok := raw.(float64); ok && (math.IsInf(fl, 0) || math.IsNaN(fl)) {
			return errors.Errorf("%s: %v cannot be represented in JSON", n.PathString(), fl)
		}
		enc, err := json.Marshal(raw)
		if err != nil {
			return errors.Errorf("encoding %s: %w", n.PathString(), err)
		}
		buf.Write(bytes.TrimRight(enc, "\n"))
	}
	return nil
}

