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
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔌 Format reads and writes a textual representation of a Tree
type Format interface {
	// 📝 Parse builds a tree from source text
	Parse(data []byte) (*Tree, error)

	// 💾 Serialize renders a node and its descendants
	Serialize(n Node) ([]byte, error)

	// 🔍 CanParse checks if this format handles the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ formats is the list of available formats, checked in order
	formats []Format
)

// 📝 Register registers a format
func Register(f Format) {
	formats = append(formats, f)
}

// 🎯 ForFile returns the format that handles the given file, or nil
func ForFile(filename string) Format {
	for _, f := range formats {
		if f.CanParse(filename) {
			return f
		}
	}
	return nil
}

// Parse parses data with the format selected by filename. Failures are
// reported as *ParseError.
func Parse(filename string, data []byte) (*Tree, error) {
	f := ForFile(filename)
	if f == nil {
		return nil, &ParseError{File: filename, Err: errors.Errorf("no format found for extension %q", filepath.Ext(filename))}
	}
	t, err := f.Parse(data)
	if err != nil {
		return nil, &ParseError{File: filename, Err: err}
	}
	return t, nil
}

// Serialize renders n with the format selected by filename
func Serialize(filename string, n Node) ([]byte, error) {
	f := ForFile(filename)
	if f == nil {
		return nil, errors.Errorf("no format found for extension %q", filepath.Ext(filename))
	}
	out, err := f.Serialize(n)
	if err != nil {
		return nil, errors.Errorf("serializing %s: %w", filename, err)
	}
	return out, nil
}

func hasExt(filename string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// builder appends parsed values into a tree
type builder struct {
	t *Tree

	aliasEntries int
	aliasBudget  int
}

func newBuilder() *builder {
	return &builder{t: NewTree()}
}

func (b *builder) setScalar(id ID, raw any) {
	e := b.t.at(id)
	e.kind, e.raw = KindScalar, raw
}

func (b *builder) makeMap(id ID) {
	n := b.t.node(id)
	_, _ = n.SetMap()
}

func (b *builder) makeList(id ID) {
	e := b.t.at(id)
	e.kind, e.raw, e.items, e.fields = KindList, nil, nil, nil
}

// field adds (or replaces) a map child and returns its ID
func (b *builder) field(id ID, key string) ID {
	if existing, ok := b.t.at(id).fields.Get(key); ok {
		e := b.t.at(existing)
		e.kind, e.raw, e.items, e.fields = KindScalar, nil, nil, nil
		return existing
	}
	child := b.t.alloc(entry{kind: KindScalar, key: key, parent: id})
	b.t.at(id).fields.Set(key, child)
	return child
}

func (b *builder) item(id ID) ID {
	child := b.t.alloc(entry{kind: KindScalar, key: len(b.t.at(id).items), parent: id})
	p := b.t.at(id)
	p.items = append(p.items, child)
	return child
}
