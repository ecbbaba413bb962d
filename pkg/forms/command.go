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
	"strings"

	"github.com/Heleguo/CrossplatForms/pkg/codec"
	"github.com/Heleguo/CrossplatForms/pkg/node"
)

// Command kinds
const (
	KindPlayer  = "player"
	KindOp      = "op"
	KindConsole = "console"
)

// 🎮 DispatchableCommand is a command run on behalf of a player
type DispatchableCommand interface {
	Kind() string
	Line() string
}

// PlayerCommand runs as the player
type PlayerCommand struct{ Command string }

// OpCommand runs as the player with operator rights
type OpCommand struct{ Command string }

// ConsoleCommand runs from the server console
type ConsoleCommand struct{ Command string }

func (PlayerCommand) Kind() string    { return KindPlayer }
func (OpCommand) Kind() string        { return KindOp }
func (ConsoleCommand) Kind() string   { return KindConsole }
func (c PlayerCommand) Line() string  { return c.Command }
func (c OpCommand) Line() string      { return c.Command }
func (c ConsoleCommand) Line() string { return c.Command }

func newCommand(kind, line string) (DispatchableCommand, bool) {
	switch kind {
	case KindPlayer:
		return PlayerCommand{Command: line}, true
	case KindOp:
		return OpCommand{Command: line}, true
	case KindConsole:
		return ConsoleCommand{Command: line}, true
	}
	return nil, false
}

// commandFields is the map form of a command: {type: op, command: "..."}
type commandFields struct{ Command string }

var commandFieldsCodec = codec.NewRecord(codec.Record[commandFields]{
	Fields: []codec.Field[commandFields]{
		codec.Bind("command", func(h *commandFields) *string { return &h.Command }, codec.Required()),
	},
})

func commandRecord(set func(string) DispatchableCommand) codec.Codec[DispatchableCommand] {
	rec := commandFieldsCodec
	return codec.Func[DispatchableCommand]{
		DecodeFunc: func(r *codec.Registry, n node.Node) (DispatchableCommand, error) {
			h, err := rec.Decode(r, n)
			if err != nil {
				return nil, err
			}
			return set(h.Command), nil
		},
		EncodeFunc: func(r *codec.Registry, v DispatchableCommand, n node.Node) error {
			return rec.Encode(r, commandFields{Command: v.Line()}, n)
		},
	}
}

// commandCodec decodes "kind;command" strings, bare commands (run as the
// player) and maps with a type field. Commands encode back to the string form.
type commandCodec struct {
	poly codec.Codec[DispatchableCommand]
}

func newCommandCodec() *commandCodec {
	return &commandCodec{poly: codec.NewPolymorphic(codec.Polymorphic[DispatchableCommand]{
		Field:   "type",
		Default: KindPlayer,
		Variants: map[string]codec.Codec[DispatchableCommand]{
			KindPlayer:  commandRecord(func(s string) DispatchableCommand { return PlayerCommand{Command: s} }),
			KindOp:      commandRecord(func(s string) DispatchableCommand { return OpCommand{Command: s} }),
			KindConsole: commandRecord(func(s string) DispatchableCommand { return ConsoleCommand{Command: s} }),
		},
	})}
}

func (c *commandCodec) Decode(r *codec.Registry, n node.Node) (DispatchableCommand, error) {
	if !n.IsScalar() || n.IsNull() {
		return c.poly.Decode(r, n)
	}
	line, err := node.Scalar[string](n)
	if err != nil {
		return nil, err
	}
	if kind, rest, ok := strings.Cut(line, ";"); ok {
		if cmd, ok := newCommand(strings.TrimSpace(kind), rest); ok {
			return cmd, nil
		}
	}
	return PlayerCommand{Command: line}, nil
}

func (c *commandCodec) Encode(r *codec.Registry, v DispatchableCommand, n node.Node) error {
	line := v.Line()
	if v.Kind() != KindPlayer || strings.Contains(line, ";") {
		line = v.Kind() + ";" + line
	}
	_, err := n.Set(line)
	return err
}
