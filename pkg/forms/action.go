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
	"github.com/Heleguo/CrossplatForms/pkg/node"
)

// Action kinds
const (
	KindCommands = "commands"
	KindServer   = "server"
	KindForm     = "form"
	KindMessage  = "message"
)

// ⚡ Action is an effect of clicking a button
type Action interface {
	Kind() string
}

// CommandsAction dispatches commands in order
type CommandsAction struct {
	Commands []DispatchableCommand
}

// ServerAction sends the player to another server of the network
type ServerAction struct {
	Server string
}

// FormAction opens another form or menu
type FormAction struct {
	Form string
}

// MessageAction sends the player a chat message
type MessageAction struct {
	Message string
}

func (CommandsAction) Kind() string { return KindCommands }
func (ServerAction) Kind() string   { return KindServer }
func (FormAction) Kind() string     { return KindForm }
func (MessageAction) Kind() string  { return KindMessage }

var commandsRecord = codec.NewRecord(codec.Record[CommandsAction]{
	Fields: []codec.Field[CommandsAction]{
		codec.BindWith("commands", codec.PolymorphicList[DispatchableCommand](),
			func(a *CommandsAction) *[]DispatchableCommand { return &a.Commands }, codec.Required()),
	},
})

// commandsCodec is the default action. Besides the map form it accepts a
// bare command or a list of commands.
var commandsCodec = codec.Func[CommandsAction]{
	DecodeFunc: func(r *codec.Registry, n node.Node) (CommandsAction, error) {
		if n.IsMap() {
			return commandsRecord.Decode(r, n)
		}
		cmds, err := codec.PolymorphicList[DispatchableCommand]().Decode(r, n)
		if err != nil {
			return CommandsAction{}, err
		}
		if len(cmds) == 0 {
			return CommandsAction{}, errors.Errorf("%s: commands action has no commands", n.PathString())
		}
		return CommandsAction{Commands: cmds}, nil
	},
	EncodeFunc: commandsRecord.Encode,
}

func registerActions(r *codec.Registry) {
	codec.RegisterRecord(r, codec.Record[ServerAction]{
		Fields: []codec.Field[ServerAction]{
			codec.Bind("server", func(a *ServerAction) *string { return &a.Server }, codec.Required()),
		},
	})
	codec.RegisterRecord(r, codec.Record[FormAction]{
		Fields: []codec.Field[FormAction]{
			codec.Bind("form", func(a *FormAction) *string { return &a.Form }, codec.Required()),
		},
	})
	codec.RegisterRecord(r, codec.Record[MessageAction]{
		Fields: []codec.Field[MessageAction]{
			codec.Bind("message", func(a *MessageAction) *string { return &a.Message }, codec.Required()),
		},
	})

	codec.RegisterPolymorphic(r, codec.Polymorphic[Action]{
		Field:   "type",
		Default: KindCommands,
		Variants: map[string]codec.Codec[Action]{
			KindCommands: codec.VariantWith[Action, CommandsAction](commandsCodec),
			KindServer:   codec.Variant[Action, ServerAction](),
			KindForm:     codec.Variant[Action, FormAction](),
			KindMessage:  codec.Variant[Action, MessageAction](),
		},
	})
}
