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

	"github.com/Heleguo/CrossplatForms/pkg/migrate"
	"github.com/Heleguo/CrossplatForms/pkg/node"
	"github.com/Heleguo/CrossplatForms/pkg/text"
)

// 🔄 FormsMigration upgrades bedrock-forms.yml.
//
//	v1 -> v2: "menus" becomes "forms" and button "commands"/"server" keys
//	          become entries of the button's "actions" list
//	v2 -> v3: %player% and %uuid% become %player_name% and %player_uuid%
func FormsMigration() *migrate.Chain {
	return migrate.NewChain(
		migrate.All(
			migrate.Rename("menus", "forms"),
			migrate.Each("forms", migrate.All(
				migrate.Each("buttons", legacyActions),
				migrate.At("button1", legacyActions),
				migrate.At("button2", legacyActions),
			)),
		).Step(2, "move button commands into actions"),
		migrate.ReplaceText(
			text.ReplacementRule{FromText: "%player%", ToText: "%player_name%", PathGlob: "forms/**"},
			text.ReplacementRule{FromText: "%uuid%", ToText: "%player_uuid%", PathGlob: "forms/**"},
		).Step(3, "rename placeholders"),
	)
}

// MenusMigration upgrades java-menus.yml.
//
//	v1 -> v2: button "item" becomes "material"
func MenusMigration() *migrate.Chain {
	return migrate.NewChain(
		migrate.Each("menus", migrate.Each("buttons", migrate.Rename("item", "material"))).
			Step(2, "rename button item to material"),
	)
}

// legacyActions appends one action per v1 key found on button
func legacyActions(button node.Node) error {
	for _, kind := range []string{KindCommands, KindServer} {
		src := button.Child(kind)
		if src.IsVirtual() {
			continue
		}
		idx := button.Child("actions").Len()
		if _, err := button.Child("actions", idx, "type").Set(kind); err != nil {
			return errors.Errorf("adding %s action to %s: %w", kind, button.PathString(), err)
		}
		if _, err := src.MoveTo(button.Child("actions", idx, kind)); err != nil {
			return errors.Errorf("moving %s: %w", src.PathString(), err)
		}
	}
	return nil
}
