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

package main

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// buildVersion returns the module version and VCS revision stamped into the
// binary. Untagged builds report "dev"; builds outside a checkout have no
// revision.
func buildVersion() (version, revision string) {
	version = "dev"
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version, ""
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
	dirty := false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision != "" && dirty {
		revision += " (modified)"
	}
	return version, revision
}

// formatVersion renders the version block printed by the version command
func formatVersion() string {
	version, revision := buildVersion()
	var b strings.Builder
	b.WriteString("🚀 crossplatforms version info:\n")
	fmt.Fprintf(&b, "Version:   %s\n", version)
	if revision != "" {
		fmt.Fprintf(&b, "Revision:  %s\n", revision)
	}
	fmt.Fprintf(&b, "Go:        %s\n", runtime.Version())
	fmt.Fprintf(&b, "Platform:  %s/%s\n", runtime.GOOS, runtime.GOARCH)
	return b.String()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), formatVersion())
		},
	}
}
