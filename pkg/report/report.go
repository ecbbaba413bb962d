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

// Package report formats the outcomes of a config load for people.
package report

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Heleguo/CrossplatForms/pkg/config"
	"github.com/Heleguo/CrossplatForms/pkg/store"
)

// Formatter defines how load outcomes are turned into messages
type Formatter interface {
	// FormatOutcome formats the outcome of one config file
	FormatOutcome(o config.Outcome) string

	// FormatProgress formats how many files produced an object
	FormatProgress(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFormatter provides a default implementation of Formatter
type DefaultFormatter struct{}

var _ Formatter = (*DefaultFormatter)(nil)

// NewDefaultFormatter creates a new DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// FormatOutcome formats an outcome with emojis
func (f *DefaultFormatter) FormatOutcome(o config.Outcome) string {
	switch {
	case o.Status == config.HardFailure:
		return fmt.Sprintf("❌ Failed %s", o.File)
	case o.Status == config.DefaultsFallback:
		return fmt.Sprintf("⚠️  Defaults %s", o.File)
	case o.Migrated():
		return fmt.Sprintf("📝 Migrated %s (v%d → v%d)", o.File, o.Migration.From, o.Migration.To)
	case o.Created:
		return fmt.Sprintf("✨ Created %s", o.File)
	default:
		return fmt.Sprintf("👍 Loaded %s", o.File)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Loaded: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Loaded: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatError formats an error message with emoji
func (f *DefaultFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}

// 📊 Summary counts outcomes by kind
type Summary struct {
	Total    int
	Loaded   int
	Defaults int
	Failed   int
	Migrated int
	Created  int
}

// Summarize counts outcomes
func Summarize(outcomes []config.Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		s.Total++
		switch o.Status {
		case config.Success:
			s.Loaded++
		case config.DefaultsFallback:
			s.Defaults++
		case config.HardFailure:
			s.Failed++
		}
		if o.Migrated() {
			s.Migrated++
		}
		if o.Created {
			s.Created++
		}
	}
	return s
}

// Usable is the number of files that produced an object, decoded or defaulted
func (s Summary) Usable() int { return s.Loaded + s.Defaults }

// 📋 Table renders outcomes as a table
func Table(outcomes []config.Outcome) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"FILE", "TYPE", "STATUS", "VERSION", "NOTE"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "NOTE", WidthMax: 60},
	})
	for _, o := range outcomes {
		t.AppendRow(table.Row{o.File, o.Type, o.Status.String(), version(o), note(o)})
	}
	return t.Render()
}

func version(o config.Outcome) string {
	switch {
	case o.Migration == nil || o.Migration.From == 0 && o.Migration.To == 0:
		return "-"
	case o.Migration.From != o.Migration.To:
		return fmt.Sprintf("%d → %d", o.Migration.From, o.Migration.To)
	default:
		return fmt.Sprint(o.Migration.To)
	}
}

func note(o config.Outcome) string {
	switch {
	case o.Reason != nil:
		first, _, _ := strings.Cut(o.Reason.Error(), "\n")
		return first
	case o.Created:
		return "created from template"
	case o.Migrated():
		return "backup written to " + store.BackupName(o.File)
	default:
		return ""
	}
}
