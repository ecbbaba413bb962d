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

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		debug    bool
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warn("warning message")
				logger.Severe("severe message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ severe message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warnf("warning %d", 2)
				logger.Severef("severe %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning 2",
				"❌ severe test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("loading configuration")
			},
			wantLogs: []string{
				"crossplatforms • loading configuration",
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Info("second")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"ℹ️  second",
			},
		},
		{
			name: "detail_hidden_without_debug",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("tree")
				logger.Detail("a: 1\nb: 2")
			},
			wantLogs: []string{
				"ℹ️  tree",
			},
		},
		{
			name:  "detail_shown_in_debug",
			debug: true,
			op: func(t *testing.T, logger *Logger) {
				logger.Info("tree")
				logger.Detail("a: 1\nb: 2\n")
			},
			wantLogs: []string{
				"ℹ️  tree",
				"a: 1",
				"b: 2",
			},
		},
		{
			name: "trace_hint_without_debug",
			op: func(t *testing.T, logger *Logger) {
				logger.Trace(errors.New("broken"))
				logger.Trace(nil)
			},
			wantLogs: []string{
				"Enable debug mode for further information.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create buffer for console output
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.InfoLevel)
			logger.SetDebug(tt.debug)

			// Perform operation
			tt.op(t, logger)

			// Check output
			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	// Create logger
	logger := New(io.Discard, zerolog.InfoLevel)

	// Add to context
	ctx := context.Background()
	ctx = NewContext(ctx, logger)

	// Get from context
	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	// Check panic on missing logger
	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

func TestDebugToggle(t *testing.T) {
	logger := New(io.Discard, zerolog.InfoLevel)
	assert.False(t, logger.Debug())

	logger.SetDebug(true)
	assert.True(t, logger.Debug())
	assert.Equal(t, zerolog.DebugLevel, logger.Zerolog().GetLevel())

	logger.SetDebug(false)
	assert.False(t, logger.Debug())
}

func TestTraceInDebug(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New(buf, zerolog.InfoLevel)
	logger.SetDebug(true)

	logger.Trace(errors.Errorf("decoding forms: %w", errors.New("bad button")))
	assert.Contains(t, buf.String(), "decoding forms: bad button")
	assert.NotContains(t, buf.String(), "Enable debug mode")
}

func TestConfigOperationFormatting(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		op   ConfigOperation
		want []string
	}{
		{
			name: "created_from_template",
			op:   ConfigOperation{File: "config.yml", Type: "GeneralConfig", Status: "LOADED", IsNew: true},
			want: []string{"✓", "config.yml", "GeneralConfig", "LOADED"},
		},
		{
			name: "migrated",
			op:   ConfigOperation{File: "bedrock-forms.yml", Type: "FormConfig", Status: "MIGRATED", IsMigrated: true, From: 1, To: 3},
			want: []string{"⟳", "bedrock-forms.yml", "FormConfig", "MIGRATED"},
		},
		{
			name: "fallback_wins_over_migrated",
			op:   ConfigOperation{File: "java-menus.yml", Type: "MenuConfig", Status: "DEFAULTS", IsMigrated: true, IsFallback: true},
			want: []string{"!", "java-menus.yml", "MenuConfig", "DEFAULTS"},
		},
		{
			name: "failed",
			op:   ConfigOperation{File: "actions.yml", Type: "ActionConfig", Status: "FAILED", IsFailed: true},
			want: []string{"✗", "actions.yml", "ActionConfig", "FAILED"},
		},
		{
			name: "plain_load",
			op:   ConfigOperation{File: "config.yml", Type: "GeneralConfig", Status: "LOADED"},
			want: []string{"•", "config.yml", "GeneralConfig", "LOADED"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(io.Discard, zerolog.InfoLevel)
			got := logger.formatConfigOperation(tt.op)
			assert.True(t, strings.HasPrefix(got, "    "), "line should be indented")
			assert.Equal(t, tt.want, strings.Fields(got))
		})
	}
}

func TestLogConfigOperationRecords(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	buf := &bytes.Buffer{}
	logger := New(buf, zerolog.InfoLevel)
	op := ConfigOperation{File: "config.yml", Type: "GeneralConfig", Status: "LOADED"}
	logger.LogConfigOperation(context.Background(), op)

	assert.Equal(t, []ConfigOperation{op}, logger.Operations())
	assert.Contains(t, buf.String(), "config.yml")
}
