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
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 28 // Base width for filename
	typeWidth   = 22 // Width for config type
	statusWidth = 15 // Width for status text
)

// 🎯 ConfigOperation is the outcome of loading one config file
type ConfigOperation struct {
	File       string // Config file name
	Type       string // Target type name
	Status     string // Outcome status
	IsNew      bool   // File was created from its bundled template
	IsMigrated bool   // File was upgraded and rewritten
	IsFallback bool   // Defaults replaced the file's content
	IsFailed   bool   // Nothing usable could be loaded
	From, To   int    // Versions before and after migration
}

// 🎯 Logger is the diagnostics sink: console lines for people and zerolog
// events for machines
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	debug      bool
	operations []ConfigOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		debug:   level <= zerolog.DebugLevel,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// Zerolog returns the structured logger behind l
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zlog
}

// SetDebug toggles debug output
func (l *Logger) SetDebug(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = on
	if on && l.zlog.GetLevel() > zerolog.DebugLevel {
		l.zlog = l.zlog.Level(zerolog.DebugLevel)
	}
}

// Debug reports whether debug output is enabled
func (l *Logger) Debug() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

// 📝 formatConfigOperation formats a config outcome for display
func (l *Logger) formatConfigOperation(op ConfigOperation) string {
	// Determine symbol and color
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.IsFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.IsFallback:
		symbol = '!'
		symbolColor = color.FgYellow
	case op.IsMigrated:
		symbol = '⟳'
		symbolColor = color.FgBlue
	case op.IsNew:
		symbol = '✓'
		symbolColor = color.FgGreen
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	// Build the line
	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.File),
		color.New(color.FgCyan).Sprint(fmt.Sprintf("%-*s", typeWidth, op.Type)),
		fmt.Sprintf("%-*s", statusWidth, op.Status))
}

// 📝 LogConfigOperation logs the outcome of one config load
func (l *Logger) LogConfigOperation(ctx context.Context, op ConfigOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, l.formatConfigOperation(op))

	l.zlog.Info().
		Str("file", op.File).
		Str("type", op.Type).
		Str("status", op.Status).
		Bool("is_new", op.IsNew).
		Bool("is_migrated", op.IsMigrated).
		Bool("is_fallback", op.IsFallback).
		Bool("is_failed", op.IsFailed).
		Int("from", op.From).
		Int("to", op.To).
		Msg("config operation")
}

// Operations returns the config operations logged so far
func (l *Logger) Operations() []ConfigOperation {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]ConfigOperation(nil), l.operations...)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("crossplatforms")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warn logs a warning message
func (l *Logger) Warn(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Severe logs a message about a failure that needs attention
func (l *Logger) Severe(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 LogNewline prints an empty line
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Detail prints multi-line text, such as a rendered tree, indented under
// the previous message. It only prints in debug mode.
func (l *Logger) Detail(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.debug {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintf(l.console, "%*s%s\n", fileIndent, "", color.New(color.Faint).Sprint(line))
	}
	l.zlog.Debug().Msg(text)
}

// 📝 Trace prints err with its full chain and stack in debug mode, or a hint
// to enable debug mode otherwise
func (l *Logger) Trace(err error) {
	if err == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.debug {
		fmt.Fprintf(l.console, "%*s%s\n", fileIndent, "", color.New(color.Faint).Sprint("Enable debug mode for further information."))
		return
	}
	for _, line := range strings.Split(strings.TrimRight(fmt.Sprintf("%+v", err), "\n"), "\n") {
		fmt.Fprintf(l.console, "%*s%s\n", fileIndent, "", line)
	}
	l.zlog.Debug().Err(err).Msg("error detail")
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Warn(fmt.Sprintf(format, args...))
}

// 📝 Severef logs a formatted severe message
func (l *Logger) Severef(format string, args ...interface{}) {
	l.Severe(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
