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

package opts

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/Heleguo/CrossplatForms/pkg/config"
	"github.com/Heleguo/CrossplatForms/pkg/forms"
	"github.com/Heleguo/CrossplatForms/pkg/log"
	"github.com/Heleguo/CrossplatForms/pkg/store"
)

// RootOpts contains shared options used by all commands. The fields are
// bound to persistent flags and read when a command runs.
type RootOpts struct {
	Dir   string
	Debug bool
}

// Logger creates the diagnostics sink for a command writing to w
func (o *RootOpts) Logger(w io.Writer) *log.Logger {
	level := zerolog.Disabled
	if o.Debug {
		level = zerolog.DebugLevel
	}
	return log.New(w, level)
}

// Manager creates a manager for the config directory with every config file
// registered
func (o *RootOpts) Manager(w io.Writer) (*config.Manager, error) {
	return forms.NewManager(o.Dir, config.WithLogger(o.Logger(w)))
}

// Store returns the file store of the config directory
func (o *RootOpts) Store() *store.FileStore {
	return store.New(o.Dir)
}
