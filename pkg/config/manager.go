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

package config

import (
	"context"
	"io/fs"
	"os"
	"reflect"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/Heleguo/CrossplatForms/pkg/codec"
	"github.com/Heleguo/CrossplatForms/pkg/log"
	"github.com/Heleguo/CrossplatForms/pkg/migrate"
	"github.com/Heleguo/CrossplatForms/pkg/node"
	"github.com/Heleguo/CrossplatForms/pkg/pretty"
	"github.com/Heleguo/CrossplatForms/pkg/store"
)

// 🎯 Manager loads every registered descriptor and holds the resulting
// objects. LoadAll is meant to run once before anything reads the results;
// the manager does no locking.
type Manager struct {
	store     store.Store
	registry  *codec.Registry
	resources fs.FS
	printer   *pretty.Printer
	logger    *log.Logger

	descriptors []*Descriptor
	results     map[reflect.Type]any
}

// Option configures a Manager
type Option func(*Manager)

// WithLogger sets the diagnostics sink
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithRegistry sets the codecs used to decode files
func WithRegistry(r *codec.Registry) Option {
	return func(m *Manager) { m.registry = r }
}

// WithResources sets the bundled templates copied into place for missing files
func WithResources(resources fs.FS) Option {
	return func(m *Manager) { m.resources = resources }
}

// WithPrinter sets the printer used for tree dumps in debug mode
func WithPrinter(p *pretty.Printer) Option {
	return func(m *Manager) { m.printer = p }
}

// WithStore replaces the file store rooted at the manager's directory
func WithStore(s store.Store) Option {
	return func(m *Manager) { m.store = s }
}

// 🏭 NewManager creates a manager for the config files under dir
func NewManager(dir string, opts ...Option) *Manager {
	m := &Manager{
		store:    store.New(dir),
		registry: codec.NewRegistry(),
		printer:  pretty.New(),
		logger:   log.New(os.Stdout, zerolog.Disabled),
		results:  map[reflect.Type]any{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Registry returns the manager's codecs
func (m *Manager) Registry() *codec.Registry { return m.registry }

// Descriptors returns the registered descriptors in registration order
func (m *Manager) Descriptors() []*Descriptor {
	return append([]*Descriptor(nil), m.descriptors...)
}

// 📝 Register adds d to the working set. Registering the same descriptor
// again does nothing; a different descriptor for a type or file that is
// already taken fails with ErrDuplicateDescriptor.
func (m *Manager) Register(d *Descriptor) error {
	for _, existing := range m.descriptors {
		if existing == d {
			return nil
		}
		if existing.typ == d.typ {
			return errors.Errorf("%w: type %s is already loaded from %s", ErrDuplicateDescriptor, d.TypeName(), existing.fileName)
		}
		if existing.fileName == d.fileName {
			return errors.Errorf("%w: %s is already loaded as %s", ErrDuplicateDescriptor, d.fileName, existing.TypeName())
		}
	}
	m.descriptors = append(m.descriptors, d)
	return nil
}

// 🔍 Get returns the loaded object of type T. The boolean is false when no
// descriptor for T has been loaded yet.
func Get[T any](m *Manager) (T, bool) {
	v, ok := m.results[reflect.TypeFor[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// 🚀 LoadAll loads every registered descriptor. It returns false only when a
// descriptor could be neither loaded nor defaulted, in which case the
// remaining descriptors are skipped.
func (m *Manager) LoadAll(ctx context.Context) bool {
	_, ok := m.LoadAllReport(ctx)
	return ok
}

// LoadAllReport is LoadAll that also returns the outcome of every
// descriptor it visited
func (m *Manager) LoadAllReport(ctx context.Context) ([]Outcome, bool) {
	ctx = m.logger.Zerolog().WithContext(ctx)
	ctx = log.NewContext(ctx, m.logger)

	outcomes := make([]Outcome, 0, len(m.descriptors))
	for _, d := range m.descriptors {
		out := m.load(ctx, d)
		outcomes = append(outcomes, out)
		m.logger.LogConfigOperation(ctx, out.operation())
		if out.Status == HardFailure {
			return outcomes, false
		}
	}
	return outcomes, true
}

func (m *Manager) load(ctx context.Context, d *Descriptor) Outcome {
	out := Outcome{File: d.fileName, Type: d.TypeName()}

	value, err := m.loadFile(ctx, d, &out)
	if err == nil {
		m.results[d.typ] = value
		out.Status = Success
		return out
	}
	m.reportFailure(d, err)

	value, derr := d.Defaults()
	if derr != nil {
		m.logger.Severef("Failed to fallback to defaults for configuration %s: %v", d.fileName, derr)
		out.Status = HardFailure
		out.Reason = errors.Join(err, derr)
		return out
	}
	m.logger.Warnf("Falling back to MINIMAL DEFAULTS for configuration: %s", d.fileName)
	m.results[d.typ] = value
	out.Status = DefaultsFallback
	out.Reason = err
	return out
}

// loadFile runs steps 1 to 4 for d: ensure, parse, migrate, decode
func (m *Manager) loadFile(ctx context.Context, d *Descriptor, out *Outcome) (any, error) {
	created, err := m.store.EnsureFile(ctx, d.fileName, m.resources, d.template)
	if err != nil {
		return nil, errors.Errorf("preparing %s: %w", d.fileName, err)
	}
	out.Created = created

	data, err := m.store.ReadFile(ctx, d.fileName)
	if err != nil {
		return nil, errors.Errorf("loading %s: %w", d.fileName, err)
	}

	tree, err := node.Parse(d.fileName, data)
	if err != nil {
		return nil, err
	}

	res, err := migrate.Run(tree.Root(), d.target())
	out.Migration = res
	if err != nil {
		return nil, err
	}
	if res.Changed() {
		if err := m.persistMigration(ctx, d, tree, res); err != nil {
			return nil, err
		}
	}

	value, err := d.decode(m.registry, tree.Root())
	if err != nil {
		if m.logger.Debug() {
			m.logger.Info("Configuration tree of " + d.fileName + ":")
			m.logger.Detail(m.printer.RenderNode(tree.Root()))
		}
		return nil, &DecodeError{File: d.fileName, Type: d.TypeName(), Err: err}
	}
	return value, nil
}

// persistMigration writes the backup of the snapshot, then the migrated tree
func (m *Manager) persistMigration(ctx context.Context, d *Descriptor, tree *node.Tree, res *migrate.Result) error {
	before, err := node.Serialize(d.fileName, res.Snapshot.Root())
	if err != nil {
		return errors.Errorf("serializing backup of %s: %w", d.fileName, err)
	}
	after, err := node.Serialize(d.fileName, tree.Root())
	if err != nil {
		return errors.Errorf("serializing migrated %s: %w", d.fileName, err)
	}

	if err := m.store.Backup(ctx, d.fileName, before); err != nil {
		return errors.Errorf("backing up %s: %w", d.fileName, err)
	}
	if err := m.store.WriteFile(ctx, d.fileName, after); err != nil {
		return errors.Errorf("writing migrated %s: %w", d.fileName, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("file", d.fileName).
		Str("backup", store.BackupName(d.fileName)).
		Str("before_sha256", store.Checksum(before)).
		Str("after_sha256", store.Checksum(after)).
		Msg("migration written")

	m.logger.Infof("Updated %s from version %d to %d", d.fileName, res.From, res.To)
	if m.logger.Debug() {
		for _, step := range res.Steps {
			m.logger.Detail(describeStep(step))
		}
		m.logger.Detail(lineDiff(string(before), string(after)))
	}
	return nil
}

// reportFailure logs an actionable message for err
func (m *Manager) reportFailure(d *Descriptor, err error) {
	var (
		oor        *migrate.VersionOutOfRangeError
		incomplete *migrate.MigrationIncompleteError
		parse      *node.ParseError
		decode     *DecodeError
	)
	switch {
	case errors.Is(err, migrate.ErrMissingVersion):
		m.logger.Severef("Configuration %s does not declare a version. Please back it up and regenerate a new config.", d.fileName)
	case errors.Is(err, migrate.ErrInvalidVersion):
		m.logger.Severef("Configuration %s has a version that is not a whole number. Please back it up and regenerate a new config.", d.fileName)
	case errors.As(err, &oor) && !oor.Migratable:
		m.logger.Severef("Configuration %s must have a version of %d but is at %d. Please back it up and regenerate a new config.",
			d.fileName, d.current, oor.Version)
	case errors.As(err, &oor):
		m.logger.Severef("Configuration %s must have a version between %d and %d but is at %d. Please back it up and regenerate a new config.",
			d.fileName, d.minimum, d.current, oor.Version)
	case errors.As(err, &incomplete):
		m.logger.Severef("Failed to migrate configuration %s from version %d, it stopped at %d instead of %d. Please back it up and regenerate a new config.",
			d.fileName, incomplete.From, incomplete.Reached, incomplete.Current)
	case errors.As(err, &parse):
		m.logger.Severef("Failed to parse configuration %s: %v", d.fileName, parse.Err)
	case errors.As(err, &decode):
		m.logger.Severef("Failed to map configuration %s to %s: %v", d.fileName, decode.Type, decode.Err)
	default:
		m.logger.Severef("Failed to load configuration %s: %v", d.fileName, err)
	}
	m.logger.Trace(err)
}
