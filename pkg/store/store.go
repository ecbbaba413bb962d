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

package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// BackupPrefix is prepended to a file's base name to form its backup name
const BackupPrefix = "old_"

// 💾 Store is the file access the config manager needs
type Store interface {
	// EnsureFile copies template from resources to name when name is absent
	EnsureFile(ctx context.Context, name string, resources fs.FS, template string) (created bool, err error)
	ReadFile(ctx context.Context, name string) ([]byte, error)
	WriteFile(ctx context.Context, name string, content []byte) error
	Backup(ctx context.Context, name string, content []byte) error
}

// 🔧 FileStore implements Store on a directory of the local filesystem
type FileStore struct {
	baseDir string
}

var _ Store = (*FileStore)(nil)

// 🏭 New creates a store rooted at baseDir
func New(baseDir string) *FileStore {
	return &FileStore{baseDir: filepath.Clean(baseDir)}
}

// Dir returns the store's root directory
func (s *FileStore) Dir() string { return s.baseDir }

// 🔒 Path returns the absolute path for a name relative to the root
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.baseDir, name)
}

// BackupName returns the backup name for name: old_<base> in the same directory
func BackupName(name string) string {
	dir, base := filepath.Split(name)
	return filepath.Join(dir, BackupPrefix+base)
}

// 🔍 Checksum generates a SHA-256 hash of the content
func Checksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

func (s *FileStore) Exists(ctx context.Context, name string) (bool, error) {
	_, err := os.Stat(s.Path(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

func (s *FileStore) ReadFile(ctx context.Context, name string) ([]byte, error) {
	content, err := os.ReadFile(s.Path(name))
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

// WriteFile writes content atomically, creating parent directories
func (s *FileStore) WriteFile(ctx context.Context, name string, content []byte) error {
	absPath := s.Path(name)

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", absPath).Str("checksum", Checksum(content)).Msg("writing file")
	return writeFileAtomic(absPath, content)
}

func writeFileAtomic(absPath string, content []byte) error {
	tempPath := absPath + ".tmp"

	// Write to temp file
	if err := os.WriteFile(tempPath, content, 0644); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// 📋 EnsureFile copies the bundled template into place when name is missing.
// An existing file is never touched.
func (s *FileStore) EnsureFile(ctx context.Context, name string, resources fs.FS, template string) (bool, error) {
	exists, err := s.Exists(ctx, name)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if resources == nil {
		return false, errors.Errorf("%s does not exist and no bundled template is available", name)
	}

	src, err := resources.Open(template)
	if err != nil {
		return false, errors.Errorf("opening bundled template %s: %w", template, err)
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return false, errors.Errorf("reading bundled template %s: %w", template, err)
	}

	zerolog.Ctx(ctx).Debug().Str("name", name).Str("template", template).Msg("copying bundled template")
	if err := s.WriteFile(ctx, name, content); err != nil {
		return false, errors.Errorf("creating %s from template: %w", name, err)
	}
	return true, nil
}

// 💾 Backup writes content to the backup file of name, replacing any
// previous backup
func (s *FileStore) Backup(ctx context.Context, name string, content []byte) error {
	if err := s.WriteFile(ctx, BackupName(name), content); err != nil {
		return errors.Errorf("creating backup: %w", err)
	}
	return nil
}

// ♻️ Restore copies the backup of name over name and removes the backup
func (s *FileStore) Restore(ctx context.Context, name string) error {
	backup := BackupName(name)

	// Check if backup exists
	exists, err := s.Exists(ctx, backup)
	if err != nil {
		return errors.Errorf("checking backup existence: %w", err)
	}
	if !exists {
		return errors.Errorf("backup file %s does not exist", backup)
	}

	content, err := s.ReadFile(ctx, backup)
	if err != nil {
		return errors.Errorf("reading backup: %w", err)
	}

	// Restore from backup
	if err := s.WriteFile(ctx, name, content); err != nil {
		return errors.Errorf("restoring from backup: %w", err)
	}

	// Remove backup
	if err := os.Remove(s.Path(backup)); err != nil {
		return errors.Errorf("removing backup: %w", err)
	}

	return nil
}
