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

package migrate

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrMissingVersion is returned for trees without a version field
	ErrMissingVersion = errors.Base("config does not define a version")

	// ErrInvalidVersion is returned when the version field is not a whole number
	ErrInvalidVersion = errors.Base("config version is not a whole number")

	// ErrMigrationNoOp marks a chain that ran without moving the version
	ErrMigrationNoOp = errors.Base("migration did not change the version")
)

// ❌ VersionOutOfRangeError reports a version that cannot be brought to the
// current one
type VersionOutOfRangeError struct {
	Version    int
	Minimum    int
	Current    int
	Migratable bool
}

func (e *VersionOutOfRangeError) Error() string {
	if !e.Migratable || e.Minimum >= e.Current {
		return fmt.Sprintf("version %d is not supported, expected %d", e.Version, e.Current)
	}
	return fmt.Sprintf("version %d is not supported, expected a version between %d and %d", e.Version, e.Minimum, e.Current)
}

// ❌ MigrationIncompleteError reports a chain that stopped short of the
// current version
type MigrationIncompleteError struct {
	From    int
	Reached int
	Current int
}

func (e *MigrationIncompleteError) Error() string {
	return fmt.Sprintf("migration from version %d stopped at %d, expected %d", e.From, e.Reached, e.Current)
}

// Unwrap reports ErrMigrationNoOp when no step made progress
func (e *MigrationIncompleteError) Unwrap() error {
	if e.Reached == e.From {
		return ErrMigrationNoOp
	}
	return nil
}
