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
	"github.com/Heleguo/CrossplatForms/pkg/log"
	"github.com/Heleguo/CrossplatForms/pkg/migrate"
)

// Status is how a descriptor's object was obtained
type Status int

const (
	// Success means the file decoded
	Success Status = iota
	// DefaultsFallback means the defaults replaced a file that failed to load
	DefaultsFallback
	// HardFailure means neither the file nor the defaults produced an object
	HardFailure
)

func (s Status) String() string {
	switch s {
	case Success:
		return "LOADED"
	case DefaultsFallback:
		return "DEFAULTS"
	case HardFailure:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// 📊 Outcome is the result of loading one descriptor. Outcomes are not kept
// by the manager.
type Outcome struct {
	File   string
	Type   string
	Status Status

	// Reason is why the file was not used, nil on Success
	Reason error

	// Migration is the version check result, nil when the file never parsed
	Migration *migrate.Result

	// Created is set when the file was copied from its bundled template
	Created bool
}

// Migrated reports whether the file was upgraded and rewritten
func (o Outcome) Migrated() bool {
	return o.Migration.Changed()
}

func (o Outcome) operation() log.ConfigOperation {
	op := log.ConfigOperation{
		File:       o.File,
		Type:       o.Type,
		Status:     o.Status.String(),
		IsNew:      o.Created,
		IsMigrated: o.Migrated(),
		IsFallback: o.Status == DefaultsFallback,
		IsFailed:   o.Status == HardFailure,
	}
	if o.Migration != nil {
		op.From, op.To = o.Migration.From, o.Migration.To
	}
	return op
}
