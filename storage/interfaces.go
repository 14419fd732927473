// Copyright 2025 Poiesic Systems
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


package storage

import (
	"context"

	"github.com/poiesic/poetica/core"
)

// PoemRepository stores the imported poem catalog.
// Implementations must be thread-safe and support concurrent access.
type PoemRepository interface {
	// ReplacePoems discards the stored catalog and stores poems in its place.
	// The order of poems is the catalog order returned by ListPoems.
	// Returns ErrDuplicateKey if two poems share an ID.
	ReplacePoems(ctx context.Context, poems []*core.Poem) error

	// GetPoem retrieves a single poem by ID.
	// Returns ErrNotFound if the poem doesn't exist.
	GetPoem(ctx context.Context, id core.PoemID) (*core.Poem, error)

	// ListPoems returns every stored poem in catalog order.
	ListPoems(ctx context.Context) ([]*core.Poem, error)

	// CountPoems returns the number of stored poems.
	CountPoems(ctx context.Context) (int, error)

	// Close releases repository resources. It does not close the backend.
	Close() error
}

// CheckpointRepository records completed imports.
type CheckpointRepository interface {
	// SaveCheckpoint stores checkpoint under its name, stamping UpdatedAt.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint returns the checkpoint stored under name, or nil when
	// no import has been recorded yet.
	LoadCheckpoint(ctx context.Context, name string) (*core.Checkpoint, error)
}
