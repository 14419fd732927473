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


// Package storage provides the storage abstraction layer for poetica.
//
// This package defines the repository interfaces that decouple the imported
// catalog from its storage engine, together with the MUS record encoding
// shared by every backend.
//
// # Architecture
//
//   - PoemRepository: the imported catalog, kept in dataset order
//   - CheckpointRepository: fingerprints of completed imports
//
// The catalog is written once per import and read many times. Readers load
// the whole catalog into memory with ListPoems and run filtering and
// pagination there; the repository answers no queries beyond lookup by ID.
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	poems := badger.NewPoemRepository(backend)
//	all, err := poems.ListPoems(ctx)
//
// Use in tests with in-memory storage:
//
//	poems, checkpoints, backend, err := badger.NewMemoryRepositories()
//
// # Serialization
//
// Records are encoded with mus-go. Optional slices carry a presence flag so
// that a poem without lines stays distinguishable from a poem with zero lines.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
