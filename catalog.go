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


// Package poetica is a browser for a fixed catalog of Russian poems. A Catalog
// owns the badger-backed store that the import pipeline fills; a Browser is an
// in-memory view over one snapshot of it with filtering, pagination and word
// lookup.
package poetica

import (
	"context"
	"log/slog"

	"github.com/poiesic/poetica/ingestion"
	"github.com/poiesic/poetica/storage"
	"github.com/poiesic/poetica/storage/badger"
)

// Catalog is the persistent poem store: the badger backend plus the poem and
// checkpoint repositories built on it.
type Catalog struct {
	backend        *badger.Backend
	poemRepo       storage.PoemRepository
	checkpointRepo storage.CheckpointRepository
	logger         *slog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog) error

// WithLogger sets a custom logger for the catalog and the browsers it opens.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// Open opens or creates the catalog store at filePath.
func Open(filePath string, opts ...Option) (*Catalog, error) {
	return open(filePath, false, opts)
}

// OpenInMemory opens a catalog that lives only as long as the process.
func OpenInMemory(opts ...Option) (*Catalog, error) {
	return open("", true, opts)
}

func open(filePath string, inMemory bool, opts []Option) (*Catalog, error) {
	c := &Catalog{logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	backend, err := badger.OpenBackend(filePath, inMemory, badger.WithLogger(c.logger))
	if err != nil {
		return nil, err
	}

	c.backend = backend
	c.poemRepo = badger.NewPoemRepository(backend)
	c.checkpointRepo = badger.NewCheckpointRepository(backend)
	return c, nil
}

// Close closes the repositories and then the backend. Browsers already
// returned by Browse keep working on their snapshot.
func (c *Catalog) Close() error {
	if err := c.poemRepo.Close(); err != nil {
		c.logger.Error("error closing poem repository", "err", err)
		return err
	}

	if err := c.backend.Close(); err != nil {
		c.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Poems returns the poem repository.
func (c *Catalog) Poems() storage.PoemRepository {
	return c.poemRepo
}

// Checkpoints returns the repository recording completed imports.
func (c *Catalog) Checkpoints() storage.CheckpointRepository {
	return c.checkpointRepo
}

// NewPipeline creates an import pipeline writing into this catalog.
// The caller must Release it.
func (c *Catalog) NewPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	opts = append([]ingestion.Option{ingestion.WithLogger(c.logger)}, opts...)
	return ingestion.NewPipeline(c.poemRepo, c.checkpointRepo, opts...)
}

// Browse loads a snapshot of the stored poems and returns a Browser over it.
func (c *Catalog) Browse(ctx context.Context, opts ...BrowserOption) (*Browser, error) {
	poems, err := c.poemRepo.ListPoems(ctx)
	if err != nil {
		return nil, err
	}
	opts = append([]BrowserOption{WithBrowserLogger(c.logger)}, opts...)
	return NewBrowser(poems, opts...)
}
