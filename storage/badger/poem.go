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


package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/poetica/core"
	"github.com/poiesic/poetica/storage"
)

// PoemRepository implements storage.PoemRepository using BadgerDB.
type PoemRepository struct {
	backend *Backend
}

var _ storage.PoemRepository = (*PoemRepository)(nil)

// NewPoemRepository creates a new PoemRepository.
func NewPoemRepository(backend *Backend) *PoemRepository {
	return &PoemRepository{
		backend: backend,
	}
}

// Close is a no-op; the backend is closed by its owner.
func (r *PoemRepository) Close() error {
	return nil
}

// ReplacePoems discards the stored catalog and writes poems in its place.
func (r *PoemRepository) ReplacePoems(ctx context.Context, poems []*core.Poem) error {
	seen := make(map[core.PoemID]struct{}, len(poems))
	for _, poem := range poems {
		if _, dup := seen[poem.ID]; dup {
			return fmt.Errorf("%w: poem %d", storage.ErrDuplicateKey, poem.ID)
		}
		seen[poem.ID] = struct{}{}
	}

	return r.backend.ReplacePrefix(ctx, []byte(poemNamespace), func(wb *badger.WriteBatch) error {
		for ordinal, poem := range poems {
			if err := ctx.Err(); err != nil {
				return err
			}
			key := makePoemRecordKey(ordinal)
			if err := wb.Set(key, storage.MarshalPoem(poem)); err != nil {
				return err
			}
			if err := wb.Set(makePoemIDKey(poem.ID), key); err != nil {
				return err
			}
		}
		r.backend.logger.Debug("stored catalog", "poems", len(poems))
		return nil
	})
}

// GetPoem retrieves a single poem by ID.
func (r *PoemRepository) GetPoem(ctx context.Context, id core.PoemID) (*core.Poem, error) {
	var poem *core.Poem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		idx, err := tx.Get(makePoemIDKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: poem %d", storage.ErrNotFound, id)
			}
			return err
		}
		recordKey, err := idx.ValueCopy(nil)
		if err != nil {
			return err
		}

		poem, err = r.readPoem(tx, recordKey)
		if err != nil {
			return err
		}
		if poem == nil {
			return fmt.Errorf("%w: poem %d", storage.ErrNotFound, id)
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return poem, nil
}

// ListPoems returns every stored poem in dataset order.
func (r *PoemRepository) ListPoems(ctx context.Context) ([]*core.Poem, error) {
	var poems []*core.Poem

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(poemRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := iter.Item().Value(func(val []byte) error {
				poem, err := storage.UnmarshalPoem(val)
				if err != nil {
					return err
				}
				poems = append(poems, poem)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return poems, nil
}

// CountPoems returns the number of stored poems without decoding them.
func (r *PoemRepository) CountPoems(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(poemRecordPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)

	return count, err
}

// readPoem reads a poem record within a transaction.
// Returns nil if the record doesn't exist.
func (r *PoemRepository) readPoem(tx *badger.Txn, key []byte) (*core.Poem, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var poem *core.Poem
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		poem, unmarshalErr = storage.UnmarshalPoem(val)
		return unmarshalErr
	})
	return poem, err
}
