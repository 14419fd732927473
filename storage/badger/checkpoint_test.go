package badger

import (
	"context"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/poetica/core"
	"github.com/poiesic/poetica/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointRepository(t *testing.T) {
	_, checkpointRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()
	ctx := context.Background()

	t.Run("missing checkpoint is nil", func(t *testing.T) {
		checkpoint, err := checkpointRepo.LoadCheckpoint(ctx, "poems_minimal.json")
		require.NoError(t, err)
		assert.Nil(t, checkpoint)
	})

	t.Run("save and load", func(t *testing.T) {
		saved := &core.Checkpoint{
			Name:        "poems_minimal.json",
			Fingerprint: core.IDFromContent("v1"),
			PoemCount:   12,
		}
		require.NoError(t, checkpointRepo.SaveCheckpoint(ctx, saved))
		assert.False(t, saved.UpdatedAt.IsZero())

		loaded, err := checkpointRepo.LoadCheckpoint(ctx, "poems_minimal.json")
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, saved.Fingerprint, loaded.Fingerprint)
		assert.Equal(t, 12, loaded.PoemCount)
		assert.True(t, saved.UpdatedAt.Truncate(time.Microsecond).Equal(loaded.UpdatedAt))
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, checkpointRepo.SaveCheckpoint(ctx, &core.Checkpoint{
			Name:        "poems_minimal.json",
			Fingerprint: core.IDFromContent("v2"),
			PoemCount:   13,
		}))

		loaded, err := checkpointRepo.LoadCheckpoint(ctx, "poems_minimal.json")
		require.NoError(t, err)
		assert.Equal(t, core.IDFromContent("v2"), loaded.Fingerprint)
		assert.Equal(t, 13, loaded.PoemCount)
	})
}

func TestCheckpointRepository_Failures(t *testing.T) {
	_, checkpointRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		checkpoint := &core.Checkpoint{Name: "poems_minimal.json"}
		assert.ErrorIs(t, checkpointRepo.SaveCheckpoint(ctx, checkpoint), context.Canceled)
		assert.True(t, checkpoint.UpdatedAt.IsZero())

		_, err := checkpointRepo.LoadCheckpoint(ctx, "poems_minimal.json")
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("corrupt record", func(t *testing.T) {
		require.NoError(t, backend.WithTx(func(tx *badger.Txn) error {
			if err := tx.Set(makeCheckpointKey("broken.json"), []byte{0x04, 'a'}); err != nil {
				return err
			}
			return tx.Commit()
		}, true))

		checkpoint, err := checkpointRepo.LoadCheckpoint(context.Background(), "broken.json")
		assert.ErrorIs(t, err, storage.ErrSerializationFailed)
		assert.ErrorContains(t, err, "broken.json")
		assert.Nil(t, checkpoint)
	})

	t.Run("closed backend", func(t *testing.T) {
		_, checkpointRepo, backend, err := NewMemoryRepositories()
		require.NoError(t, err)
		require.NoError(t, backend.Close())

		checkpoint := &core.Checkpoint{Name: "poems_minimal.json"}
		assert.ErrorIs(t, checkpointRepo.SaveCheckpoint(context.Background(), checkpoint), storage.ErrStorageClosed)
		assert.True(t, checkpoint.UpdatedAt.IsZero())
	})
}
