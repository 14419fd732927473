package ingestion

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/poiesic/poetica/core"
	"github.com/poiesic/poetica/dataset"
	"github.com/poiesic/poetica/storage"
	"github.com/poiesic/poetica/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const poemsJSON = `[
  {"id": 10, "title": "Пророк", "text": "Духовной жаждою томим,\nВ пустыне мрачной я влачился"},
  {"id": 3, "title": "***", "lines": ["Я помню чудное мгновенье:", "Передо мной явилась ты"], "in_cycle": true},
  {"id": 7, "title": "Анчар", "lines": ["В пустыне чахлой и скупой"],
   "lines_morph": [[[{"word": "В", "normal_form": "в", "pos": "PREP", "grammeme": "PREP"}]]]}
]`

const lexiconJSON = `{
  "Я": [{"word": "Я", "normal_form": "я", "pos": "NPRO", "grammeme": "NPRO,1per sing,nomn"}],
  "помню": [{"word": "помню", "normal_form": "помнить", "pos": "VERB", "grammeme": "VERB,impf"}]
}`

const compactJSON = `{
  "3": [[{"ref": "Я"}, {"ref": "помню"}, {"ref": "чудное"}], [{"ref": "Передо"}]],
  "7": [[{"ref": "Я"}]]
}`

func source(name, data string) *dataset.Source {
	return &dataset.Source{Name: name, Data: []byte(data), Fingerprint: core.IDFromContent(data)}
}

func newTestRepos(t *testing.T) (storage.PoemRepository, storage.CheckpointRepository) {
	t.Helper()
	poemRepo, checkpointRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		poemRepo.Close()
		backend.Close()
	})
	return poemRepo, checkpointRepo
}

func TestNewPipeline(t *testing.T) {
	poemRepo, checkpointRepo := newTestRepos(t)

	t.Run("valid configuration", func(t *testing.T) {
		pipeline, err := NewPipeline(poemRepo, checkpointRepo)
		require.NoError(t, err)
		defer pipeline.Release()
		assert.NotNil(t, pipeline)
	})

	t.Run("with options", func(t *testing.T) {
		pipeline, err := NewPipeline(poemRepo, checkpointRepo,
			WithPoolSize(0), WithLogger(nil), WithForce(true), WithProgress(nil))
		require.NoError(t, err)
		defer pipeline.Release()
		assert.Equal(t, 1, pipeline.pool.Cap())
		assert.True(t, pipeline.force)
		assert.NotNil(t, pipeline.logger)
	})

	t.Run("nil poem repository", func(t *testing.T) {
		_, err := NewPipeline(nil, checkpointRepo)
		assert.Equal(t, ErrPoemRepositoryRequired, err)
	})

	t.Run("nil checkpoint repository", func(t *testing.T) {
		_, err := NewPipeline(poemRepo, nil)
		assert.Equal(t, ErrCheckpointRepositoryRequired, err)
	})
}

func TestImport(t *testing.T) {
	poemRepo, checkpointRepo := newTestRepos(t)
	ctx := context.Background()

	pipeline, err := NewPipeline(poemRepo, checkpointRepo, WithPoolSize(4))
	require.NoError(t, err)
	defer pipeline.Release()

	result, err := pipeline.Import(ctx, Input{Poems: source("poems_minimal.json", poemsJSON)})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Poems)
	assert.False(t, result.Skipped)

	poems, err := poemRepo.ListPoems(ctx)
	require.NoError(t, err)
	require.Len(t, poems, 3)

	t.Run("dataset order is preserved", func(t *testing.T) {
		assert.Equal(t, core.PoemID(10), poems[0].ID)
		assert.Equal(t, core.PoemID(3), poems[1].ID)
		assert.Equal(t, core.PoemID(7), poems[2].ID)
	})

	t.Run("line counts are derived", func(t *testing.T) {
		assert.Equal(t, 2, poems[0].LineCount)
		assert.Equal(t, 2, poems[1].LineCount)
		assert.Equal(t, 1, poems[2].LineCount)
	})

	t.Run("checkpoint is recorded", func(t *testing.T) {
		checkpoint, err := checkpointRepo.LoadCheckpoint(ctx, "poems_minimal.json")
		require.NoError(t, err)
		require.NotNil(t, checkpoint)
		assert.Equal(t, result.Fingerprint, checkpoint.Fingerprint)
		assert.Equal(t, 3, checkpoint.PoemCount)
	})
}

func TestImport_SkipsUnchangedDataset(t *testing.T) {
	poemRepo, checkpointRepo := newTestRepos(t)
	ctx := context.Background()
	in := Input{Poems: source("poems_minimal.json", poemsJSON)}

	pipeline, err := NewPipeline(poemRepo, checkpointRepo)
	require.NoError(t, err)
	defer pipeline.Release()

	_, err = pipeline.Import(ctx, in)
	require.NoError(t, err)

	again, err := pipeline.Import(ctx, in)
	require.NoError(t, err)
	assert.True(t, again.Skipped)
	assert.Equal(t, 3, again.Poems)

	forced, err := NewPipeline(poemRepo, checkpointRepo, WithForce(true))
	require.NoError(t, err)
	defer forced.Release()

	result, err := forced.Import(ctx, in)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
}

func TestImport_ChangedDatasetReplacesCatalog(t *testing.T) {
	poemRepo, checkpointRepo := newTestRepos(t)
	ctx := context.Background()

	pipeline, err := NewPipeline(poemRepo, checkpointRepo)
	require.NoError(t, err)
	defer pipeline.Release()

	_, err = pipeline.Import(ctx, Input{Poems: source("poems_minimal.json", poemsJSON)})
	require.NoError(t, err)

	result, err := pipeline.Import(ctx, Input{Poems: source("poems_minimal.json", `[{"id": 1, "text": "Октябрь уж наступил"}]`)})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Poems)

	count, err := poemRepo.CountPoems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestImport_CompactMorphologyAlignment(t *testing.T) {
	poemRepo, checkpointRepo := newTestRepos(t)
	ctx := context.Background()

	pipeline, err := NewPipeline(poemRepo, checkpointRepo)
	require.NoError(t, err)
	defer pipeline.Release()

	_, err = pipeline.Import(ctx, Input{
		Poems:   source("poems_minimal.json", `[{"id": 5, "lines": ["— Привет, мир!", "кто-то пришёл"]}]`),
		Lexicon: source("lemmas.json", `{
  "Привет": [{"word": "Привет", "normal_form": "привет", "pos": "NOUN", "grammeme": "NOUN"}],
  "мир": [{"word": "мир", "normal_form": "мир", "pos": "NOUN", "grammeme": "NOUN"}],
  "кто": [{"word": "кто", "normal_form": "кто", "pos": "NPRO", "grammeme": "NPRO"}],
  "то": [{"word": "то", "normal_form": "то", "pos": "PRCL", "grammeme": "PRCL"}]
}`),
		Compact: source("poems_morphology_compact.json",
			`{"5": [[{"ref": "Привет"}, {"ref": "мир"}], [{"ref": "кто"}, {"ref": "то"}, {"ref": "пришёл"}]]}`),
	})
	require.NoError(t, err)

	poem, err := poemRepo.GetPoem(ctx, 5)
	require.NoError(t, err)
	require.Len(t, poem.LinesMorph, 2)

	dash := poem.LinesMorph[0]
	require.Len(t, dash, 3)
	assert.Empty(t, dash[0])
	assert.Equal(t, "привет", dash[1][0].NormalForm)
	assert.Equal(t, "мир", dash[2][0].NormalForm)

	hyphen := poem.LinesMorph[1]
	require.Len(t, hyphen, 2)
	require.Len(t, hyphen[0], 2)
	assert.Equal(t, "кто", hyphen[0][0].NormalForm)
	assert.Equal(t, "то", hyphen[0][1].NormalForm)
	assert.Empty(t, hyphen[1])
}

func TestImport_CompactMorphology(t *testing.T) {
	poemRepo, checkpointRepo := newTestRepos(t)
	ctx := context.Background()

	pipeline, err := NewPipeline(poemRepo, checkpointRepo)
	require.NoError(t, err)
	defer pipeline.Release()

	result, err := pipeline.Import(ctx, Input{
		Poems:   source("poems_minimal.json", poemsJSON),
		Lexicon: source("lemmas.json", lexiconJSON),
		Compact: source("poems_morphology_compact.json", compactJSON),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Unresolved)

	t.Run("compact references are resolved", func(t *testing.T) {
		poem, err := poemRepo.GetPoem(ctx, 3)
		require.NoError(t, err)
		require.Len(t, poem.LinesMorph, 2)
		assert.Equal(t, "помнить", poem.LinesMorph[0][1][0].NormalForm)
		assert.Empty(t, poem.LinesMorph[0][2])
	})

	t.Run("inline morphology wins", func(t *testing.T) {
		poem, err := poemRepo.GetPoem(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "в", poem.LinesMorph[0][0][0].NormalForm)
	})

	t.Run("poems without entries keep no morphology", func(t *testing.T) {
		poem, err := poemRepo.GetPoem(ctx, 10)
		require.NoError(t, err)
		assert.Nil(t, poem.LinesMorph)
	})

	t.Run("morphology changes the fingerprint", func(t *testing.T) {
		plain := Input{Poems: source("poems_minimal.json", poemsJSON)}
		assert.NotEqual(t, plain.fingerprint(), result.Fingerprint)
	})
}

func TestImport_Errors(t *testing.T) {
	poemRepo, checkpointRepo := newTestRepos(t)
	ctx := context.Background()

	pipeline, err := NewPipeline(poemRepo, checkpointRepo)
	require.NoError(t, err)
	defer pipeline.Release()

	_, err = pipeline.Import(ctx, Input{Poems: source("poems_minimal.json", poemsJSON)})
	require.NoError(t, err)

	t.Run("missing source", func(t *testing.T) {
		_, err := pipeline.Import(ctx, Input{})
		assert.ErrorIs(t, err, ErrSourceRequired)
	})

	t.Run("lexicon without compact", func(t *testing.T) {
		_, err := pipeline.Import(ctx, Input{
			Poems:   source("poems_minimal.json", poemsJSON),
			Lexicon: source("lemmas.json", lexiconJSON),
		})
		assert.ErrorIs(t, err, ErrIncompleteMorphology)
	})

	t.Run("malformed dataset", func(t *testing.T) {
		_, err := pipeline.Import(ctx, Input{Poems: source("poems_minimal.json", `{"broken":`)})
		assert.ErrorIs(t, err, dataset.ErrMalformedDataset)
	})

	t.Run("poem without text and lines keeps previous catalog", func(t *testing.T) {
		_, err := pipeline.Import(ctx, Input{Poems: source("poems_minimal.json", `[{"id": 1, "text": "a"}, {"id": 2, "title": "Пусто"}]`)})
		assert.ErrorIs(t, err, core.ErrInvalidPoem)
		assert.ErrorIs(t, err, core.ErrMissingText)

		count, err := poemRepo.CountPoems(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		forced, err := NewPipeline(poemRepo, checkpointRepo, WithForce(true))
		require.NoError(t, err)
		defer forced.Release()

		_, err = forced.Import(cancelled, Input{Poems: source("poems_minimal.json", poemsJSON)})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestImport_ReportsProgress(t *testing.T) {
	poemRepo, checkpointRepo := newTestRepos(t)
	var out bytes.Buffer

	pipeline, err := NewPipeline(poemRepo, checkpointRepo,
		WithProgress(&out), WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	require.NoError(t, err)
	defer pipeline.Release()

	_, err = pipeline.Import(context.Background(), Input{Poems: source("poems_minimal.json", poemsJSON)})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Converted: 3/3 (100.0%)")
}
