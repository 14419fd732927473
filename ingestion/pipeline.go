package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strconv"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/poetica/core"
	"github.com/poiesic/poetica/dataset"
	"github.com/poiesic/poetica/morph"
	"github.com/poiesic/poetica/storage"
)

// Pipeline orchestrates the import of a poem dataset into storage.
type Pipeline struct {
	poemRepository       storage.PoemRepository
	checkpointRepository storage.CheckpointRepository
	pool                 *ants.Pool
	force                bool
	progress             io.Writer
	logger               *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent conversion.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithForce re-imports even when the source fingerprint matches the last import.
func WithForce(force bool) Option {
	return func(p *Pipeline) error {
		p.force = force
		return nil
	}
}

// WithProgress reports conversion progress to w. Default is no reporting.
func WithProgress(w io.Writer) Option {
	return func(p *Pipeline) error {
		p.progress = w
		return nil
	}
}

// NewPipeline creates a new import pipeline.
func NewPipeline(
	poemRepository storage.PoemRepository,
	checkpointRepository storage.CheckpointRepository,
	opts ...Option,
) (*Pipeline, error) {
	if poemRepository == nil {
		return nil, ErrPoemRepositoryRequired
	}
	if checkpointRepository == nil {
		return nil, ErrCheckpointRepositoryRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		poemRepository:       poemRepository,
		checkpointRepository: checkpointRepository,
		pool:                 pool,
		logger:               slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Input names the documents of one import. Lexicon and Compact are optional
// but must be provided together.
type Input struct {
	Poems   *dataset.Source
	Lexicon *dataset.Source
	Compact *dataset.Source
}

// fingerprint identifies the combined content of all documents.
func (in Input) fingerprint() core.ID {
	if in.Lexicon == nil {
		return in.Poems.Fingerprint
	}
	return core.IDFromContent(fmt.Sprintf("%016x:%016x:%016x",
		uint64(in.Poems.Fingerprint), uint64(in.Lexicon.Fingerprint), uint64(in.Compact.Fingerprint)))
}

// Result summarizes an import.
type Result struct {
	// Poems is the number of poems in the stored catalog.
	Poems int
	// Skipped is true when the fingerprint matched and nothing was written.
	Skipped bool
	// Unresolved counts compact morphology references missing from the lexicon.
	Unresolved  int
	Fingerprint core.ID
}

// Import converts the documents in in and replaces the stored catalog with
// the result. Unless forced, an import whose fingerprint matches the last
// checkpoint is skipped.
func (p *Pipeline) Import(ctx context.Context, in Input) (*Result, error) {
	if in.Poems == nil {
		return nil, ErrSourceRequired
	}
	if (in.Lexicon == nil) != (in.Compact == nil) {
		return nil, ErrIncompleteMorphology
	}

	fingerprint := in.fingerprint()
	logger := p.logger.With("source", in.Poems.Name, "fingerprint", fmt.Sprintf("%016x", uint64(fingerprint)))

	if !p.force {
		checkpoint, err := p.checkpointRepository.LoadCheckpoint(ctx, in.Poems.Name)
		if err != nil {
			return nil, err
		}
		if checkpoint != nil && checkpoint.Fingerprint == fingerprint {
			logger.Info("dataset unchanged, skipping import", "poems", checkpoint.PoemCount)
			return &Result{Poems: checkpoint.PoemCount, Skipped: true, Fingerprint: fingerprint}, nil
		}
	}

	records, err := dataset.ParsePoems(in.Poems.Data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", in.Poems.Name, err)
	}

	var resolver *morphResolver
	if in.Lexicon != nil {
		resolver, err = newMorphResolver(in.Lexicon, in.Compact)
		if err != nil {
			return nil, err
		}
	}

	poems, unresolved, err := p.convert(ctx, records, resolver)
	if err != nil {
		return nil, err
	}

	if err := p.poemRepository.ReplacePoems(ctx, poems); err != nil {
		return nil, fmt.Errorf("storing catalog: %w", err)
	}

	checkpoint := &core.Checkpoint{
		Name:        in.Poems.Name,
		Fingerprint: fingerprint,
		PoemCount:   len(poems),
	}
	if err := p.checkpointRepository.SaveCheckpoint(ctx, checkpoint); err != nil {
		return nil, fmt.Errorf("saving checkpoint: %w", err)
	}

	if unresolved > 0 {
		logger.Warn("morphology references missing from lexicon", "count", unresolved)
	}
	logger.Info("imported dataset", "poems", len(poems))

	return &Result{Poems: len(poems), Unresolved: unresolved, Fingerprint: fingerprint}, nil
}

// convert turns records into validated poems on the worker pool. The output
// keeps dataset order regardless of completion order.
func (p *Pipeline) convert(ctx context.Context, records []*dataset.Record, resolver *morphResolver) ([]*core.Poem, int, error) {
	poems := make([]*core.Poem, len(records))
	errs := make([]error, len(records))
	missing := make([]int, len(records))

	var tracker *ProgressTracker
	if p.progress != nil {
		tracker = NewProgressTracker(p.progress, len(records), 100)
		tracker.Start()
	}

	var wg sync.WaitGroup
	for i, record := range records {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, 0, err
		}

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			poems[i], missing[i], errs[i] = convertRecord(record, resolver)
			if tracker != nil {
				tracker.Increment(1)
			}
		})
		if submitErr != nil {
			wg.Done()
			wg.Wait()
			return nil, 0, fmt.Errorf("submitting record %d: %w", record.ID, submitErr)
		}
	}
	wg.Wait()

	if tracker != nil {
		tracker.Finish()
	}

	if err := errors.Join(errs...); err != nil {
		return nil, 0, err
	}

	unresolved := 0
	for _, n := range missing {
		unresolved += n
	}
	return poems, unresolved, nil
}

// convertRecord builds one poem. Inline lines_morph takes precedence over
// compact morphology.
func convertRecord(record *dataset.Record, resolver *morphResolver) (*core.Poem, int, error) {
	poem := record.Poem()

	unresolved := 0
	if poem.LinesMorph == nil && resolver != nil {
		poem.LinesMorph, unresolved = resolver.resolve(poem)
	}

	if err := core.ValidatePoem(poem); err != nil {
		return nil, 0, err
	}
	return poem, unresolved, nil
}

// morphResolver expands compact morphology for individual poems.
type morphResolver struct {
	lexicon morph.Lexicon
	compact morph.Compact
}

func newMorphResolver(lexicon, compact *dataset.Source) (*morphResolver, error) {
	lex, err := dataset.ParseLexicon(lexicon.Data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", lexicon.Name, err)
	}
	cmp, err := dataset.ParseCompact(compact.Data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", compact.Name, err)
	}
	return &morphResolver{lexicon: lex, compact: cmp}, nil
}

// resolve aligns the poem's compact references with its lines. It is safe
// for concurrent use; the maps are only read.
func (r *morphResolver) resolve(poem *core.Poem) ([][][]core.MorphAnalysis, int) {
	refs, ok := r.compact[strconv.Itoa(int(poem.ID))]
	if !ok {
		return nil, 0
	}
	return r.lexicon.Resolve(poem.SourceLines(), refs), r.lexicon.Unresolved(refs)
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
