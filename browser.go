package poetica

import (
	"fmt"
	"log/slog"

	"github.com/poiesic/poetica/core"
	"github.com/poiesic/poetica/filter"
	"github.com/poiesic/poetica/morph"
	"github.com/poiesic/poetica/paginate"
	"github.com/poiesic/poetica/text"
)

// Browser is a filtered, paginated view over an immutable poem snapshot.
// It is not safe for concurrent use.
type Browser struct {
	poems      []*core.Poem
	byID       map[core.PoemID]*core.Poem
	engine     *filter.Engine
	spec       filter.Spec
	results    []*core.Poem
	generation uint64
	pager      *paginate.Paginator[*core.Poem]
	pageSize   paginate.PageSize
	logger     *slog.Logger
}

// BrowserOption configures a Browser.
type BrowserOption func(*Browser) error

// WithBrowserLogger sets a custom logger.
// Default is slog.Default().
func WithBrowserLogger(logger *slog.Logger) BrowserOption {
	return func(b *Browser) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// WithPageSize sets the initial page size. Default is paginate.Default.
func WithPageSize(size paginate.PageSize) BrowserOption {
	return func(b *Browser) error {
		if size < 0 {
			return fmt.Errorf("%w: %d", paginate.ErrInvalidPageSize, size)
		}
		b.pageSize = size
		return nil
	}
}

// NewBrowser returns a Browser over poems with no constraints applied,
// positioned on the first page. The page size is paginate.Default unless
// WithPageSize says otherwise.
func NewBrowser(poems []*core.Poem, opts ...BrowserOption) (*Browser, error) {
	b := &Browser{
		poems:    poems,
		byID:     make(map[core.PoemID]*core.Poem, len(poems)),
		pageSize: paginate.Default,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	engine, err := filter.NewEngine(filter.WithLogger(b.logger))
	if err != nil {
		return nil, err
	}
	b.engine = engine

	for _, p := range poems {
		if _, dup := b.byID[p.ID]; dup {
			b.logger.Warn("duplicate poem id in snapshot", "id", p.ID)
			continue
		}
		b.byID[p.ID] = p
	}

	b.pager = paginate.NewPaginator[*core.Poem](b.pageSize)
	b.ApplyFilter(filter.Spec{})
	return b, nil
}

// ApplyFilter replaces the active constraints and returns to the first page.
func (b *Browser) ApplyFilter(spec filter.Spec) {
	b.spec = spec
	b.results = b.engine.Apply(b.poems, spec)
	b.generation++
	b.pager.SetItems(b.results, b.generation)
	b.logger.Debug("filter applied", "matched", len(b.results), "generation", b.generation)
}

// ApplyForm validates raw form input and applies it. Invalid numeric input is
// dropped rather than rejected.
func (b *Browser) ApplyForm(form filter.Form) filter.Spec {
	spec := b.engine.SpecFromForm(form)
	b.ApplyFilter(spec)
	return spec
}

// Reset clears every constraint.
func (b *Browser) Reset() {
	b.ApplyFilter(filter.Spec{})
}

// Spec returns the active constraints.
func (b *Browser) Spec() filter.Spec {
	return b.spec
}

// Active returns the labels of the active constraints.
func (b *Browser) Active() []string {
	return filter.Describe(b.spec)
}

// Results returns every poem matching the active constraints.
func (b *Browser) Results() []*core.Poem {
	return b.results
}

// SetPageSize changes the page size and returns to the first page. Sizes
// below paginate.All fall back to paginate.Default.
func (b *Browser) SetPageSize(size paginate.PageSize) {
	b.pager.SetPageSize(size)
}

// SetPage moves to the zero-based page index, clamped to the available pages.
func (b *Browser) SetPage(index int) {
	b.pager.SetPage(index)
}

// Page returns the poems of the current page.
func (b *Browser) Page() []*core.Poem {
	return b.pager.Page()
}

// Info describes the current page position.
func (b *Browser) Info() paginate.Info {
	return b.pager.Info()
}

// Sections returns the distinct section names of the whole snapshot.
func (b *Browser) Sections() []string {
	return filter.DistinctSections(b.poems)
}

// Poem returns the poem with the given id, whether or not it matches the
// active constraints.
func (b *Browser) Poem(id core.PoemID) (*core.Poem, error) {
	p, ok := b.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrPoemNotFound, id)
	}
	return p, nil
}

// Tokens returns the tokenized lines of a poem.
func (b *Browser) Tokens(id core.PoemID) ([][]text.Token, error) {
	p, err := b.Poem(id)
	if err != nil {
		return nil, err
	}
	return text.Tokenize(p), nil
}

// Lookup returns the word at (line, word) of a poem and its analyses.
// Coordinates outside the poem yield an empty word and the synthetic
// "unavailable" analysis.
func (b *Browser) Lookup(id core.PoemID, line, word int) (string, []core.MorphAnalysis, error) {
	p, err := b.Poem(id)
	if err != nil {
		return "", nil, err
	}

	lines := text.Tokenize(p)
	if line < 0 || line >= len(lines) || word < 0 || word >= len(lines[line]) {
		return "", []core.MorphAnalysis{morph.Missing("")}, nil
	}

	tok := lines[line][word]
	return tok.Clean, morph.Lookup(p, tok), nil
}
