package filter

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/poetica/core"
)

// Engine evaluates filter specs against a poem collection.
type Engine struct {
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a new filter engine.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// predicate reports whether a poem satisfies one constraint.
type predicate func(p *core.Poem) bool

// Apply returns the poems matching every constraint of spec, in input order.
// The input is never modified; an empty spec returns poems itself.
func (e *Engine) Apply(poems []*core.Poem, spec Spec) []*core.Poem {
	if spec.IsEmpty() {
		return poems
	}

	preds := compile(spec)
	result := make([]*core.Poem, 0, len(poems))
	for _, p := range poems {
		if matchesAll(p, preds) {
			result = append(result, p)
		}
	}

	e.logger.Debug("filter applied", "constraints", len(preds), "in", len(poems), "out", len(result))
	return result
}

func matchesAll(p *core.Poem, preds []predicate) bool {
	for _, pred := range preds {
		if !pred(p) {
			return false
		}
	}
	return true
}

// compile turns the present keys of spec into predicates.
func compile(spec Spec) []predicate {
	var preds []predicate

	if spec.Search != "" {
		query := strings.ToLower(spec.Search)
		preds = append(preds, func(p *core.Poem) bool {
			return matchesSearch(p, query)
		})
	}

	inCycle, cycleHasTitle := spec.Type.cycleConstraint()
	if inCycle != nil {
		want := *inCycle
		preds = append(preds, func(p *core.Poem) bool { return p.InCycle == want })
	}
	if cycleHasTitle != nil {
		want := *cycleHasTitle
		preds = append(preds, func(p *core.Poem) bool { return p.CycleHasTitle == want })
	}

	if spec.Section != "" {
		section := spec.Section
		preds = append(preds, func(p *core.Poem) bool { return p.SectionName == section })
	}

	if spec.MinLines != nil {
		min := *spec.MinLines
		preds = append(preds, func(p *core.Poem) bool { return p.LineCount >= min })
	}
	if spec.MaxLines != nil {
		max := *spec.MaxLines
		preds = append(preds, func(p *core.Poem) bool { return p.LineCount <= max })
	}

	if spec.HasEpigraph {
		preds = append(preds, func(p *core.Poem) bool { return notBlank(p.Epigraph) })
	}
	if spec.HasDedication {
		preds = append(preds, func(p *core.Poem) bool { return notBlank(p.Dedication) })
	}

	return preds
}

// matchesSearch checks the lowercased query against every searchable field.
// Absent fields are empty strings and only match an empty query, which never gets here.
func matchesSearch(p *core.Poem, query string) bool {
	fields := [...]string{p.Title, p.DisplayTitle, p.FullText(), p.Epigraph, p.Dedication}
	for _, field := range fields {
		if field != "" && strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func notBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// SpecFromForm validates raw form input and builds a Spec. Malformed line
// bounds and unknown poem types are logged and dropped, leaving that
// dimension unconstrained.
func (e *Engine) SpecFromForm(form Form) Spec {
	spec := Spec{
		Search:        form.Search,
		Section:       form.Section,
		HasEpigraph:   form.HasEpigraph,
		HasDedication: form.HasDedication,
	}

	poemType, err := ParsePoemType(form.PoemType)
	if err != nil {
		e.logger.Warn("ignoring poem type", "value", form.PoemType, "err", err)
	}
	spec.Type = poemType

	if spec.MinLines, err = ParseLineBound(form.MinLines); err != nil {
		e.logger.Warn("ignoring minimum line bound", "value", form.MinLines, "err", err)
	}
	if spec.MaxLines, err = ParseLineBound(form.MaxLines); err != nil {
		e.logger.Warn("ignoring maximum line bound", "value", form.MaxLines, "err", err)
	}

	return spec
}

// DistinctSections returns the sorted set of non-blank section names present in poems.
func DistinctSections(poems []*core.Poem) []string {
	seen := make(map[string]struct{})
	for _, p := range poems {
		if notBlank(p.SectionName) {
			seen[p.SectionName] = struct{}{}
		}
	}

	sections := make([]string, 0, len(seen))
	for s := range seen {
		sections = append(sections, s)
	}
	slices.Sort(sections)
	return sections
}
