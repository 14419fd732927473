package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content-derived identifier used for dataset and lexicon fingerprints.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	return IDFromBytes([]byte(text))
}

// IDFromBytes is IDFromContent for raw byte content such as a dataset file.
func IDFromBytes(data []byte) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write(data)
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// PoemID is the dataset-assigned identifier of a poem.
type PoemID int

// MorphAnalysis is one precomputed morphological reading of a word.
// A word may carry several analyses when it is ambiguous.
type MorphAnalysis struct {
	Word         string `json:"word"`
	NormalForm   string `json:"normal_form"`
	PartOfSpeech string `json:"pos,omitempty"`
	Grammemes    string `json:"grammeme"`
}

// Poem is a single catalog entry. Poems are loaded once and never mutated.
//
// Optional string fields use the empty string for "absent". Lines and LinesMorph
// use nil for "absent"; an empty non-nil Lines is a poem with zero lines.
type Poem struct {
	ID           PoemID   `json:"id"`
	Title        string   `json:"title,omitempty"`
	DisplayTitle string   `json:"display_title,omitempty"`
	Text         string   `json:"text,omitempty"`
	Lines        []string `json:"lines,omitempty"`
	Epigraph     string   `json:"epigraph,omitempty"`
	Dedication   string   `json:"dedication,omitempty"`
	SectionName  string   `json:"section_name,omitempty"`

	InCycle          bool   `json:"in_cycle"`
	CycleHasTitle    bool   `json:"cycle_has_title"`
	CycleDisplayName string `json:"cycle_display_name,omitempty"`
	NumberInCycle    int    `json:"number,omitempty"` // 0 when the poem has no number

	Author string `json:"author,omitempty"`
	Year   string `json:"year,omitempty"`
	Source string `json:"source,omitempty"`
	Metre  string `json:"metre,omitempty"`

	// LinesMorph is indexed by line, then by word-in-line.
	LinesMorph [][][]MorphAnalysis `json:"lines_morph,omitempty"`

	// LineCount is derived at load time, see CountLines.
	LineCount int `json:"line_count"`
}

// HasLines reports whether the poem carries an explicit line sequence.
func (p *Poem) HasLines() bool {
	return p.Lines != nil
}

// SourceLines returns the poem's lines: Lines when present, otherwise Text split on newlines.
func (p *Poem) SourceLines() []string {
	if p.HasLines() {
		return p.Lines
	}
	return strings.Split(p.Text, "\n")
}

// FullText returns Text, or the lines joined with newlines when Text is absent.
func (p *Poem) FullText() string {
	if p.Text != "" || !p.HasLines() {
		return p.Text
	}
	return strings.Join(p.Lines, "\n")
}

// CountLines computes the derived line count. present is the number of non-null
// entries of the raw lines array; hasLines tells whether that array existed at all.
// Without lines the count is the number of newline-delimited segments of text.
func CountLines(hasLines bool, present int, text string) int {
	if hasLines {
		return present
	}
	return strings.Count(text, "\n") + 1
}

// Checkpoint records the last successful dataset import.
type Checkpoint struct {
	Name        string
	Fingerprint ID
	PoemCount   int
	UpdatedAt   time.Time
}
