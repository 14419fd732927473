package dataset

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/poiesic/poetica/core"
)

// Record is one entry of poems_minimal.json as it appears on the wire.
type Record struct {
	ID               int       `json:"id"`
	Title            string    `json:"title"`
	DisplayTitle     string    `json:"display_title"`
	Text             string    `json:"text"`
	Lines            []*string `json:"lines"`
	Epigraph         string    `json:"epigraph"`
	Dedication       string    `json:"dedication"`
	SectionName      string    `json:"section_name"`
	InCycle          bool      `json:"in_cycle"`
	CycleHasTitle    bool      `json:"cycle_has_title"`
	CycleDisplayName string    `json:"cycle_display_name"`
	Number           Flexible  `json:"number"`
	Author           string    `json:"author"`
	Year             Flexible  `json:"year"`
	Source           string    `json:"source"`
	Metre            string    `json:"metre"`

	// LinesMorph is present only in datasets with inline morphology.
	LinesMorph [][][]core.MorphAnalysis `json:"lines_morph"`
}

// Flexible holds a scalar that the dataset writes either as a number or as a string.
type Flexible string

// UnmarshalJSON accepts numbers, strings and null.
func (f *Flexible) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Flexible(strings.TrimSpace(s))
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*f = Flexible(n.String())
	}
	return nil
}

// Int returns the value as an integer, or 0 when it is empty or not an integer.
func (f Flexible) Int() int {
	n, err := strconv.Atoi(string(f))
	if err != nil {
		return 0
	}
	return n
}

// Poem converts the record into a catalog poem and derives its line count.
// Null entries of lines become empty lines and are not counted.
func (r *Record) Poem() *core.Poem {
	var lines []string
	present := 0
	if r.Lines != nil {
		lines = make([]string, len(r.Lines))
		for i, line := range r.Lines {
			if line == nil {
				continue
			}
			lines[i] = *line
			present++
		}
	}

	return &core.Poem{
		ID:               core.PoemID(r.ID),
		Title:            r.Title,
		DisplayTitle:     r.DisplayTitle,
		Text:             r.Text,
		Lines:            lines,
		Epigraph:         r.Epigraph,
		Dedication:       r.Dedication,
		SectionName:      r.SectionName,
		InCycle:          r.InCycle,
		CycleHasTitle:    r.CycleHasTitle,
		CycleDisplayName: r.CycleDisplayName,
		NumberInCycle:    r.Number.Int(),
		Author:           r.Author,
		Year:             string(r.Year),
		Source:           r.Source,
		Metre:            r.Metre,
		LinesMorph:       r.LinesMorph,
		LineCount:        core.CountLines(r.Lines != nil, present, r.Text),
	}
}
