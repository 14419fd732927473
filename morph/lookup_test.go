package morph

import (
	"testing"

	"github.com/poiesic/poetica/core"
	"github.com/poiesic/poetica/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analysis(word, normal, pos string) core.MorphAnalysis {
	return core.MorphAnalysis{Word: word, NormalForm: normal, PartOfSpeech: pos, Grammemes: pos + ",sing"}
}

func TestLookup_NoMorphology(t *testing.T) {
	p := &core.Poem{Lines: []string{"Привет, мир!", "и снова"}}

	for _, line := range text.Tokenize(p) {
		for _, tok := range line {
			got := Lookup(p, tok)
			require.Len(t, got, 1)
			assert.Equal(t, Unavailable, got[0].NormalForm)
			assert.Equal(t, NotApplicable, got[0].PartOfSpeech)
			assert.Equal(t, NotApplicable, got[0].Grammemes)
			assert.Equal(t, tok.Clean, got[0].Word)
			assert.True(t, IsMissing(got))
		}
	}
}

func TestLookup_StoredAnalyses(t *testing.T) {
	ambiguous := []core.MorphAnalysis{
		analysis("мир", "мир", "NOUN"),
		analysis("мир", "мир", "NOUN"),
	}
	p := &core.Poem{
		Lines: []string{"Привет, мир!"},
		LinesMorph: [][][]core.MorphAnalysis{
			{{analysis("Привет", "привет", "NOUN")}, ambiguous},
		},
	}

	tokens := text.Tokenize(p)[0]
	got := Lookup(p, tokens[1])
	assert.Equal(t, ambiguous, got)
	assert.False(t, IsMissing(got))

	got = Lookup(p, tokens[0])
	require.Len(t, got, 1)
	assert.Equal(t, "привет", got[0].NormalForm)
}

func TestLookupAt_OutOfRange(t *testing.T) {
	p := &core.Poem{
		Lines: []string{"раз два", "три"},
		LinesMorph: [][][]core.MorphAnalysis{
			{{analysis("раз", "раз", "NOUN")}, {}},
		},
	}

	tests := []struct {
		name       string
		line, word int
	}{
		{"word past end of line", 0, 5},
		{"empty entry", 0, 1},
		{"line past end of table", 1, 0},
		{"negative line", -1, 0},
		{"negative word", 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LookupAt(p, tt.line, tt.word, "x")
			require.Len(t, got, 1)
			assert.Equal(t, Unavailable, got[0].NormalForm)
			assert.Equal(t, "x", got[0].Word)
		})
	}
}

func TestLookup_NonClickableToken(t *testing.T) {
	p := &core.Poem{Lines: []string{"—"}, LinesMorph: [][][]core.MorphAnalysis{{{analysis("—", "—", "PNCT")}}}}
	tok := text.Token{Display: "-", Line: -1, Word: -1}
	assert.True(t, IsMissing(Lookup(p, tok)))
}

// Mismatched lines/linesMorph lengths must never panic, whichever side is longer.
func TestLookup_LengthMismatchNeverPanics(t *testing.T) {
	entry := []core.MorphAnalysis{analysis("w", "w", "NOUN")}
	shapes := []struct {
		name  string
		lines []string
		morph [][][]core.MorphAnalysis
	}{
		{"morph shorter", []string{"a b c", "d e", "f"}, [][][]core.MorphAnalysis{{entry}}},
		{"morph longer", []string{"a"}, [][][]core.MorphAnalysis{{entry, entry, entry}, {entry}, {entry}}},
		{"ragged rows", []string{"a b c d", "e f g"}, [][][]core.MorphAnalysis{{}, {entry}}},
		{"nil rows", []string{"a b", "c d"}, [][][]core.MorphAnalysis{nil, nil}},
	}

	for _, shape := range shapes {
		t.Run(shape.name, func(t *testing.T) {
			p := &core.Poem{Lines: shape.lines, LinesMorph: shape.morph}
			assert.NotPanics(t, func() {
				for _, line := range text.Tokenize(p) {
					for _, tok := range line {
						got := Lookup(p, tok)
						assert.NotEmpty(t, got)
					}
				}
				for line := -1; line <= len(shape.morph)+1; line++ {
					for word := -1; word <= 5; word++ {
						assert.NotEmpty(t, LookupAt(p, line, word, ""))
					}
				}
			})
		})
	}
}
