package morph

import (
	"github.com/poiesic/poetica/core"
	"github.com/poiesic/poetica/text"
)

const (
	// Unavailable is the normal form reported when no analysis exists.
	Unavailable = "unavailable"

	// NotApplicable fills the part of speech and grammemes of a missing analysis.
	NotApplicable = "N/A"
)

// Missing returns the synthetic analysis reported for word when no stored analysis exists.
func Missing(word string) core.MorphAnalysis {
	return core.MorphAnalysis{
		Word:         word,
		NormalForm:   Unavailable,
		PartOfSpeech: NotApplicable,
		Grammemes:    NotApplicable,
	}
}

// IsMissing reports whether analyses is the synthetic "unavailable" result.
func IsMissing(analyses []core.MorphAnalysis) bool {
	return len(analyses) == 1 && analyses[0].NormalForm == Unavailable &&
		analyses[0].PartOfSpeech == NotApplicable
}

// Lookup returns the analyses stored for tok. Tokens that are not clickable
// carry no coordinates and always resolve to the synthetic result.
func Lookup(p *core.Poem, tok text.Token) []core.MorphAnalysis {
	if !tok.Clickable() {
		return []core.MorphAnalysis{Missing(tok.Clean)}
	}
	return LookupAt(p, tok.Line, tok.Word, tok.Clean)
}

// LookupAt returns the analyses stored at (line, word). clean names the word in
// the synthetic result. Out-of-range coordinates, including a morphology table
// shorter than the poem, fall back to the synthetic result.
//
// The returned slice is the stored one; callers must not modify it.
func LookupAt(p *core.Poem, line, word int, clean string) []core.MorphAnalysis {
	if p == nil || line < 0 || word < 0 || line >= len(p.LinesMorph) {
		return []core.MorphAnalysis{Missing(clean)}
	}
	words := p.LinesMorph[line]
	if word >= len(words) || len(words[word]) == 0 {
		return []core.MorphAnalysis{Missing(clean)}
	}
	return words[word]
}
