package text

import (
	"strings"

	"github.com/poiesic/poetica/core"
)

// punctuation is stripped from raw words to build the lookup form.
const punctuation = `.,;:!?()"-`

// Token is one space-delimited word of a poem line.
type Token struct {
	Display string // raw word as written, punctuation included
	Clean   string // Display without punctuation; empty for non-word tokens
	Line    int    // zero-based line index, -1 when not clickable
	Word    int    // zero-based word-in-line index, -1 when not clickable
}

// Clickable reports whether the token can be looked up.
func (t Token) Clickable() bool {
	return t.Clean != ""
}

// CleanWord strips the token punctuation set from a raw word.
func CleanWord(word string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, word)
}

// Tokenize splits the poem into lines of tokens. Lines come from Lines when
// present, otherwise from Text split on newlines.
func Tokenize(p *core.Poem) [][]Token {
	source := p.SourceLines()
	out := make([][]Token, len(source))
	for i, line := range source {
		out[i] = TokenizeLine(line, i)
	}
	return out
}

// TokenizeLine splits a single line on single spaces. Consecutive spaces
// produce empty raw words, which count toward word positions like any other.
func TokenizeLine(line string, lineIndex int) []Token {
	words := strings.Split(line, " ")
	tokens := make([]Token, len(words))
	for i, word := range words {
		clean := CleanWord(word)
		tok := Token{Display: word, Clean: clean, Line: -1, Word: -1}
		if clean != "" {
			tok.Line = lineIndex
			tok.Word = i
		}
		tokens[i] = tok
	}
	return tokens
}

// Clickable returns only the clickable tokens of a tokenized poem, in reading order.
func Clickable(lines [][]Token) []Token {
	var out []Token
	for _, line := range lines {
		for _, tok := range line {
			if tok.Clickable() {
				out = append(out, tok)
			}
		}
	}
	return out
}
