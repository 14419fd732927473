package morph

import (
	"regexp"
	"strings"

	"github.com/poiesic/poetica/core"
)

// Lexicon maps a word form to all of its analyses.
type Lexicon map[string][]core.MorphAnalysis

// Ref points a word position at a Lexicon entry.
type Ref struct {
	Ref string `json:"ref"`
}

// CompactLine is one poem line of references, one per word-character run
// of the line in reading order.
type CompactLine []Ref

// Compact maps a poem id (as written in the JSON document) to its reference lines.
type Compact map[string][]CompactLine

// wordRun matches what the compact builder references: maximal runs of
// letters, digits and underscores.
var wordRun = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Resolve expands reference lines into a per-line analysis table indexed like
// the tokenizer: by line, then by space-separated word. Each reference is
// matched to the word-character run it was built from, and its analyses are
// stored at the word containing that run. A word holding several runs, such
// as "кто-то", gets the analyses of all of them. Words without a run, and runs
// whose reference the lexicon does not know, stay nil so lookups report them
// as unavailable. References beyond the runs of a line are ignored.
func (l Lexicon) Resolve(text []string, refs []CompactLine) [][][]core.MorphAnalysis {
	if refs == nil {
		return nil
	}
	out := make([][][]core.MorphAnalysis, len(refs))
	for i, lineRefs := range refs {
		if i >= len(text) {
			break
		}
		out[i] = l.resolveLine(text[i], lineRefs)
	}
	return out
}

func (l Lexicon) resolveLine(line string, refs CompactLine) [][]core.MorphAnalysis {
	words := strings.Split(line, " ")
	row := make([][]core.MorphAnalysis, len(words))

	// ends[w] is the byte offset just past word w.
	ends := make([]int, len(words))
	offset := 0
	for w, word := range words {
		offset += len(word)
		ends[w] = offset
		offset++
	}

	w := 0
	for k, run := range wordRun.FindAllStringIndex(line, -1) {
		if k >= len(refs) {
			break
		}
		for ends[w] <= run[0] {
			w++
		}
		if analyses := l[refs[k].Ref]; len(analyses) > 0 {
			row[w] = append(row[w], analyses...)
		}
	}
	return row
}

// Unresolved counts references in lines that the lexicon does not know.
func (l Lexicon) Unresolved(lines []CompactLine) int {
	missing := 0
	for _, line := range lines {
		for _, ref := range line {
			if len(l[ref.Ref]) == 0 {
				missing++
			}
		}
	}
	return missing
}
