package text

import (
	"regexp"
	"strings"

	"github.com/poiesic/poetica/core"
)

const (
	// placeholderTitle marks untitled poems in the dataset.
	placeholderTitle = "***"

	// Untitled is shown when a poem has neither a title nor a non-blank line.
	Untitled = "Без названия..."
)

var trailingPunctuation = regexp.MustCompile(`[.,\x{2026}\-–—:;!?\s]+$`)

// DisplayTitle returns the title shown in lists and headers. Poems titled "***"
// or with a blank title are shown by their first non-blank line, trimmed of
// trailing punctuation and followed by an ellipsis.
func DisplayTitle(p *core.Poem) string {
	if p.Title != "" && p.Title != placeholderTitle && strings.TrimSpace(p.Title) != "" {
		return p.Title
	}

	lines := p.SourceLines()
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		return trailingPunctuation.ReplaceAllString(line, "") + "..."
	}
	return Untitled
}
