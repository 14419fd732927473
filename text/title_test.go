package text

import (
	"testing"

	"github.com/poiesic/poetica/core"
	"github.com/stretchr/testify/assert"
)

func TestDisplayTitle(t *testing.T) {
	tests := []struct {
		name string
		poem *core.Poem
		want string
	}{
		{
			name: "real title",
			poem: &core.Poem{Title: "Осень", Text: "Листья падают."},
			want: "Осень",
		},
		{
			name: "asterisks fall back to first line",
			poem: &core.Poem{Title: "***", Text: "Листья падают, —\nи всё."},
			want: "Листья падают...",
		},
		{
			name: "blank title skips blank lines",
			poem: &core.Poem{Title: "  ", Text: "\n  \nКогда-нибудь…"},
			want: "Когда-нибудь...",
		},
		{
			name: "lines used when text is absent",
			poem: &core.Poem{Lines: []string{"", "Вторая строка!"}},
			want: "Вторая строка...",
		},
		{
			name: "nothing to show",
			poem: &core.Poem{Lines: []string{" "}},
			want: Untitled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayTitle(tt.poem))
		})
	}
}
