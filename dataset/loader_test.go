package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/poetica/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const poemsJSON = `[
  {
    "id": 1,
    "title": "Пророк",
    "text": "Духовной жаждою томим,\nВ пустыне мрачной я влачился,\nИ шестикрылый серафим",
    "section_name": "Лирика",
    "year": 1826,
    "number": null
  },
  {
    "id": 2,
    "title": "***",
    "display_title": "Я помню чудное мгновенье",
    "lines": ["Я помню чудное мгновенье:", null, "Передо мной явилась ты,"],
    "in_cycle": true,
    "cycle_has_title": true,
    "cycle_display_name": "Керн",
    "number": "2",
    "year": "1825",
    "epigraph": null,
    "lines_morph": [[[{"word": "Я", "normal_form": "я", "pos": "NPRO", "grammeme": "NPRO,1per sing,nomn"}]]]
  }
]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParsePoems(t *testing.T) {
	records, err := ParsePoems([]byte(poemsJSON))
	require.NoError(t, err)
	require.Len(t, records, 2)

	t.Run("text record", func(t *testing.T) {
		poem := records[0].Poem()
		assert.Equal(t, core.PoemID(1), poem.ID)
		assert.Nil(t, poem.Lines)
		assert.Equal(t, 3, poem.LineCount)
		assert.Equal(t, "1826", poem.Year)
		assert.Zero(t, poem.NumberInCycle)
		assert.Equal(t, "Лирика", poem.SectionName)
	})

	t.Run("lines record with null entry", func(t *testing.T) {
		poem := records[1].Poem()
		assert.Equal(t, []string{"Я помню чудное мгновенье:", "", "Передо мной явилась ты,"}, poem.Lines)
		assert.Equal(t, 2, poem.LineCount)
		assert.Equal(t, 2, poem.NumberInCycle)
		assert.Equal(t, "1825", poem.Year)
		assert.Empty(t, poem.Epigraph)
		assert.True(t, poem.InCycle)
		assert.True(t, poem.CycleHasTitle)
		require.Len(t, poem.LinesMorph, 1)
		assert.Equal(t, "NPRO", poem.LinesMorph[0][0][0].PartOfSpeech)
	})
}

func TestParsePoems_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "poems"},
		{"object instead of array", `{"id": 1}`},
		{"boolean year", `[{"id": 1, "text": "a", "year": true}]`},
		{"empty", ""},
		{"null record", `[{"id": 1, "text": "a"}, null]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePoems([]byte(tt.data))
			assert.ErrorIs(t, err, ErrMalformedDataset)
		})
	}
}

func TestFlexible(t *testing.T) {
	tests := []struct {
		input string
		want  Flexible
		n     int
	}{
		{`12`, "12", 12},
		{`"12"`, "12", 12},
		{`" 7 "`, "7", 7},
		{`null`, "", 0},
		{`"1830-е"`, "1830-е", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var f Flexible
			require.NoError(t, f.UnmarshalJSON([]byte(tt.input)))
			assert.Equal(t, tt.want, f)
			assert.Equal(t, tt.n, f.Int())
		})
	}
}

func TestReadSource(t *testing.T) {
	path := writeFile(t, "poems_minimal.json", poemsJSON)

	src, err := ReadSource(path)
	require.NoError(t, err)
	assert.Equal(t, "poems_minimal.json", src.Name)
	assert.Equal(t, core.IDFromBytes([]byte(poemsJSON)), src.Fingerprint)

	records, err := ParsePoems(src.Data)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadSource(filepath.Join(t.TempDir(), "absent.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := ReadSource("")
		assert.ErrorIs(t, err, ErrPathRequired)
	})
}

func TestParseMorphology(t *testing.T) {
	lexicon, err := ParseLexicon([]byte(`{
  "помню": [
    {"word": "помню", "normal_form": "помнить", "pos": "VERB", "grammeme": "VERB,impf,tran sing,1per,pres,indc"}
  ],
  "Я": [
    {"word": "Я", "normal_form": "я", "pos": null, "grammeme": "NPRO"}
  ]
}`))
	require.NoError(t, err)
	assert.Len(t, lexicon, 2)
	assert.Empty(t, lexicon["Я"][0].PartOfSpeech)

	compact, err := ParseCompact([]byte(`{
  "2": [[{"ref": "Я"}, {"ref": "помню"}], []]
}`))
	require.NoError(t, err)
	require.Contains(t, compact, "2")

	resolved := lexicon.Resolve([]string{"Я помню чудное мгновенье:", ""}, compact["2"])
	require.Len(t, resolved, 2)
	assert.Equal(t, "помнить", resolved[0][1][0].NormalForm)

	t.Run("malformed lexicon", func(t *testing.T) {
		_, err := ParseLexicon([]byte(`["помню"]`))
		assert.ErrorIs(t, err, ErrMalformedDataset)
	})

	t.Run("malformed compact", func(t *testing.T) {
		_, err := ParseCompact([]byte(`{"2": "помню"}`))
		assert.ErrorIs(t, err, ErrMalformedDataset)
	})
}
