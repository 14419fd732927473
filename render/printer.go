package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/poiesic/poetica/core"
	"github.com/poiesic/poetica/filter"
	"github.com/poiesic/poetica/morph"
	"github.com/poiesic/poetica/paginate"
	"github.com/poiesic/poetica/text"
)

const maxTitleWidth = 60

var (
	titleStyle = color.New(color.Bold, color.Underline)
	headStyle  = color.New(color.Bold)
	faint      = color.New(color.Faint)
	italic     = color.New(color.Italic)
	idStyle    = color.New(color.FgHiYellow)
	missing    = color.New(color.Faint, color.Italic)
)

// Printer writes catalog views to an output stream.
type Printer struct {
	out io.Writer
}

// NewPrinter returns a Printer writing to out, or to color.Output when out is nil.
func NewPrinter(out io.Writer) *Printer {
	if out == nil {
		out = color.Output
	}
	return &Printer{out: out}
}

// Results prints the found phrase, the active filter labels and the page position.
func (p *Printer) Results(info paginate.Info, labels []string) {
	_, _ = headStyle.Fprintln(p.out, filter.FoundPhrase(info.Total))
	if len(labels) > 0 {
		_, _ = faint.Fprintln(p.out, strings.Join(labels, " · "))
	}
	if info.TotalPages > 1 {
		_, _ = faint.Fprintf(p.out, "Страница %d из %d (по %s)\n", info.Page+1, info.TotalPages, info.PageSize)
	}
	fmt.Fprintln(p.out)
}

// Poems prints one table row per poem.
func (p *Printer) Poems(poems []*core.Poem) {
	if len(poems) == 0 {
		_, _ = missing.Fprintln(p.out, " нет стихотворений")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = maxTitleWidth
	tbl.AddRow(headStyle.Sprint("ID"), headStyle.Sprint("Название"), headStyle.Sprint("Раздел"),
		headStyle.Sprint("Строк"), headStyle.Sprint("Цикл"))
	for _, poem := range poems {
		tbl.AddRow(idStyle.Sprint(poem.ID), text.DisplayTitle(poem), poem.SectionName,
			poem.LineCount, cycleLabel(poem))
	}
	fmt.Fprintln(p.out, tbl)
}

// Sections prints the section names, one per line.
func (p *Printer) Sections(sections []string) {
	if len(sections) == 0 {
		_, _ = missing.Fprintln(p.out, " нет разделов")
		return
	}
	for _, s := range sections {
		fmt.Fprintln(p.out, s)
	}
}

// Poem prints the poem header, metadata and text. With coordinates set, every
// clickable word is followed by its line:word position.
func (p *Printer) Poem(poem *core.Poem, coordinates bool) {
	_, _ = titleStyle.Fprintln(p.out, text.DisplayTitle(poem))
	if poem.CycleDisplayName != "" {
		_, _ = faint.Fprintln(p.out, poem.CycleDisplayName)
	}
	fmt.Fprintln(p.out)

	lines := text.Tokenize(poem)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, row := range metadata(poem, len(text.Clickable(lines))) {
		tbl.AddRow(faint.Sprint(row[0]), row[1])
	}
	fmt.Fprintln(p.out, tbl)
	fmt.Fprintln(p.out)

	if strings.TrimSpace(poem.Dedication) != "" {
		_, _ = italic.Fprintln(p.out, poem.Dedication)
		fmt.Fprintln(p.out)
	}
	if strings.TrimSpace(poem.Epigraph) != "" {
		_, _ = italic.Fprintln(p.out, poem.Epigraph)
		fmt.Fprintln(p.out)
	}

	for _, line := range lines {
		words := make([]string, len(line))
		for i, tok := range line {
			words[i] = tok.Display
			if coordinates && tok.Clickable() {
				words[i] += faint.Sprintf("[%d:%d]", tok.Line, tok.Word)
			}
		}
		fmt.Fprintln(p.out, strings.Join(words, " "))
	}
}

// Analyses prints the morphological readings of word. The synthetic
// "unavailable" result is printed as a single muted line.
func (p *Printer) Analyses(word string, analyses []core.MorphAnalysis) {
	_, _ = titleStyle.Fprintln(p.out, word)
	if morph.IsMissing(analyses) {
		_, _ = missing.Fprintln(p.out, " разбор недоступен")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(headStyle.Sprint("Начальная форма"), headStyle.Sprint("Часть речи"), headStyle.Sprint("Граммемы"))
	for _, a := range analyses {
		tbl.AddRow(a.NormalForm, a.PartOfSpeech, a.Grammemes)
	}
	fmt.Fprintln(p.out, tbl)
}

func cycleLabel(poem *core.Poem) string {
	if !poem.InCycle {
		return ""
	}
	label := poem.CycleDisplayName
	if label == "" {
		label = "цикл"
	}
	if poem.NumberInCycle > 0 {
		label += " #" + strconv.Itoa(poem.NumberInCycle)
	}
	return label
}

func metadata(poem *core.Poem, words int) [][2]string {
	var rows [][2]string
	add := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			rows = append(rows, [2]string{label, value})
		}
	}
	add("Автор", poem.Author)
	add("Год", poem.Year)
	add("Источник", poem.Source)
	add("Размер", poem.Metre)
	add("Раздел", poem.SectionName)
	add("Строк", strconv.Itoa(poem.LineCount))
	add("Слов", strconv.Itoa(words))
	if poem.InCycle {
		add("Цикл", cycleLabel(poem))
	}
	return rows
}
