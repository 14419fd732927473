package core

import (
	"time"

	com "github.com/mus-format/common-go"
	"github.com/mus-format/mus-go/ord"
	slops "github.com/mus-format/mus-go/options/slice"
	"github.com/mus-format/mus-go/varint"
)

// MaxEncodedLen bounds every collection length accepted while decoding a
// record, so corrupt input cannot force a huge allocation.
const MaxEncodedLen = 1 << 20

var lenVl = com.ValidatorFn[int](func(l int) error {
	if l > MaxEncodedLen {
		return com.ErrTooLargeLength
	}
	return nil
})

var (
	// PoemIDMUS encodes a PoemID as a signed varint.
	PoemIDMUS = poemIDMUS{}
	// IDMUS encodes an ID as an unsigned varint.
	IDMUS = idMUS{}
	// MorphAnalysisMUS encodes a single MorphAnalysis.
	MorphAnalysisMUS = morphAnalysisMUS{}
	// PoemMUS encodes a Poem. Lines and LinesMorph carry a nil marker so an
	// absent sequence stays distinct from an empty one.
	PoemMUS = poemMUS{}
	// CheckpointMUS encodes a Checkpoint. UpdatedAt keeps microsecond precision.
	CheckpointMUS = checkpointMUS{}

	stringsMUS = ord.NewValidSliceSer[string](ord.String,
		slops.WithLenValidator[string](lenVl))
	linesMUS = ord.NewPtrSer[[]string](stringsMUS)

	analysesMUS = ord.NewValidSliceSer[MorphAnalysis](MorphAnalysisMUS,
		slops.WithLenValidator[MorphAnalysis](lenVl))
	wordsMUS = ord.NewValidSliceSer[[]MorphAnalysis](analysesMUS,
		slops.WithLenValidator[[]MorphAnalysis](lenVl))
	linesMorphMUS = ord.NewPtrSer[[][][]MorphAnalysis](
		ord.NewValidSliceSer[[][]MorphAnalysis](wordsMUS,
			slops.WithLenValidator[[][]MorphAnalysis](lenVl)))
)

type poemIDMUS struct{}

func (s poemIDMUS) Marshal(v PoemID, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s poemIDMUS) Unmarshal(bs []byte) (v PoemID, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	return PoemID(tmp), n, err
}

func (s poemIDMUS) Size(v PoemID) (size int) {
	return varint.Int.Size(int(v))
}

func (s poemIDMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	return ID(tmp), n, err
}

func (s idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

type morphAnalysisMUS struct{}

func (s morphAnalysisMUS) Marshal(v MorphAnalysis, bs []byte) (n int) {
	n = ord.String.Marshal(v.Word, bs)
	n += ord.String.Marshal(v.NormalForm, bs[n:])
	n += ord.String.Marshal(v.PartOfSpeech, bs[n:])
	return n + ord.String.Marshal(v.Grammemes, bs[n:])
}

func (s morphAnalysisMUS) Unmarshal(bs []byte) (v MorphAnalysis, n int, err error) {
	v.Word, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.NormalForm, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.PartOfSpeech, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Grammemes, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s morphAnalysisMUS) Size(v MorphAnalysis) (size int) {
	size = ord.String.Size(v.Word)
	size += ord.String.Size(v.NormalForm)
	size += ord.String.Size(v.PartOfSpeech)
	return size + ord.String.Size(v.Grammemes)
}

func (s morphAnalysisMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	for range 4 {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

type poemMUS struct{}

func (s poemMUS) Marshal(v Poem, bs []byte) (n int) {
	n = PoemIDMUS.Marshal(v.ID, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.DisplayTitle, bs[n:])
	n += ord.String.Marshal(v.Text, bs[n:])
	n += linesMUS.Marshal(linesPtr(v.Lines), bs[n:])
	n += ord.String.Marshal(v.Epigraph, bs[n:])
	n += ord.String.Marshal(v.Dedication, bs[n:])
	n += ord.String.Marshal(v.SectionName, bs[n:])
	n += ord.Bool.Marshal(v.InCycle, bs[n:])
	n += ord.Bool.Marshal(v.CycleHasTitle, bs[n:])
	n += ord.String.Marshal(v.CycleDisplayName, bs[n:])
	n += varint.Int.Marshal(v.NumberInCycle, bs[n:])
	n += ord.String.Marshal(v.Author, bs[n:])
	n += ord.String.Marshal(v.Year, bs[n:])
	n += ord.String.Marshal(v.Source, bs[n:])
	n += ord.String.Marshal(v.Metre, bs[n:])
	n += linesMorphMUS.Marshal(linesMorphPtr(v.LinesMorph), bs[n:])
	return n + varint.Int.Marshal(v.LineCount, bs[n:])
}

func (s poemMUS) Unmarshal(bs []byte) (v Poem, n int, err error) {
	v.ID, n, err = PoemIDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var (
		n1         int
		lines      *[]string
		linesMorph *[][][]MorphAnalysis
	)
	str := func(dst *string) bool {
		*dst, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		return err == nil
	}
	flag := func(dst *bool) bool {
		*dst, n1, err = ord.Bool.Unmarshal(bs[n:])
		n += n1
		return err == nil
	}
	num := func(dst *int) bool {
		*dst, n1, err = varint.Int.Unmarshal(bs[n:])
		n += n1
		return err == nil
	}
	if !str(&v.Title) || !str(&v.DisplayTitle) || !str(&v.Text) {
		return
	}
	lines, n1, err = linesMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if lines != nil {
		v.Lines = *lines
	}
	if !str(&v.Epigraph) || !str(&v.Dedication) || !str(&v.SectionName) ||
		!flag(&v.InCycle) || !flag(&v.CycleHasTitle) ||
		!str(&v.CycleDisplayName) || !num(&v.NumberInCycle) ||
		!str(&v.Author) || !str(&v.Year) || !str(&v.Source) || !str(&v.Metre) {
		return
	}
	linesMorph, n1, err = linesMorphMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if linesMorph != nil {
		v.LinesMorph = *linesMorph
	}
	num(&v.LineCount)
	return
}

func (s poemMUS) Size(v Poem) (size int) {
	size = PoemIDMUS.Size(v.ID)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.DisplayTitle)
	size += ord.String.Size(v.Text)
	size += linesMUS.Size(linesPtr(v.Lines))
	size += ord.String.Size(v.Epigraph)
	size += ord.String.Size(v.Dedication)
	size += ord.String.Size(v.SectionName)
	size += ord.Bool.Size(v.InCycle)
	size += ord.Bool.Size(v.CycleHasTitle)
	size += ord.String.Size(v.CycleDisplayName)
	size += varint.Int.Size(v.NumberInCycle)
	size += ord.String.Size(v.Author)
	size += ord.String.Size(v.Year)
	size += ord.String.Size(v.Source)
	size += ord.String.Size(v.Metre)
	size += linesMorphMUS.Size(linesMorphPtr(v.LinesMorph))
	return size + varint.Int.Size(v.LineCount)
}

func (s poemMUS) Skip(bs []byte) (n int, err error) {
	skips := []func([]byte) (int, error){
		PoemIDMUS.Skip,
		ord.String.Skip, ord.String.Skip, ord.String.Skip,
		linesMUS.Skip,
		ord.String.Skip, ord.String.Skip, ord.String.Skip,
		ord.Bool.Skip, ord.Bool.Skip,
		ord.String.Skip,
		varint.Int.Skip,
		ord.String.Skip, ord.String.Skip, ord.String.Skip, ord.String.Skip,
		linesMorphMUS.Skip,
		varint.Int.Skip,
	}
	var n1 int
	for _, skip := range skips {
		n1, err = skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

type checkpointMUS struct{}

func (s checkpointMUS) Marshal(v Checkpoint, bs []byte) (n int) {
	n = ord.String.Marshal(v.Name, bs)
	n += IDMUS.Marshal(v.Fingerprint, bs[n:])
	n += varint.Int.Marshal(v.PoemCount, bs[n:])
	return n + varint.Int64.Marshal(v.UpdatedAt.UnixMicro(), bs[n:])
}

func (s checkpointMUS) Unmarshal(bs []byte) (v Checkpoint, n int, err error) {
	v.Name, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Fingerprint, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.PoemCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt = time.UnixMicro(micros).UTC()
	return
}

func (s checkpointMUS) Size(v Checkpoint) (size int) {
	size = ord.String.Size(v.Name)
	size += IDMUS.Size(v.Fingerprint)
	size += varint.Int.Size(v.PoemCount)
	return size + varint.Int64.Size(v.UpdatedAt.UnixMicro())
}

func (s checkpointMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	for _, skip := range []func([]byte) (int, error){
		ord.String.Skip, IDMUS.Skip, varint.Int.Skip, varint.Int64.Skip,
	} {
		n1, err = skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

func linesPtr(lines []string) *[]string {
	if lines == nil {
		return nil
	}
	return &lines
}

func linesMorphPtr(lines [][][]MorphAnalysis) *[][][]MorphAnalysis {
	if lines == nil {
		return nil
	}
	return &lines
}
