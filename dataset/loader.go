package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/poiesic/poetica/core"
	"github.com/poiesic/poetica/morph"
)

// Source is the raw content of a dataset document.
type Source struct {
	// Name is the base name of the file, used as the checkpoint name.
	Name        string
	Data        []byte
	Fingerprint core.ID
}

// ReadSource reads a document and fingerprints its content.
func ReadSource(path string) (*Source, error) {
	if path == "" {
		return nil, ErrPathRequired
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &Source{
		Name:        filepath.Base(path),
		Data:        data,
		Fingerprint: core.IDFromBytes(data),
	}, nil
}

// ParsePoems decodes a poems_minimal.json document.
func ParsePoems(data []byte) ([]*Record, error) {
	var records []*Record
	if err := decode(data, &records); err != nil {
		return nil, err
	}
	for i, r := range records {
		if r == nil {
			return nil, fmt.Errorf("%w: record %d is null", ErrMalformedDataset, i)
		}
	}
	return records, nil
}

// ParseLexicon decodes a lemmas.json document.
func ParseLexicon(data []byte) (morph.Lexicon, error) {
	lexicon := morph.Lexicon{}
	if err := decode(data, &lexicon); err != nil {
		return nil, err
	}
	return lexicon, nil
}

// ParseCompact decodes a poems_morphology_compact.json document.
func ParseCompact(data []byte) (morph.Compact, error) {
	compact := morph.Compact{}
	if err := decode(data, &compact); err != nil {
		return nil, err
	}
	return compact, nil
}

func decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedDataset, err)
	}
	return nil
}
