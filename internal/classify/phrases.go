package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Phrases is the configurable vocabulary of the classifier.
// Phrases are matched as case-insensitive substrings of the normalized page text.
// RoomCount entries are regular expressions with exactly one capture group holding the count.
type Phrases struct {
	Available   []string `yaml:"available"`
	Unavailable []string `yaml:"unavailable"`
	RoomCount   []string `yaml:"room_count"`
}

// DefaultPhrases returns the built-in vocabulary. The booking site varies its
// wording and casing between requests, hence the overlapping variants.
func DefaultPhrases() Phrases {
	return Phrases{
		Available: []string{
			"amex krisflyer ascend voucher rates",
			"showing amex krisflyer",
			"showing voucher rates",
			"voucher rates",
			"voucher rate",
			"complimentary night",
			"amex krisflyer",
		},
		Unavailable: []string{
			"your selected rates are unavailable",
			"selected rates are unavailable",
			"no rooms available",
			"no rooms are available",
			"no availability",
			"rates are not available",
			"sold out",
		},
		RoomCount: []string{
			`(\d+)\s+rooms?\s+found`,
			`(\d+)\s+rooms?\s+available`,
			`found\s+(\d+)\s+rooms?`,
		},
	}
}

// PhrasesLoader reads a phrase file. Sections left empty keep their defaults.
type PhrasesLoader struct {
	filePath string
}

func NewPhrasesLoader(filePath string) *PhrasesLoader {
	return &PhrasesLoader{filePath: filePath}
}

// Load reads and parses the phrase file.
func (l *PhrasesLoader) Load() (Phrases, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return Phrases{}, fmt.Errorf("failed to read phrases file: %w", err)
	}

	var file Phrases
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Phrases{}, fmt.Errorf("failed to parse phrases yaml: %w", err)
	}

	p := DefaultPhrases()
	if len(file.Available) > 0 {
		p.Available = file.Available
	}
	if len(file.Unavailable) > 0 {
		p.Unavailable = file.Unavailable
	}
	if len(file.RoomCount) > 0 {
		p.RoomCount = file.RoomCount
	}
	return p, nil
}
