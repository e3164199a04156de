package deck

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyDeck is returned when a deck file defines no slides.
var ErrEmptyDeck = errors.New("deck: no slides defined")

type deckFile struct {
	Slides []Slide `yaml:"slides"`
}

// LoadFile reads a YAML deck definition.
func LoadFile(path string) ([]Slide, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("deck: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML deck definition and validates it.
func Parse(data []byte) ([]Slide, error) {
	var file deckFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("deck: decode yaml: %w", err)
	}
	if err := Validate(file.Slides); err != nil {
		return nil, err
	}
	return file.Slides, nil
}

// Validate checks that every slide has an id and a prompt and that ids are
// unique.
func Validate(slides []Slide) error {
	if len(slides) == 0 {
		return ErrEmptyDeck
	}
	seen := make(map[string]int, len(slides))
	for i, s := range slides {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			return fmt.Errorf("deck: slide %d: id is required", i)
		}
		if strings.TrimSpace(s.Prompt) == "" {
			return fmt.Errorf("deck: slide %q: prompt is required", id)
		}
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("deck: slide %q defined twice (positions %d and %d)", id, prev, i)
		}
		seen[id] = i
	}
	return nil
}
