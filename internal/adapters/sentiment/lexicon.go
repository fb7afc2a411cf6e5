// Package sentiment provides a lexicon-based sentiment analyzer.
package sentiment

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"quacker/internal/domain"
)

//go:embed default_lexicon.yaml
var defaultLexiconYAML []byte

const (
	defaultAlpha = 15.0

	// Upper bounds keep scores finite and meaningful.
	maxWeight     = 100.0
	maxMultiplier = 10.0
	maxAlpha      = 1e6
)

// Lexicon holds the word weights used by the analyzer.
type Lexicon struct {
	Alpha        float64            `yaml:"alpha"`
	Positive     map[string]float64 `yaml:"positive"`
	Negative     map[string]float64 `yaml:"negative"`
	Negators     []string           `yaml:"negators"`
	Intensifiers map[string]float64 `yaml:"intensifiers"`
}

// DefaultLexicon returns the embedded lexicon.
func DefaultLexicon() Lexicon {
	lex, err := ParseLexicon(defaultLexiconYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded lexicon: %v", err))
	}
	return lex
}

// LoadLexicon reads a lexicon from a YAML file.
func LoadLexicon(filePath string) (Lexicon, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Lexicon{}, err
	}
	return ParseLexicon(data)
}

// ParseLexicon decodes and validates a YAML lexicon.
func ParseLexicon(data []byte) (Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return Lexicon{}, fmt.Errorf("%w: %v", domain.ErrInvalidLexicon, err)
	}
	if err := lex.Validate(); err != nil {
		return Lexicon{}, err
	}
	return lex, nil
}

// Validate checks weights and word overlap. A zero alpha selects the default.
// Every number must be finite and within its bound.
func (l *Lexicon) Validate() error {
	if l.Alpha == 0 {
		l.Alpha = defaultAlpha
	}
	if !inRange(l.Alpha, maxAlpha) {
		return fmt.Errorf("%w: alpha must be in (0, %g]", domain.ErrInvalidLexicon, maxAlpha)
	}
	for word, w := range l.Positive {
		if !inRange(w, maxWeight) {
			return fmt.Errorf("%w: positive weight for %q must be in (0, %g]", domain.ErrInvalidLexicon, word, maxWeight)
		}
		if _, dup := l.Negative[word]; dup {
			return fmt.Errorf("%w: %q is both positive and negative", domain.ErrInvalidLexicon, word)
		}
	}
	for word, w := range l.Negative {
		if !inRange(w, maxWeight) {
			return fmt.Errorf("%w: negative weight for %q must be in (0, %g]", domain.ErrInvalidLexicon, word, maxWeight)
		}
	}
	for word, m := range l.Intensifiers {
		if !inRange(m, maxMultiplier) {
			return fmt.Errorf("%w: intensifier %q must be in (0, %g]", domain.ErrInvalidLexicon, word, maxMultiplier)
		}
	}
	return nil
}

// inRange reports whether x is finite and in (0, upper]. NaN fails every comparison.
func inRange(x, upper float64) bool {
	return !math.IsInf(x, 0) && x > 0 && x <= upper
}
