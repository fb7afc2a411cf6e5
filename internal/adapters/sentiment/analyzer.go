package sentiment

import (
	"math"
	"strings"
	"unicode"

	"quacker/internal/domain"
)

const (
	// Scores inside (-neutralBand, neutralBand) are neutral.
	neutralBand = 0.05
	// How many preceding tokens a negator reaches.
	negationWindow = 3
)

// Analyzer scores text against a fixed lexicon.
// It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	weights      map[string]float64 // signed
	negators     map[string]struct{}
	intensifiers map[string]float64
	alpha        float64
}

// NewAnalyzer creates an analyzer from a validated lexicon.
// The lexicon is copied; later changes to it have no effect.
func NewAnalyzer(lex Lexicon) *Analyzer {
	a := &Analyzer{
		weights:      make(map[string]float64, len(lex.Positive)+len(lex.Negative)),
		negators:     make(map[string]struct{}, len(lex.Negators)),
		intensifiers: make(map[string]float64, len(lex.Intensifiers)),
		alpha:        lex.Alpha,
	}
	if !inRange(a.alpha, maxAlpha) {
		a.alpha = defaultAlpha
	}
	for w, v := range lex.Positive {
		a.weights[strings.ToLower(w)] = v
	}
	for w, v := range lex.Negative {
		a.weights[strings.ToLower(w)] = -v
	}
	for _, w := range lex.Negators {
		a.negators[strings.ToLower(w)] = struct{}{}
	}
	for w, v := range lex.Intensifiers {
		a.intensifiers[strings.ToLower(w)] = v
	}
	return a
}

// Sentiment classifies text. Empty text is neutral.
func (a *Analyzer) Sentiment(text string) domain.Sentiment {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return domain.NeutralSentiment
	}

	var sum float64
	for i, tok := range tokens {
		w, ok := a.weights[tok]
		if !ok {
			continue
		}
		if i > 0 {
			if m, ok := a.intensifiers[tokens[i-1]]; ok {
				w *= m
			}
		}
		if a.negated(tokens, i) {
			w = -w
		}
		sum += w
	}

	// Hypot avoids overflowing sum*sum for long, strongly polar texts.
	score := sum / math.Hypot(sum, math.Sqrt(a.alpha))
	return classify(score)
}

func (a *Analyzer) negated(tokens []string, i int) bool {
	for j := max(0, i-negationWindow); j < i; j++ {
		if _, ok := a.negators[tokens[j]]; ok {
			return true
		}
	}
	return false
}

func classify(score float64) domain.Sentiment {
	switch {
	case score >= neutralBand:
		return domain.Sentiment{Label: domain.Positive, Score: score, Confidence: score}
	case score <= -neutralBand:
		return domain.Sentiment{Label: domain.Negative, Score: score, Confidence: -score}
	default:
		return domain.Sentiment{Label: domain.Neutral, Score: score, Confidence: 1 - math.Abs(score)/neutralBand}
	}
}

// tokenize lowercases text and splits it into words, keeping inner apostrophes.
func tokenize(text string) []string {
	text = strings.ToLower(strings.ReplaceAll(text, "’", "'"))
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	tokens := fields[:0]
	for _, f := range fields {
		if f = strings.Trim(f, "'"); f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
