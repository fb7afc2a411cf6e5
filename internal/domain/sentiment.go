package domain

// SentimentLabel is the polarity class of a piece of text.
type SentimentLabel string

const (
	Positive SentimentLabel = "positive"
	Neutral  SentimentLabel = "neutral"
	Negative SentimentLabel = "negative"
)

// Sentiment is the result of analyzing a text.
type Sentiment struct {
	Label      SentimentLabel
	Score      float64 // Normalized polarity in (-1, 1)
	Confidence float64 // 0..1
}

// NeutralSentiment is the classification given to empty or unmatched text.
var NeutralSentiment = Sentiment{Label: Neutral, Confidence: 1}

// Emoji returns the badge shown for the label in the feed.
func (l SentimentLabel) Emoji() string {
	switch l {
	case Positive:
		return "😀"
	case Negative:
		return "😠"
	default:
		return "😐"
	}
}
