package usecases

import "quacker/internal/domain"

// SentimentAnalyzer classifies text polarity.
// Implementations must be deterministic and safe for concurrent use.
type SentimentAnalyzer interface {
	Sentiment(text string) domain.Sentiment
}

// AnalyzerFunc adapts a plain function to SentimentAnalyzer.
type AnalyzerFunc func(text string) domain.Sentiment

// Sentiment calls f(text).
func (f AnalyzerFunc) Sentiment(text string) domain.Sentiment {
	return f(text)
}

// FeedStore defines the interface for storing quacks in insertion order.
type FeedStore interface {
	// Save appends a quack. A nil error means the quack is visible to Fetch.
	Save(quack domain.Quack) error
	// Fetch returns a snapshot of all quacks, oldest first.
	Fetch() []domain.Quack
}

// FeedResetter is implemented by stores that support the administrative reset.
type FeedResetter interface {
	Clear()
}

// UserContext holds the session's current user.
type UserContext interface {
	SetCurrent(user domain.User)
	Current() (domain.User, bool)
}
