package domain

import "errors"

var (
	// ErrNoAuthor is returned when a quack has no explicit author and no session user is set.
	ErrNoAuthor = errors.New("quack has no author")

	// ErrStoreUnavailable is returned when a feed store cannot accept writes.
	ErrStoreUnavailable = errors.New("feed store unavailable")

	// ErrResetUnsupported is returned when the feed store has no reset operation.
	ErrResetUnsupported = errors.New("feed store does not support reset")

	// ErrInvalidLexicon is returned when a sentiment lexicon fails validation.
	ErrInvalidLexicon = errors.New("invalid sentiment lexicon")

	// ErrInvalidSeed is returned when a seed file entry is malformed.
	ErrInvalidSeed = errors.New("invalid seed entry")

	// ErrRateLimited is returned when a client posts too quickly.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrNoUserContext is returned when session operations run on a coordinator without a user context.
	ErrNoUserContext = errors.New("no user context configured")
)
