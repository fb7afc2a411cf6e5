package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"quacker/internal/domain"
	"quacker/pkg/log"
)

// CompletionFunc receives the outcome of CreateQuack.
// On success the quack is already visible through Quacks.
type CompletionFunc func(quack domain.Quack, err error)

// FeedCoordinator builds, tags and stores quacks, and exposes the feed read path.
type FeedCoordinator struct {
	store    FeedStore
	analyzer SentimentAnalyzer
	users    UserContext
	clock    clockwork.Clock
	newID    func() string
}

// Option configures a FeedCoordinator.
type Option func(*coordinatorOptions)

type coordinatorOptions struct {
	clock   clockwork.Clock
	current *domain.User
	seeds   []SeedEntry
	newID   func() string
}

// WithClock sets the clock used when CreateQuack gets a zero timestamp.
func WithClock(clock clockwork.Clock) Option {
	return func(o *coordinatorOptions) { o.clock = clock }
}

// WithCurrentUser sets the session user at construction.
func WithCurrentUser(user domain.User) Option {
	return func(o *coordinatorOptions) { o.current = &user }
}

// WithSeeds feeds the entries through CreateQuack during construction, in order.
func WithSeeds(seeds ...SeedEntry) Option {
	return func(o *coordinatorOptions) { o.seeds = append(o.seeds, seeds...) }
}

// WithIDGenerator overrides the quack ID generator.
func WithIDGenerator(newID func() string) Option {
	return func(o *coordinatorOptions) { o.newID = newID }
}

// NewFeedCoordinator creates a new FeedCoordinator.
// users may be nil; quacks then need an explicit author.
// Seeding stops at the first store failure and the error is returned.
func NewFeedCoordinator(store FeedStore, analyzer SentimentAnalyzer, users UserContext, opts ...Option) (*FeedCoordinator, error) {
	o := coordinatorOptions{
		clock: clockwork.NewRealClock(),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}

	c := &FeedCoordinator{
		store:    store,
		analyzer: analyzer,
		users:    users,
		clock:    o.clock,
		newID:    o.newID,
	}

	if o.current != nil {
		if err := c.SetCurrentUser(*o.current); err != nil {
			return nil, err
		}
	}

	for i, seed := range o.seeds {
		var seedErr error
		author := seed.Author
		c.CreateQuack(context.Background(), seed.Text, &author, seed.At, func(_ domain.Quack, err error) {
			seedErr = err
		})
		if seedErr != nil {
			return nil, fmt.Errorf("seed %d: %w", i, seedErr)
		}
	}
	if len(o.seeds) > 0 {
		log.GlobalInfo("feed seeded", "count", len(o.seeds))
	}

	return c, nil
}

// Quacks returns the feed in insertion order (oldest first).
// The slice is a snapshot; modifying it does not affect the store.
func (c *FeedCoordinator) Quacks() []domain.Quack {
	return c.store.Fetch()
}

// Count returns the number of quacks without copying the feed when the store can tell.
func (c *FeedCoordinator) Count() int {
	if l, ok := c.store.(interface{ Len() int }); ok {
		return l.Len()
	}
	return len(c.store.Fetch())
}

// CurrentUser returns the session user, or false if none is set or there is no user context.
func (c *FeedCoordinator) CurrentUser() (domain.User, bool) {
	if c.users == nil {
		return domain.User{}, false
	}
	return c.users.Current()
}

// SetCurrentUser replaces the session user.
func (c *FeedCoordinator) SetCurrentUser(user domain.User) error {
	if c.users == nil {
		return domain.ErrNoUserContext
	}
	c.users.SetCurrent(user)
	return nil
}

// CreateQuack tags text with its sentiment and appends a new quack to the feed.
// A nil author falls back to the session user; an explicit author always wins.
// A zero timestamp is replaced by the coordinator clock's current time.
// onComplete is called exactly once, after the quack is visible or with the failure.
func (c *FeedCoordinator) CreateQuack(ctx context.Context, text string, author *domain.User, at time.Time, onComplete CompletionFunc) {
	if onComplete == nil {
		onComplete = func(domain.Quack, error) {}
	}

	var user domain.User
	switch {
	case author != nil:
		user = *author
	default:
		current, ok := c.CurrentUser()
		if !ok {
			log.GlobalWarnCtx(ctx, "quack rejected", "error", domain.ErrNoAuthor)
			onComplete(domain.Quack{}, domain.ErrNoAuthor)
			return
		}
		user = current
	}

	if at.IsZero() {
		at = c.clock.Now()
	}

	quack := domain.Quack{
		ID:        c.newID(),
		Text:      text,
		CreatedAt: at,
		Sentiment: c.analyzer.Sentiment(text),
		Author:    user,
	}

	ctx = log.WithUser(ctx, user.Handle)
	if err := c.store.Save(quack); err != nil {
		log.GlobalErrorCtx(ctx, "save quack failed", "quack_id", quack.ID, "error", err)
		onComplete(domain.Quack{}, fmt.Errorf("save quack: %w", err))
		return
	}

	log.GlobalDebugCtx(ctx, "quack created", "quack_id", quack.ID, "sentiment", string(quack.Sentiment.Label))
	onComplete(quack, nil)
}

// Post is the blocking form of CreateQuack.
func (c *FeedCoordinator) Post(ctx context.Context, text string, author *domain.User, at time.Time) (domain.Quack, error) {
	var (
		created domain.Quack
		err     error
	)
	c.CreateQuack(ctx, text, author, at, func(q domain.Quack, e error) {
		created, err = q, e
	})
	return created, err
}

// Reset removes every quack from the feed. Administrative only.
func (c *FeedCoordinator) Reset(ctx context.Context) error {
	resetter, ok := c.store.(FeedResetter)
	if !ok {
		return domain.ErrResetUnsupported
	}
	resetter.Clear()
	log.GlobalWarnCtx(ctx, "feed reset")
	return nil
}

// NewestFirst returns a reversed copy of quacks for most-recent-first display.
func NewestFirst(quacks []domain.Quack) []domain.Quack {
	out := make([]domain.Quack, len(quacks))
	for i, q := range quacks {
		out[len(quacks)-1-i] = q
	}
	return out
}
