// Package domain contains the core business entities and rules.
package domain

import "time"

// User is the author identity attached to quacks.
// Users are compared by value; two users with the same fields are the same user.
type User struct {
	Handle      string
	DisplayName string
	Avatar      string // Emoji or image URL shown next to the handle
}

// Name returns the display name, falling back to the handle.
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Handle
}

// Quack represents a single short text post.
// Quacks are immutable once built by the feed coordinator.
type Quack struct {
	ID        string
	Text      string
	CreatedAt time.Time
	Sentiment Sentiment
	Author    User
}
