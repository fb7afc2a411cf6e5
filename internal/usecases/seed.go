package usecases

import (
	"time"

	"quacker/internal/domain"
)

// SeedEntry is a quack fed through CreateQuack when the coordinator starts.
type SeedEntry struct {
	Text   string
	At     time.Time
	Author domain.User
}

// Demo personas used by the built-in feed.
var (
	Robot  = domain.User{Handle: "robot", DisplayName: "Robot", Avatar: "🤖"}
	Alien  = domain.User{Handle: "alien", DisplayName: "Alien", Avatar: "👽"}
	Monkey = domain.User{Handle: "monkey", DisplayName: "Monkey", Avatar: "🐵"}
	Skull  = domain.User{Handle: "skull", DisplayName: "Skull", Avatar: "💀"}
)

// DemoUsers lists the demo personas.
func DemoUsers() []domain.User {
	return []domain.User{Robot, Alien, Monkey, Skull}
}

// DemoSeeds returns the demo feed with timestamps relative to now.
// Entries are listed in insertion order, which is not timestamp order.
func DemoSeeds(now time.Time) []SeedEntry {
	return []SeedEntry{
		{
			Text:   "Wishing a Happy St. Patrick's Day to everyone celebrating around the world, especially our family in Ireland. We're so proud to call Cork our home. Sláinte! ☘️",
			At:     now.Add(-6321 * time.Second),
			Author: Robot,
		},
		{
			Text:   "His vision is reflected all around us at the park. He would have loved it here, in this place he dreamed up. We miss him today on his birthday, and every day.",
			At:     now.Add(-8160 * time.Second),
			Author: Alien,
		},
		{
			Text:   "100 years ago today the Grand Canyon became a national park. It is a source of wonder and inspiration, one of America's greatest treasures.",
			At:     now.Add(-506 * time.Second),
			Author: Monkey,
		},
		{
			Text:   "Poopy-di scoop",
			At:     now.Add(-2500 * time.Second),
			Author: Skull,
		},
	}
}
