package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"quacker/internal/domain"
	"quacker/internal/usecases"
)

// seedFile is the YAML layout of a seed feed.
type seedFile struct {
	Users []struct {
		Handle      string `yaml:"handle"`
		DisplayName string `yaml:"display_name"`
		Avatar      string `yaml:"avatar"`
	} `yaml:"users"`
	Quacks []struct {
		Text   string `yaml:"text"`
		Author string `yaml:"author"`
		Offset string `yaml:"offset"` // Go duration relative to now, e.g. "-1h45m"
	} `yaml:"quacks"`
}

// SeedSet is a parsed seed feed.
type SeedSet struct {
	Users  []domain.User
	Quacks []usecases.SeedEntry
}

// LoadSeeds reads a seed feed from a YAML file, resolving offsets against now.
func LoadSeeds(filePath string, now time.Time) (SeedSet, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return SeedSet{}, err
	}
	return ParseSeeds(data, now)
}

// ParseSeeds decodes a seed feed. Every quack author must be a listed user.
func ParseSeeds(data []byte, now time.Time) (SeedSet, error) {
	var raw seedFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return SeedSet{}, fmt.Errorf("%w: %v", domain.ErrInvalidSeed, err)
	}

	var set SeedSet
	users := make(map[string]domain.User, len(raw.Users))
	for _, u := range raw.Users {
		if u.Handle == "" {
			return SeedSet{}, fmt.Errorf("%w: user without handle", domain.ErrInvalidSeed)
		}
		user := domain.User{Handle: u.Handle, DisplayName: u.DisplayName, Avatar: u.Avatar}
		users[u.Handle] = user
		set.Users = append(set.Users, user)
	}

	for i, q := range raw.Quacks {
		author, ok := users[q.Author]
		if !ok {
			return SeedSet{}, fmt.Errorf("%w: quack %d has unknown author %q", domain.ErrInvalidSeed, i, q.Author)
		}
		at := now
		if q.Offset != "" {
			d, err := time.ParseDuration(q.Offset)
			if err != nil {
				return SeedSet{}, fmt.Errorf("%w: quack %d offset: %v", domain.ErrInvalidSeed, i, err)
			}
			at = now.Add(d)
		}
		set.Quacks = append(set.Quacks, usecases.SeedEntry{Text: q.Text, At: at, Author: author})
	}

	return set, nil
}

// DemoSeedSet returns the built-in demo feed.
func DemoSeedSet(now time.Time) SeedSet {
	return SeedSet{Users: usecases.DemoUsers(), Quacks: usecases.DemoSeeds(now)}
}

// FindUser returns the user with the given handle.
func (s SeedSet) FindUser(handle string) (domain.User, bool) {
	for _, u := range s.Users {
		if u.Handle == handle {
			return u, true
		}
	}
	return domain.User{}, false
}
