package store_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"quacker/internal/adapters/store"
	"quacker/internal/domain"
)

func TestMemoryStore_SaveAndFetch_PreservesInsertionOrder(t *testing.T) {
	// Arrange
	s := store.NewMemoryStore()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	// Act: timestamps deliberately descending
	for i := 0; i < 3; i++ {
		_ = s.Save(domain.Quack{ID: fmt.Sprint(i), CreatedAt: base.Add(-time.Duration(i) * time.Hour)})
	}
	result := s.Fetch()

	// Assert
	if len(result) != 3 {
		t.Fatalf("len: got %d, want 3", len(result))
	}
	for i, q := range result {
		if q.ID != fmt.Sprint(i) {
			t.Errorf("position %d: got %v, want %d", i, q.ID, i)
		}
	}
}

func TestMemoryStore_Fetch_ReturnsSnapshot(t *testing.T) {
	// Arrange
	s := store.NewMemoryStore()
	_ = s.Save(domain.Quack{ID: "1", Text: "original"})

	// Act
	snapshot := s.Fetch()
	snapshot[0].Text = "mutated"
	_ = s.Save(domain.Quack{ID: "2"})

	// Assert
	if got := s.Fetch()[0].Text; got != "original" {
		t.Errorf("stored text: got %v, want original", got)
	}
	if len(snapshot) != 1 {
		t.Errorf("snapshot len: got %d, want 1", len(snapshot))
	}
}

func TestMemoryStore_Save_KeepsDuplicates(t *testing.T) {
	// Arrange
	s := store.NewMemoryStore()
	q := domain.Quack{ID: "same", Text: "dup"}

	// Act
	_ = s.Save(q)
	_ = s.Save(q)

	// Assert
	if s.Len() != 2 {
		t.Errorf("len: got %d, want 2", s.Len())
	}
}

func TestMemoryStore_Clear_EmptiesFeed(t *testing.T) {
	// Arrange
	s := store.NewMemoryStore()
	_ = s.Save(domain.Quack{ID: "1"})

	// Act
	s.Clear()

	// Assert
	if len(s.Fetch()) != 0 {
		t.Error("expected empty feed after Clear")
	}
}

func TestMemoryStore_ConcurrentSaves_NoneLost(t *testing.T) {
	// Arrange
	s := store.NewMemoryStore()
	const n = 200
	var wg sync.WaitGroup

	// Act
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Save(domain.Quack{ID: fmt.Sprint(i)})
			_ = s.Fetch()
		}(i)
	}
	wg.Wait()

	// Assert
	seen := make(map[string]bool)
	for _, q := range s.Fetch() {
		seen[q.ID] = true
	}
	if len(seen) != n || s.Len() != n {
		t.Errorf("got %d unique of %d stored, want %d", len(seen), s.Len(), n)
	}
}
