package store

import "testing"

func TestStore_Seed(t *testing.T) {
	s := newTestStore(t)

	if err := s.Seed(); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	categories, err := s.Categories().List()
	if err != nil {
		t.Fatalf("failed to list categories: %v", err)
	}
	if len(categories) != 4 {
		t.Errorf("expected 4 seeded categories, got %d", len(categories))
	}

	cards, err := s.Flashcards().List()
	if err != nil {
		t.Fatalf("failed to list flashcards: %v", err)
	}
	if len(cards) != 16 {
		t.Errorf("expected 16 seeded flashcards, got %d", len(cards))
	}

	cat, err := s.Flashcards().GetByID("cat")
	if err != nil {
		t.Fatalf("seeded flashcard missing: %v", err)
	}
	if cat.Title != "Cat" || cat.CategoryID != "animals" {
		t.Errorf("unexpected seeded flashcard: %+v", cat)
	}
	if cat.Pronunciation == "" || cat.SoundURL == "" {
		t.Error("seeded flashcard should carry pronunciation and sound")
	}
}

func TestStore_Seed_Idempotent(t *testing.T) {
	s := newTestStore(t)

	if err := s.Seed(); err != nil {
		t.Fatalf("first seed failed: %v", err)
	}
	if err := s.Seed(); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}

	categories, err := s.Categories().List()
	if err != nil {
		t.Fatalf("failed to list categories: %v", err)
	}
	if len(categories) != 4 {
		t.Errorf("seeding twice should not duplicate categories, got %d", len(categories))
	}
}

func TestStore_Seed_SkipsPopulatedDatabase(t *testing.T) {
	s := newTestStore(t)

	custom := &Category{ID: "custom", Name: "Custom"}
	if err := s.Categories().Create(custom); err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	if err := s.Seed(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	categories, err := s.Categories().List()
	if err != nil {
		t.Fatalf("failed to list categories: %v", err)
	}
	if len(categories) != 1 {
		t.Errorf("seed should leave a populated database alone, got %d categories", len(categories))
	}
}
