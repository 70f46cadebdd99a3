package store

import "testing"

func TestCategoryRepository_Create(t *testing.T) {
	s := newTestStore(t)
	repo := s.Categories()

	category := &Category{
		ID:          "animals",
		Name:        "Animals",
		Description: "Learn about different animals and their sounds",
		Color:       "#10B981",
		Icon:        "🐾",
		AgeGroup:    "3-4 years",
		ModelURL:    "https://models.example.com/animals.onnx",
	}

	err := repo.Create(category)
	if err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	if category.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set after create")
	}

	retrieved, err := repo.GetByID("animals")
	if err != nil {
		t.Fatalf("failed to get category by ID: %v", err)
	}

	if retrieved.Name != category.Name {
		t.Errorf("Name mismatch: got %q, want %q", retrieved.Name, category.Name)
	}
	if retrieved.Color != category.Color {
		t.Errorf("Color mismatch: got %q, want %q", retrieved.Color, category.Color)
	}
	if retrieved.AgeGroup != category.AgeGroup {
		t.Errorf("AgeGroup mismatch: got %q, want %q", retrieved.AgeGroup, category.AgeGroup)
	}
	if retrieved.ModelURL != category.ModelURL {
		t.Errorf("ModelURL mismatch: got %q, want %q", retrieved.ModelURL, category.ModelURL)
	}
}

func TestCategoryRepository_Create_DuplicateName(t *testing.T) {
	s := newTestStore(t)
	repo := s.Categories()

	first := &Category{ID: "animals", Name: "Animals"}
	second := &Category{ID: "animals-2", Name: "Animals"}

	if err := repo.Create(first); err != nil {
		t.Fatalf("failed to create first category: %v", err)
	}

	// Creating a second category with the same name should fail
	if err := repo.Create(second); err == nil {
		t.Error("creating category with duplicate name should fail")
	}
}

func TestCategoryRepository_List(t *testing.T) {
	s := newTestStore(t)
	repo := s.Categories()

	categories := []*Category{
		{ID: "animals", Name: "Animals"},
		{ID: "colors", Name: "Colors"},
		{ID: "shapes", Name: "Shapes"},
	}

	for _, c := range categories {
		if err := repo.Create(c); err != nil {
			t.Fatalf("failed to create category %q: %v", c.Name, err)
		}
	}

	list, err := repo.List()
	if err != nil {
		t.Fatalf("failed to list categories: %v", err)
	}

	if len(list) != len(categories) {
		t.Errorf("expected %d categories, got %d", len(categories), len(list))
	}

	nameMap := make(map[string]bool)
	for _, c := range list {
		nameMap[c.Name] = true
	}
	for _, c := range categories {
		if !nameMap[c.Name] {
			t.Errorf("category %q not found in list", c.Name)
		}
	}
}

func TestCategoryRepository_Update(t *testing.T) {
	s := newTestStore(t)
	repo := s.Categories()

	category := &Category{ID: "animals", Name: "Animals"}
	if err := repo.Create(category); err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	category.Name = "Farm Animals"
	category.ModelURL = "https://models.example.com/farm.onnx"

	if err := repo.Update(category); err != nil {
		t.Fatalf("failed to update category: %v", err)
	}

	retrieved, err := repo.GetByID("animals")
	if err != nil {
		t.Fatalf("failed to get category after update: %v", err)
	}

	if retrieved.Name != "Farm Animals" {
		t.Errorf("Name not updated: got %q, want %q", retrieved.Name, "Farm Animals")
	}
	if retrieved.ModelURL != "https://models.example.com/farm.onnx" {
		t.Errorf("ModelURL not updated: got %q", retrieved.ModelURL)
	}
}

func TestCategoryRepository_Update_NotFound(t *testing.T) {
	s := newTestStore(t)
	repo := s.Categories()

	err := repo.Update(&Category{ID: "non-existent-id", Name: "Nothing"})
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound for non-existent category, got: %v", err)
	}
}

func TestCategoryRepository_Delete(t *testing.T) {
	s := newTestStore(t)
	repo := s.Categories()

	category := &Category{ID: "animals", Name: "Animals"}
	if err := repo.Create(category); err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	if err := repo.Delete("animals"); err != nil {
		t.Fatalf("failed to delete category: %v", err)
	}

	_, err := repo.GetByID("animals")
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got: %v", err)
	}
}

func TestCategoryRepository_Delete_NotFound(t *testing.T) {
	s := newTestStore(t)
	repo := s.Categories()

	err := repo.Delete("non-existent-id")
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound for non-existent category, got: %v", err)
	}
}

func TestCategoryRepository_Delete_CascadesFlashcards(t *testing.T) {
	s := newTestStore(t)

	category := &Category{ID: "animals", Name: "Animals"}
	if err := s.Categories().Create(category); err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	card := &Flashcard{ID: "cat", CategoryID: "animals", Title: "Cat"}
	if err := s.Flashcards().Create(card); err != nil {
		t.Fatalf("failed to create flashcard: %v", err)
	}

	if err := s.Categories().Delete("animals"); err != nil {
		t.Fatalf("failed to delete category: %v", err)
	}

	// Flashcards in the deleted category are removed by the cascade
	_, err := s.Flashcards().GetByID("cat")
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound for cascaded flashcard, got: %v", err)
	}
}
