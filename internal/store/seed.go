package store

import "log"

// Seed populates the database with the starter catalog when it is empty.
// An already-populated database is left untouched.
func (s *Store) Seed() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("seeding starter catalog")

	categories := []*Category{
		{ID: "animals", Name: "Animals", Description: "Learn about different animals and their sounds", Color: "#10B981", Icon: "🐾", AgeGroup: "3-4 years"},
		{ID: "colors", Name: "Colors", Description: "Discover beautiful colors around us", Color: "#8B5CF6", Icon: "🎨", AgeGroup: "3-4 years"},
		{ID: "shapes", Name: "Shapes", Description: "Learn basic shapes and geometry", Color: "#F59E0B", Icon: "🔷", AgeGroup: "3-4 years"},
		{ID: "numbers", Name: "Numbers", Description: "Count and learn numbers 1-10", Color: "#EF4444", Icon: "🔢", AgeGroup: "3-4 years"},
	}

	flashcards := []*Flashcard{
		{ID: "cat", CategoryID: "animals", Title: "Cat", Description: "A cute furry pet that says meow", SoundURL: "/sounds/cat-meow.mp3", Pronunciation: "kat"},
		{ID: "dog", CategoryID: "animals", Title: "Dog", Description: "A loyal friend that says woof", SoundURL: "/sounds/dog-bark.mp3", Pronunciation: "dawg"},
		{ID: "cow", CategoryID: "animals", Title: "Cow", Description: "A farm animal that says moo", SoundURL: "/sounds/cow-moo.mp3", Pronunciation: "kow"},
		{ID: "duck", CategoryID: "animals", Title: "Duck", Description: "A water bird that says quack", SoundURL: "/sounds/duck-quack.mp3", Pronunciation: "duhk"},
		{ID: "red", CategoryID: "colors", Title: "Red", Description: "The color of apples and fire trucks", SoundURL: "/sounds/red.mp3", Pronunciation: "red"},
		{ID: "blue", CategoryID: "colors", Title: "Blue", Description: "The color of the sky and ocean", SoundURL: "/sounds/blue.mp3", Pronunciation: "bloo"},
		{ID: "yellow", CategoryID: "colors", Title: "Yellow", Description: "The color of the sun and bananas", SoundURL: "/sounds/yellow.mp3", Pronunciation: "yel-oh"},
		{ID: "green", CategoryID: "colors", Title: "Green", Description: "The color of grass and leaves", SoundURL: "/sounds/green.mp3", Pronunciation: "green"},
		{ID: "circle", CategoryID: "shapes", Title: "Circle", Description: "A round shape with no corners", SoundURL: "/sounds/circle.mp3", Pronunciation: "sur-kul"},
		{ID: "square", CategoryID: "shapes", Title: "Square", Description: "A shape with four equal sides", SoundURL: "/sounds/square.mp3", Pronunciation: "skwair"},
		{ID: "triangle", CategoryID: "shapes", Title: "Triangle", Description: "A shape with three sides", SoundURL: "/sounds/triangle.mp3", Pronunciation: "try-ang-gul"},
		{ID: "star", CategoryID: "shapes", Title: "Star", Description: "A shape with five points", SoundURL: "/sounds/star.mp3", Pronunciation: "star"},
		{ID: "one", CategoryID: "numbers", Title: "One", Description: "The number 1", SoundURL: "/sounds/one.mp3", Pronunciation: "wuhn"},
		{ID: "two", CategoryID: "numbers", Title: "Two", Description: "The number 2", SoundURL: "/sounds/two.mp3", Pronunciation: "too"},
		{ID: "three", CategoryID: "numbers", Title: "Three", Description: "The number 3", SoundURL: "/sounds/three.mp3", Pronunciation: "three"},
		{ID: "four", CategoryID: "numbers", Title: "Four", Description: "The number 4", SoundURL: "/sounds/four.mp3", Pronunciation: "for"},
	}

	catRepo := s.Categories()
	for _, c := range categories {
		if err := catRepo.Create(c); err != nil {
			return err
		}
	}

	cardRepo := s.Flashcards()
	for _, f := range flashcards {
		if err := cardRepo.Create(f); err != nil {
			return err
		}
	}

	return nil
}
