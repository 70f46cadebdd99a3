package store

import (
	"database/sql"
	"errors"
	"time"
)

// Difficulty grades how hard a flashcard is for the target age group.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Flashcard represents a single vocabulary item stored in the database.
type Flashcard struct {
	ID            string
	CategoryID    string
	Title         string
	Description   string
	ImageURL      string
	SoundURL      string
	Pronunciation string
	Difficulty    Difficulty
	CreatedAt     time.Time
}

// FlashcardRepository provides CRUD operations for flashcards.
type FlashcardRepository struct {
	db *sql.DB
}

// Flashcards returns the flashcard repository for this store.
func (s *Store) Flashcards() *FlashcardRepository {
	return &FlashcardRepository{db: s.db}
}

const flashcardColumns = `id, category_id, title, description, image_url, sound_url, pronunciation, difficulty, created_at`

func scanFlashcard(scan func(dest ...any) error) (*Flashcard, error) {
	f := &Flashcard{}
	var difficulty string
	err := scan(&f.ID, &f.CategoryID, &f.Title, &f.Description, &f.ImageURL,
		&f.SoundURL, &f.Pronunciation, &difficulty, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	f.Difficulty = Difficulty(difficulty)
	return f, nil
}

// Create inserts a new flashcard into the database.
func (r *FlashcardRepository) Create(f *Flashcard) error {
	f.CreatedAt = time.Now()
	if f.Difficulty == "" {
		f.Difficulty = DifficultyEasy
	}

	_, err := r.db.Exec(
		`INSERT INTO flashcards (`+flashcardColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.CategoryID, f.Title, f.Description, f.ImageURL,
		f.SoundURL, f.Pronunciation, string(f.Difficulty), f.CreatedAt,
	)
	return err
}

// GetByID retrieves a flashcard by its ID.
func (r *FlashcardRepository) GetByID(id string) (*Flashcard, error) {
	f, err := scanFlashcard(r.db.QueryRow(
		`SELECT `+flashcardColumns+` FROM flashcards WHERE id = ?`, id,
	).Scan)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return f, nil
}

// List retrieves all flashcards from the database.
func (r *FlashcardRepository) List() ([]*Flashcard, error) {
	return r.query(`SELECT ` + flashcardColumns + ` FROM flashcards ORDER BY created_at ASC`)
}

// ListByCategory retrieves all flashcards in the given category.
func (r *FlashcardRepository) ListByCategory(categoryID string) ([]*Flashcard, error) {
	return r.query(
		`SELECT `+flashcardColumns+` FROM flashcards WHERE category_id = ? ORDER BY created_at ASC`,
		categoryID,
	)
}

func (r *FlashcardRepository) query(q string, args ...any) ([]*Flashcard, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []*Flashcard
	for rows.Next() {
		f, err := scanFlashcard(rows.Scan)
		if err != nil {
			return nil, err
		}
		cards = append(cards, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cards, nil
}

// Update updates an existing flashcard in the database.
func (r *FlashcardRepository) Update(f *Flashcard) error {
	result, err := r.db.Exec(
		`UPDATE flashcards SET category_id = ?, title = ?, description = ?, image_url = ?,
		 sound_url = ?, pronunciation = ?, difficulty = ? WHERE id = ?`,
		f.CategoryID, f.Title, f.Description, f.ImageURL,
		f.SoundURL, f.Pronunciation, string(f.Difficulty), f.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a flashcard from the database by its ID.
func (r *FlashcardRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM flashcards WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
