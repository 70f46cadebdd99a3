package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Category represents a flashcard category stored in the database.
// ModelURL, when set, points at a category-specific recognition model;
// an empty value means the default general-purpose model is used.
type Category struct {
	ID          string
	Name        string
	Description string
	Color       string
	Icon        string
	AgeGroup    string
	ModelURL    string
	CreatedAt   time.Time
}

// CategoryRepository provides CRUD operations for categories.
type CategoryRepository struct {
	db *sql.DB
}

// Categories returns the category repository for this store.
func (s *Store) Categories() *CategoryRepository {
	return &CategoryRepository{db: s.db}
}

// Create inserts a new category into the database.
func (r *CategoryRepository) Create(c *Category) error {
	c.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO categories (id, name, description, color, icon, age_group, model_url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Description, c.Color, c.Icon, c.AgeGroup, c.ModelURL, c.CreatedAt,
	)
	return err
}

// GetByID retrieves a category by its ID.
func (r *CategoryRepository) GetByID(id string) (*Category, error) {
	c := &Category{}

	err := r.db.QueryRow(
		`SELECT id, name, description, color, icon, age_group, model_url, created_at
		 FROM categories WHERE id = ?`,
		id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.Icon, &c.AgeGroup, &c.ModelURL, &c.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return c, nil
}

// List retrieves all categories from the database.
func (r *CategoryRepository) List() ([]*Category, error) {
	rows, err := r.db.Query(
		`SELECT id, name, description, color, icon, age_group, model_url, created_at
		 FROM categories ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		c := &Category{}
		err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.Icon, &c.AgeGroup, &c.ModelURL, &c.CreatedAt)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// Update updates an existing category in the database.
func (r *CategoryRepository) Update(c *Category) error {
	result, err := r.db.Exec(
		`UPDATE categories SET name = ?, description = ?, color = ?, icon = ?, age_group = ?, model_url = ?
		 WHERE id = ?`,
		c.Name, c.Description, c.Color, c.Icon, c.AgeGroup, c.ModelURL, c.ID,
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

// Delete removes a category from the database by its ID.
// Flashcards in the category are removed by the cascade constraint.
func (r *CategoryRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
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
