package postgres

import (
	"context"
	"database/sql"

	"lifemin/internal/domain"
)

// CategoryRepo implements repository.CategoryRepository
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// CreateCategory stores a deck and fills in its creation time
func (r *CategoryRepo) CreateCategory(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (id, user_id, name, icon, color)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query,
		category.ID, category.UserID, category.Name, category.Icon, category.Color,
	).Scan(&category.CreatedAt)
}

// ListCategories returns user's decks in creation order
func (r *CategoryRepo) ListCategories(ctx context.Context, userID int64) ([]domain.Category, error) {
	query := `
		SELECT id, user_id, name, icon, color, created_at
		FROM categories
		WHERE user_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Icon, &c.Color, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// DeleteCategory removes a deck; its cards stay with no deck assigned
func (r *CategoryRepo) DeleteCategory(ctx context.Context, userID int64, categoryID string) error {
	query := `DELETE FROM categories WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, categoryID, userID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
