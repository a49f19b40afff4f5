package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/dbx"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO books (title, author, owner_id) VALUES (?, ?, ?)`,
		book.Title, book.Author, book.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert book: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	book.ID = id
	return book, nil
}

func (r *SQLiteRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Book, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, author, owner_id FROM books WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Book, 0)
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.OwnerID); err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		result = append(result, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate book rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, book *models.Book) (*models.Book, error) {
	updated := &models.Book{}
	err := r.db.QueryRowContext(ctx, `
		UPDATE books SET title = ?, author = ?
		WHERE id = ? AND owner_id = ?
		RETURNING id, title, author, owner_id
	`, book.Title, book.Author, book.ID, book.OwnerID).
		Scan(&updated.ID, &updated.Title, &updated.Author, &updated.OwnerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update book %d: %w", book.ID, err)
	}
	return updated, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id, ownerID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete book %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
