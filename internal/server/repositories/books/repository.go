// Package books stores catalog records. Every read and write that targets an
// existing book filters by both id and owner in the same statement, so a
// book owned by someone else is indistinguishable from a missing one.
package books

import (
	"context"

	"github.com/dmitrijs2005/bookshelf/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, book *models.Book) (*models.Book, error)
	// ListByOwner returns the owner's books in creation order.
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Book, error)
	// Update rewrites title and author; common.ErrorNotFound if no book matches id and owner.
	Update(ctx context.Context, book *models.Book) (*models.Book, error)
	// Delete removes the book; common.ErrorNotFound if no book matches id and owner.
	Delete(ctx context.Context, id, ownerID int64) error
}
