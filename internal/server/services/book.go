package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/repomanager"
)

// BookService manages the books of an already resolved user. Every call
// takes the owner explicitly and never touches books of other owners.
type BookService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewBookService(db *sql.DB, m repomanager.RepositoryManager) *BookService {
	return &BookService{db: db, repomanager: m}
}

func (s *BookService) Create(ctx context.Context, owner *models.User, title, author string) (*models.Book, error) {
	if err := validateBook(title, author); err != nil {
		return nil, err
	}
	b, err := s.repomanager.Books(s.db).Create(ctx, &models.Book{Title: title, Author: author, OwnerID: owner.ID})
	if err != nil {
		return nil, fmt.Errorf("error creating book: %w", err)
	}
	return b, nil
}

func (s *BookService) List(ctx context.Context, owner *models.User) ([]*models.Book, error) {
	list, err := s.repomanager.Books(s.db).ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing books: %w", err)
	}
	return list, nil
}

// Update returns common.ErrorNotFound when the book is missing or belongs to someone else.
func (s *BookService) Update(ctx context.Context, owner *models.User, id int64, title, author string) (*models.Book, error) {
	if err := validateBookID(id); err != nil {
		return nil, err
	}
	if err := validateBook(title, author); err != nil {
		return nil, err
	}
	return s.repomanager.Books(s.db).Update(ctx, &models.Book{ID: id, Title: title, Author: author, OwnerID: owner.ID})
}

// Delete returns common.ErrorNotFound when the book is missing or belongs to someone else.
func (s *BookService) Delete(ctx context.Context, owner *models.User, id int64) error {
	if err := validateBookID(id); err != nil {
		return err
	}
	return s.repomanager.Books(s.db).Delete(ctx, id, owner.ID)
}

func validateBookID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: book id must be positive", common.ErrorValidation)
	}
	return nil
}

func validateBook(title, author string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if strings.TrimSpace(author) == "" {
		return fmt.Errorf("%w: author is required", common.ErrorValidation)
	}
	return nil
}
