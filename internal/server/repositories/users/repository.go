// Package users holds the credential store: username plus password hash,
// with username uniqueness enforced by the database.
package users

import (
	"context"

	"github.com/dmitrijs2005/bookshelf/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills in its ID. A taken username yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByLogin yields common.ErrorNotFound when no such user exists.
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)
}
