// Package users provides persistence for user accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/authgate/internal/server/models"
)

// Repository is the storage contract for accounts. Create must perform the
// uniqueness check and the insert as one atomic unit: when two concurrent
// calls carry the same username or email, exactly one succeeds and the other
// gets common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
