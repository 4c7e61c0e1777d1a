// Package users contains the user store abstraction and its MongoDB,
// PostgreSQL and in-memory implementations.
package users

import (
	"context"

	"github.com/dmitrijs2005/userkeeper/internal/server/models"
)

// Repository persists user records. Lookups of absent records return
// common.ErrorNotFound; writes that would duplicate an email return
// common.ErrAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByMobile(ctx context.Context, mobile string) (*models.User, error)
	// List returns every user, most recently created first.
	List(ctx context.Context) ([]*models.User, error)
	// Update overwrites name, email, mobile and password of user.ID.
	Update(ctx context.Context, user *models.User) error
	SetToken(ctx context.Context, id, token string) error
	SetStatus(ctx context.Context, id string, status bool) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
