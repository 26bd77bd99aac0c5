package repository

import (
	"context"

	"adminSeeder/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Upsert(ctx context.Context, u *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ListByRole(ctx context.Context, role string) ([]models.User, error)
	Count(ctx context.Context) (int, error)
}

var _ UserRepositoryI = (*UserRepository)(nil)
