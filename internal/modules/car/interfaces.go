package car

import (
	"context"

	"carmarket/internal/domain"
)

// CarStore is the part of the car repository the service uses.
type CarStore interface {
	CreateWithOwner(ctx context.Context, userID int64, in domain.CarInput) (*domain.Car, error)
	GetWithOwnerByID(ctx context.Context, id int64) (*domain.CarWithOwner, error)
	GetAll(ctx context.Context) ([]domain.Car, error)
	Update(ctx context.Context, id int64, in domain.CarInput) (*domain.Car, error)
	Delete(ctx context.Context, id int64) (*domain.Car, error)
	GetByMake(ctx context.Context, carMake string) ([]domain.Car, error)
	Search(ctx context.Context, term string) ([]domain.Car, error)
	GetWithReviewStats(ctx context.Context) ([]domain.CarWithStats, error)
	GetByOwnerID(ctx context.Context, userID int64) ([]domain.CarWithStats, error)
}
