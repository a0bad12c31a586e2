package review

import (
	"context"

	"carmarket/internal/domain"
)

// ReviewStore is the part of the review repository the service uses.
type ReviewStore interface {
	Create(ctx context.Context, userID, carID int64, text string, rating int) (*domain.Review, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Review, error)
	Update(ctx context.Context, id int64, text string, rating int) (*domain.Review, error)
	Delete(ctx context.Context, id int64) (*domain.Review, error)
	GetStatsForCar(ctx context.Context, carID int64) (*domain.ReviewStats, error)
	GetWithUser(ctx context.Context, carID int64) ([]domain.ReviewWithUser, error)
}
