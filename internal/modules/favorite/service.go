package favorite

import (
	"context"

	"carmarket/internal/domain"
	"carmarket/internal/pkg/validator"
	"carmarket/internal/repository"
)

type Service struct {
	favorites repository.FavoriteRepository
}

func NewService(favorites repository.FavoriteRepository) *Service {
	return &Service{favorites: favorites}
}

// Add favorites the car for userID. The probe and the insert are separate
// statements; a concurrent duplicate is rejected by the unique index instead.
func (s *Service) Add(ctx context.Context, userID int64, req AddFavoriteRequest) (*domain.Favorite, error) {
	if userID <= 0 {
		return nil, ErrUnauthorized
	}
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	exists, err := s.favorites.IsFavorite(ctx, userID, req.CarID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyFavorited
	}

	return s.favorites.Add(ctx, userID, req.CarID)
}

func (s *Service) Mine(ctx context.Context, userID int64) ([]domain.FavoriteWithCar, error) {
	if userID <= 0 {
		return nil, ErrUnauthorized
	}
	return s.favorites.GetWithCars(ctx, userID)
}

// Remove deletes the favorite only if it belongs to userID; anything else is not found.
func (s *Service) Remove(ctx context.Context, id, userID int64) (*domain.Favorite, error) {
	if userID <= 0 {
		return nil, ErrUnauthorized
	}

	fav, err := s.favorites.RemoveForUser(ctx, id, userID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return fav, nil
}
