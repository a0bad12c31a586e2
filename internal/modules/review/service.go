package review

import (
	"context"

	"carmarket/internal/domain"
	"carmarket/internal/pkg/validator"
)

type Service struct {
	reviews ReviewStore
}

func NewService(reviews ReviewStore) *Service {
	return &Service{reviews: reviews}
}

// Create lets any signed-in user review any car, their own included.
func (s *Service) Create(ctx context.Context, userID int64, req CreateReviewRequest) (*domain.Review, error) {
	if userID <= 0 {
		return nil, ErrUnauthorized
	}
	if err := validator.Struct(req); err != nil {
		return nil, err
	}
	return s.reviews.Create(ctx, userID, req.CarID, req.Review, req.Rating)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Review, error) {
	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return rv, nil
}

func (s *Service) ForCar(ctx context.Context, carID int64) ([]domain.ReviewWithUser, error) {
	return s.reviews.GetWithUser(ctx, carID)
}

func (s *Service) ByUser(ctx context.Context, userID int64) ([]domain.Review, error) {
	return s.reviews.GetByUserID(ctx, userID)
}

func (s *Service) Stats(ctx context.Context, carID int64) (*domain.ReviewStats, error) {
	return s.reviews.GetStatsForCar(ctx, carID)
}

// Update checks, in order: identity, existence, authorship, then the body.
func (s *Service) Update(ctx context.Context, id, userID int64, req UpdateReviewRequest) (*domain.Review, error) {
	if _, err := s.authorize(ctx, id, userID); err != nil {
		return nil, err
	}
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	rv, err := s.reviews.Update(ctx, id, req.Review, req.Rating)
	if err != nil {
		return nil, notFound(err)
	}
	return rv, nil
}

func (s *Service) Delete(ctx context.Context, id, userID int64) (*domain.Review, error) {
	if _, err := s.authorize(ctx, id, userID); err != nil {
		return nil, err
	}

	rv, err := s.reviews.Delete(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return rv, nil
}

// authorize loads the review and compares its author with userID. A missing
// review is reported before the author check.
func (s *Service) authorize(ctx context.Context, id, userID int64) (*domain.Review, error) {
	if userID <= 0 {
		return nil, ErrUnauthorized
	}

	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if rv.UserID != userID {
		return nil, ErrForbidden
	}
	return rv, nil
}

func notFound(err error) error {
	if domain.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}
