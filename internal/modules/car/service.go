package car

import (
	"context"

	"carmarket/internal/domain"
	"carmarket/internal/pkg/validator"
)

type Service struct {
	cars CarStore
}

func NewService(cars CarStore) *Service {
	return &Service{cars: cars}
}

func (s *Service) List(ctx context.Context) ([]domain.Car, error) {
	return s.cars.GetAll(ctx)
}

func (s *Service) ListWithStats(ctx context.Context) ([]domain.CarWithStats, error) {
	return s.cars.GetWithReviewStats(ctx)
}

func (s *Service) Search(ctx context.Context, term string) ([]domain.Car, error) {
	return s.cars.Search(ctx, term)
}

func (s *Service) ByMake(ctx context.Context, carMake string) ([]domain.Car, error) {
	return s.cars.GetByMake(ctx, carMake)
}

// Mine lists the caller's cars with review stats, newest first.
func (s *Service) Mine(ctx context.Context, userID int64) ([]domain.CarWithStats, error) {
	if userID <= 0 {
		return nil, ErrUnauthorized
	}
	return s.cars.GetByOwnerID(ctx, userID)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.CarWithOwner, error) {
	car, err := s.cars.GetWithOwnerByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return car, nil
}

// Create stores the car and links it to userID in one transaction.
func (s *Service) Create(ctx context.Context, userID int64, req CarRequest) (*domain.Car, error) {
	if userID <= 0 {
		return nil, ErrUnauthorized
	}
	if err := validator.Struct(req); err != nil {
		return nil, err
	}
	return s.cars.CreateWithOwner(ctx, userID, req.toInput())
}

// Update replaces the car. Ownership is checked by the route before this runs.
func (s *Service) Update(ctx context.Context, id int64, req CarRequest) (*domain.Car, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}
	car, err := s.cars.Update(ctx, id, req.toInput())
	if err != nil {
		return nil, notFound(err)
	}
	return car, nil
}

// Delete removes the car. Ownership is checked by the route before this runs.
func (s *Service) Delete(ctx context.Context, id int64) (*domain.Car, error) {
	car, err := s.cars.Delete(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return car, nil
}

func notFound(err error) error {
	if domain.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}
