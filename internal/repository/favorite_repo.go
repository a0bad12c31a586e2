package repository

import (
	"context"

	"gorm.io/gorm"

	"carmarket/internal/domain"
)

// FavoriteRepository defines the favorites data access.
type FavoriteRepository interface {
	Add(ctx context.Context, userID, carID int64) (*domain.Favorite, error)
	GetAll(ctx context.Context) ([]domain.Favorite, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Favorite, error)
	Remove(ctx context.Context, id int64) (*domain.Favorite, error)
	RemoveForUser(ctx context.Context, id, userID int64) (*domain.Favorite, error)
	IsFavorite(ctx context.Context, userID, carID int64) (bool, error)
	GetWithCars(ctx context.Context, userID int64) ([]domain.FavoriteWithCar, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add inserts the favorite. Callers probe IsFavorite first; the unique
// index on (user_id, car_id) catches what slips between probe and insert.
func (r *favoriteRepository) Add(ctx context.Context, userID, carID int64) (*domain.Favorite, error) {
	favorite := &domain.Favorite{UserID: userID, CarID: carID}
	if err := r.db.WithContext(ctx).Create(favorite).Error; err != nil {
		return nil, storageError("favorites.add", err)
	}
	return favorite, nil
}

func (r *favoriteRepository) GetAll(ctx context.Context) ([]domain.Favorite, error) {
	favorites := []domain.Favorite{}
	if err := r.db.WithContext(ctx).Order("id").Find(&favorites).Error; err != nil {
		return nil, storageError("favorites.get_all", err)
	}
	return favorites, nil
}

func (r *favoriteRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	favorites := []domain.Favorite{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&favorites).Error
	if err != nil {
		return nil, storageError("favorites.get_by_user_id", err)
	}
	return favorites, nil
}

// Remove deletes a favorite by id regardless of who owns it.
func (r *favoriteRepository) Remove(ctx context.Context, id int64) (*domain.Favorite, error) {
	var rows []domain.Favorite
	err := r.db.WithContext(ctx).Raw(`DELETE FROM favorites WHERE id = ? RETURNING *`, id).Scan(&rows).Error
	if err != nil {
		return nil, storageError("favorites.remove", err)
	}
	if len(rows) == 0 {
		return nil, domain.NotFoundError{Resource: "favorite"}
	}
	return &rows[0], nil
}

// RemoveForUser deletes the favorite only when it belongs to userID, so a
// guessed id cannot remove someone else's favorite.
func (r *favoriteRepository) RemoveForUser(ctx context.Context, id, userID int64) (*domain.Favorite, error) {
	var rows []domain.Favorite
	err := r.db.WithContext(ctx).
		Raw(`DELETE FROM favorites WHERE id = ? AND user_id = ? RETURNING *`, id, userID).
		Scan(&rows).Error
	if err != nil {
		return nil, storageError("favorites.remove_for_user", err)
	}
	if len(rows) == 0 {
		return nil, domain.NotFoundError{Resource: "favorite"}
	}
	return &rows[0], nil
}

// IsFavorite is the existence probe used before Add.
func (r *favoriteRepository) IsFavorite(ctx context.Context, userID, carID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Where("user_id = ? AND car_id = ?", userID, carID).
		Count(&count).Error
	if err != nil {
		return false, storageError("favorites.is_favorite", err)
	}
	return count > 0, nil
}

// GetWithCars joins the user's favorites with their cars, oldest favorite first.
func (r *favoriteRepository) GetWithCars(ctx context.Context, userID int64) ([]domain.FavoriteWithCar, error) {
	rows := []domain.FavoriteWithCar{}
	err := r.db.WithContext(ctx).
		Table("favorites").
		Select("favorites.id AS favorite_id, cars.*").
		Joins("JOIN cars ON cars.id = favorites.car_id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.id").
		Find(&rows).Error
	if err != nil {
		return nil, storageError("favorites.get_with_cars", err)
	}
	return rows, nil
}
