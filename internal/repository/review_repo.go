package repository

import (
	"context"

	"gorm.io/gorm"

	"carmarket/internal/domain"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, userID, carID int64, text string, rating int) (*domain.Review, error) {
	rv := &domain.Review{
		UserID: userID,
		CarID:  carID,
		Review: text,
		Rating: rating,
	}
	if err := r.db.WithContext(ctx).Create(rv).Error; err != nil {
		return nil, storageError("reviews.create", err)
	}
	return rv, nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.WithContext(ctx).Take(&rv, id).Error; err != nil {
		return nil, lookupError("reviews.get_by_id", "review", err)
	}
	return &rv, nil
}

func (r *ReviewRepository) GetByCarID(ctx context.Context, carID int64) ([]domain.Review, error) {
	reviews := []domain.Review{}
	err := r.db.WithContext(ctx).
		Where("car_id = ?", carID).
		Order("id").
		Find(&reviews).Error
	if err != nil {
		return nil, storageError("reviews.get_by_car_id", err)
	}
	return reviews, nil
}

func (r *ReviewRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Review, error) {
	reviews := []domain.Review{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&reviews).Error
	if err != nil {
		return nil, storageError("reviews.get_by_user_id", err)
	}
	return reviews, nil
}

// Update replaces the review text and rating.
func (r *ReviewRepository) Update(ctx context.Context, id int64, text string, rating int) (*domain.Review, error) {
	var rows []domain.Review
	err := r.db.WithContext(ctx).
		Raw(`UPDATE reviews SET review = ?, rating = ? WHERE id = ? RETURNING *`, text, rating, id).
		Scan(&rows).Error
	if err != nil {
		return nil, storageError("reviews.update", err)
	}
	if len(rows) == 0 {
		return nil, domain.NotFoundError{Resource: "review"}
	}
	return &rows[0], nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) (*domain.Review, error) {
	var rows []domain.Review
	err := r.db.WithContext(ctx).Raw(`DELETE FROM reviews WHERE id = ? RETURNING *`, id).Scan(&rows).Error
	if err != nil {
		return nil, storageError("reviews.delete", err)
	}
	if len(rows) == 0 {
		return nil, domain.NotFoundError{Resource: "review"}
	}
	return &rows[0], nil
}

// GetStatsForCar averages the car's ratings; a car without reviews reports 0 and 0.
func (r *ReviewRepository) GetStatsForCar(ctx context.Context, carID int64) (*domain.ReviewStats, error) {
	var stats domain.ReviewStats
	err := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Select("CAST(COALESCE(AVG(rating), 0) AS FLOAT) AS avg_rating, COUNT(*) AS review_count").
		Where("car_id = ?", carID).
		Scan(&stats).Error
	if err != nil {
		return nil, storageError("reviews.get_stats_for_car", err)
	}
	return &stats, nil
}

// GetWithUser lists a car's reviews with each author's username.
func (r *ReviewRepository) GetWithUser(ctx context.Context, carID int64) ([]domain.ReviewWithUser, error) {
	rows := []domain.ReviewWithUser{}
	err := r.db.WithContext(ctx).
		Table("reviews").
		Select("reviews.*, users.username").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.car_id = ?", carID).
		Order("reviews.id").
		Find(&rows).Error
	if err != nil {
		return nil, storageError("reviews.get_with_user", err)
	}
	return rows, nil
}
