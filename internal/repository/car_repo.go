package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"carmarket/internal/domain"
)

const carStatsColumns = "cars.*, CAST(COALESCE(AVG(reviews.rating), 0) AS FLOAT) AS avg_rating, COUNT(reviews.id) AS review_count"

type CarRepository struct {
	db *gorm.DB
}

func NewCarRepository(db *gorm.DB) *CarRepository {
	return &CarRepository{db: db}
}

func carFromInput(in domain.CarInput) domain.Car {
	images := in.Images
	if images == nil {
		images = domain.Images{}
	}
	return domain.Car{
		Description: in.Description,
		Images:      images,
		Make:        in.Make,
		Model:       in.Model,
		Year:        in.Year,
	}
}

// Create inserts a car without an owner.
func (r *CarRepository) Create(ctx context.Context, in domain.CarInput) (*domain.Car, error) {
	car := carFromInput(in)
	if err := r.db.WithContext(ctx).Create(&car).Error; err != nil {
		return nil, storageError("cars.create", err)
	}
	return &car, nil
}

// CreateWithOwner inserts the car and its ownership link in one transaction.
// Either both rows exist afterwards or neither does.
func (r *CarRepository) CreateWithOwner(ctx context.Context, userID int64, in domain.CarInput) (*domain.Car, error) {
	car := carFromInput(in)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&car).Error; err != nil {
			return err
		}
		link := domain.MyCar{UserID: userID, CarID: car.ID}
		return tx.Create(&link).Error
	})
	if err != nil {
		return nil, storageError("cars.create_with_owner", err)
	}
	return &car, nil
}

func (r *CarRepository) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	var car domain.Car
	if err := r.db.WithContext(ctx).Take(&car, id).Error; err != nil {
		return nil, lookupError("cars.get_by_id", "car", err)
	}
	return &car, nil
}

// GetWithOwnerByID returns the car and its canonical owner: the user behind
// the lowest my_cars id. Owner fields are nil when the car has no link.
func (r *CarRepository) GetWithOwnerByID(ctx context.Context, id int64) (*domain.CarWithOwner, error) {
	var rows []domain.CarWithOwner
	err := r.db.WithContext(ctx).
		Table("cars").
		Select("cars.*, users.id AS owner_id, users.username AS owner_username").
		Joins("LEFT JOIN my_cars ON my_cars.id = (SELECT MIN(mc.id) FROM my_cars mc WHERE mc.car_id = cars.id)").
		Joins("LEFT JOIN users ON users.id = my_cars.user_id").
		Where("cars.id = ?", id).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, storageError("cars.get_with_owner_by_id", err)
	}
	if len(rows) == 0 {
		return nil, domain.NotFoundError{Resource: "car"}
	}
	return &rows[0], nil
}

func (r *CarRepository) GetAll(ctx context.Context) ([]domain.Car, error) {
	cars := []domain.Car{}
	if err := r.db.WithContext(ctx).Order("id").Find(&cars).Error; err != nil {
		return nil, storageError("cars.get_all", err)
	}
	return cars, nil
}

// Update replaces every writable field of the car.
func (r *CarRepository) Update(ctx context.Context, id int64, in domain.CarInput) (*domain.Car, error) {
	car := carFromInput(in)

	var rows []domain.Car
	err := r.db.WithContext(ctx).Raw(`
		UPDATE cars
		SET description = ?,
		    images = ?,
		    make = ?,
		    model = ?,
		    year = ?
		WHERE id = ?
		RETURNING *`,
		car.Description, car.Images, car.Make, car.Model, car.Year, id,
	).Scan(&rows).Error
	if err != nil {
		return nil, storageError("cars.update", err)
	}
	if len(rows) == 0 {
		return nil, domain.NotFoundError{Resource: "car"}
	}
	return &rows[0], nil
}

// Delete removes the car and returns the deleted row.
func (r *CarRepository) Delete(ctx context.Context, id int64) (*domain.Car, error) {
	var rows []domain.Car
	err := r.db.WithContext(ctx).Raw(`DELETE FROM cars WHERE id = ? RETURNING *`, id).Scan(&rows).Error
	if err != nil {
		return nil, storageError("cars.delete", err)
	}
	if len(rows) == 0 {
		return nil, domain.NotFoundError{Resource: "car"}
	}
	return &rows[0], nil
}

// GetByMake matches the make exactly, ignoring case.
func (r *CarRepository) GetByMake(ctx context.Context, carMake string) ([]domain.Car, error) {
	cars := []domain.Car{}
	err := r.db.WithContext(ctx).
		Where("LOWER(make) = LOWER(?)", carMake).
		Order("id").
		Find(&cars).Error
	if err != nil {
		return nil, storageError("cars.get_by_make", err)
	}
	return cars, nil
}

// Search matches term as a case-insensitive substring of make, model or description.
func (r *CarRepository) Search(ctx context.Context, term string) ([]domain.Car, error) {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"

	cars := []domain.Car{}
	err := r.db.WithContext(ctx).
		Where(`LOWER(make) LIKE ? ESCAPE '\' OR LOWER(model) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, pattern, pattern, pattern).
		Order("id").
		Find(&cars).Error
	if err != nil {
		return nil, storageError("cars.search", err)
	}
	return cars, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// GetWithReviewStats lists every car with its average rating and review count.
func (r *CarRepository) GetWithReviewStats(ctx context.Context) ([]domain.CarWithStats, error) {
	rows := []domain.CarWithStats{}
	err := r.db.WithContext(ctx).
		Table("cars").
		Select(carStatsColumns).
		Joins("LEFT JOIN reviews ON reviews.car_id = cars.id").
		Group("cars.id").
		Order("cars.id").
		Find(&rows).Error
	if err != nil {
		return nil, storageError("cars.get_with_review_stats", err)
	}
	return rows, nil
}

// GetByOwnerID lists the user's cars, most recently linked first.
func (r *CarRepository) GetByOwnerID(ctx context.Context, userID int64) ([]domain.CarWithStats, error) {
	rows := []domain.CarWithStats{}
	err := r.db.WithContext(ctx).
		Table("my_cars").
		Select(carStatsColumns).
		Joins("JOIN cars ON cars.id = my_cars.car_id").
		Joins("LEFT JOIN reviews ON reviews.car_id = cars.id").
		Where("my_cars.user_id = ?", userID).
		Group("my_cars.id, cars.id").
		Order("my_cars.id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, storageError("cars.get_by_owner_id", err)
	}
	return rows, nil
}

// GetMyCars returns the ownership links between the user and the car.
func (r *CarRepository) GetMyCars(ctx context.Context, userID, carID int64) ([]domain.MyCar, error) {
	links := []domain.MyCar{}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND car_id = ?", userID, carID).
		Order("id").
		Find(&links).Error
	if err != nil {
		return nil, storageError("cars.get_my_cars", err)
	}
	return links, nil
}

// IsOwner reports whether the user has an ownership link for the car.
func (r *CarRepository) IsOwner(ctx context.Context, userID, carID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.MyCar{}).
		Where("user_id = ? AND car_id = ?", userID, carID).
		Count(&count).Error
	if err != nil {
		return false, storageError("cars.is_owner", err)
	}
	return count > 0, nil
}
