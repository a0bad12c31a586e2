package domain

// Favorite records that a user bookmarked a car.
// (user_id, car_id) is probed before insert and backed by a unique index.
type Favorite struct {
	ID     int64 `json:"id" gorm:"primaryKey"`
	UserID int64 `json:"user_id"`
	CarID  int64 `json:"car_id"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// FavoriteWithCar is a favorite expanded with the full car row.
type FavoriteWithCar struct {
	FavoriteID int64 `json:"favorite_id"`
	Car
}
