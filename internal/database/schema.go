package database

import "gorm.io/gorm"

// Table definitions used only for migrations. Repositories read and write
// the domain types, which map onto the same columns.

type userRow struct {
	ID       int64  `gorm:"column:id;primaryKey"`
	Username string `gorm:"column:username;type:varchar(255);not null;uniqueIndex"`
	Password string `gorm:"column:password;type:varchar(255);not null"`
}

func (userRow) TableName() string { return "users" }

type carRow struct {
	ID          int64  `gorm:"column:id;primaryKey"`
	Description string `gorm:"column:description;type:text;not null"`
	Images      string `gorm:"column:images;type:text;not null;default:'[]'"`
	Make        string `gorm:"column:make;type:varchar(255);not null;index"`
	Model       string `gorm:"column:model;type:varchar(255);not null"`
	Year        int    `gorm:"column:year;not null"`
}

func (carRow) TableName() string { return "cars" }

type myCarRow struct {
	ID     int64 `gorm:"column:id;primaryKey"`
	UserID int64 `gorm:"column:user_id;not null;index"`
	CarID  int64 `gorm:"column:car_id;not null;index"`

	User userRow `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Car  carRow  `gorm:"foreignKey:CarID;references:ID;constraint:OnDelete:CASCADE"`
}

func (myCarRow) TableName() string { return "my_cars" }

type favoriteRow struct {
	ID     int64 `gorm:"column:id;primaryKey"`
	UserID int64 `gorm:"column:user_id;not null;index;uniqueIndex:idx_favorites_user_car"`
	CarID  int64 `gorm:"column:car_id;not null;index;uniqueIndex:idx_favorites_user_car"`

	User userRow `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Car  carRow  `gorm:"foreignKey:CarID;references:ID;constraint:OnDelete:CASCADE"`
}

func (favoriteRow) TableName() string { return "favorites" }

type reviewRow struct {
	ID     int64  `gorm:"column:id;primaryKey"`
	UserID int64  `gorm:"column:user_id;not null;index"`
	CarID  int64  `gorm:"column:car_id;not null;index"`
	Review string `gorm:"column:review;type:text;not null"`
	Rating int    `gorm:"column:rating;not null"`

	User userRow `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Car  carRow  `gorm:"foreignKey:CarID;references:ID;constraint:OnDelete:CASCADE"`
}

func (reviewRow) TableName() string { return "reviews" }

// Migrate creates or updates every table, parents first.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userRow{},
		&carRow{},
		&myCarRow{},
		&favoriteRow{},
		&reviewRow{},
	)
}
