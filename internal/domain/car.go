package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Images is an ordered list of image URLs, stored as a JSON array in a text column.
type Images []string

// UnmarshalJSON accepts a JSON array, a string holding a JSON array, or a single URL string.
func (im *Images) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*im = normalizeImages(list)
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return im.parse(raw)
}

func (im *Images) parse(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		*im = Images{}
		return nil
	}
	if !strings.HasPrefix(raw, "[") {
		*im = Images{raw}
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return err
	}
	*im = normalizeImages(list)
	return nil
}

func (im Images) Value() (driver.Value, error) {
	b, err := json.Marshal(normalizeImages(im))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (im *Images) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*im = Images{}
		return nil
	case string:
		return im.parse(v)
	case []byte:
		return im.parse(string(v))
	default:
		return fmt.Errorf("images: unsupported column type %T", src)
	}
}

func normalizeImages(list []string) Images {
	if list == nil {
		return Images{}
	}
	return Images(list)
}

// Car is a listed vehicle. Cars carry no owner column; ownership lives in my_cars.
type Car struct {
	ID          int64  `json:"id" gorm:"primaryKey"`
	Description string `json:"description"`
	Images      Images `json:"images"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	Year        int    `json:"year"`
}

func (Car) TableName() string {
	return "cars"
}

// CarInput holds every writable car field. Updates replace all of them.
type CarInput struct {
	Description string
	Images      Images
	Make        string
	Model       string
	Year        int
}

// MyCar links a user to a car they registered. The lowest id per car is the canonical owner.
type MyCar struct {
	ID     int64 `json:"id" gorm:"primaryKey"`
	UserID int64 `json:"user_id"`
	CarID  int64 `json:"car_id"`
}

func (MyCar) TableName() string {
	return "my_cars"
}

// CarWithOwner is a car joined with its canonical owner, if any.
type CarWithOwner struct {
	Car
	OwnerID       *int64  `json:"owner_id"`
	OwnerUsername *string `json:"owner_username"`
}

// CarWithStats is a car with its aggregated review numbers.
type CarWithStats struct {
	Car
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int64   `json:"review_count"`
}
