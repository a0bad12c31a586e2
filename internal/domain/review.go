package domain

// Review is a user's rating and text about a car. Only its author may change it.
type Review struct {
	ID     int64  `json:"id" gorm:"primaryKey"`
	UserID int64  `json:"user_id"`
	CarID  int64  `json:"car_id"`
	Review string `json:"review"`
	Rating int    `json:"rating"`
}

func (Review) TableName() string {
	return "reviews"
}

// ReviewWithUser adds the author's username for display.
type ReviewWithUser struct {
	Review
	Username string `json:"username"`
}

// ReviewStats aggregates the ratings of one car. Both fields are zero when there are no reviews.
type ReviewStats struct {
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int64   `json:"review_count"`
}
