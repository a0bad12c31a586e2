package car

import "carmarket/internal/domain"

// CarRequest is the full car body for both create and update; updates
// replace every field.
type CarRequest struct {
	Description string        `json:"description" validate:"required"`
	Images      domain.Images `json:"images" validate:"required"`
	Make        string        `json:"make" validate:"required,max=255"`
	Model       string        `json:"model" validate:"required,max=255"`
	Year        int           `json:"year" validate:"required,gte=1886,lte=3000"`
}

var requiredFields = []string{"description", "images", "make", "model", "year"}

func (r CarRequest) toInput() domain.CarInput {
	return domain.CarInput{
		Description: r.Description,
		Images:      r.Images,
		Make:        r.Make,
		Model:       r.Model,
		Year:        r.Year,
	}
}
