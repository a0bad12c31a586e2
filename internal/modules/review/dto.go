package review

type CreateReviewRequest struct {
	CarID  int64  `json:"carId" validate:"required,gt=0"`
	Review string `json:"review" validate:"required"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
}

// UpdateReviewRequest replaces both the text and the rating.
type UpdateReviewRequest struct {
	Review string `json:"review" validate:"required"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
}
