package favorite

type AddFavoriteRequest struct {
	CarID int64 `json:"carId" validate:"required,gt=0"`
}
