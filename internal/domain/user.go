package domain

// User is an account that can list, favorite and review cars.
type User struct {
	ID       int64  `json:"id" gorm:"primaryKey"`
	Username string `json:"username"`
	Password string `json:"-"`
}

func (User) TableName() string {
	return "users"
}

// Identity is the authenticated caller attached to a request.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
