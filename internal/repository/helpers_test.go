package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"carmarket/internal/database/dbtest"
	"carmarket/internal/domain"
)

type fixture struct {
	db        *gorm.DB
	users     *UserRepository
	cars      *CarRepository
	favorites FavoriteRepository
	reviews   *ReviewRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	return &fixture{
		db:        db,
		users:     NewUserRepository(db),
		cars:      NewCarRepository(db),
		favorites: NewFavoriteRepository(db),
		reviews:   NewReviewRepository(db),
	}
}

func (f *fixture) user(t *testing.T, username string) *domain.User {
	t.Helper()
	u := &domain.User{Username: username, Password: "hash"}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) ownedCar(t *testing.T, owner *domain.User, carMake, model string) *domain.Car {
	t.Helper()
	car, err := f.cars.CreateWithOwner(context.Background(), owner.ID, domain.CarInput{
		Description: carMake + " " + model,
		Images:      domain.Images{"https://img.example/" + model},
		Make:        carMake,
		Model:       model,
		Year:        2020,
	})
	require.NoError(t, err)
	return car
}
