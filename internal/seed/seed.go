// Package seed fills an empty store with demo users, cars, favorites and reviews.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"carmarket/internal/domain"
	"carmarket/internal/modules/auth"
	"carmarket/internal/repository"
)

type Credential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Credentials struct {
	Credentials []Credential `json:"credentials"`
}

type demoCar struct {
	owner int
	input domain.CarInput
}

var demoUsers = []Credential{
	{Username: "alice", Password: "password123"},
	{Username: "bob", Password: "secret"},
}

var demoCars = []demoCar{
	{owner: 0, input: domain.CarInput{
		Description: "A reliable compact",
		Images:      domain.Images{"https://picsum.photos/seed/car1/800/600"},
		Make:        "Toyota",
		Model:       "Corolla",
		Year:        2020,
	}},
	{owner: 1, input: domain.CarInput{
		Description: "Sporty and fun",
		Images:      domain.Images{"https://picsum.photos/seed/car2/800/600", "https://picsum.photos/seed/car2b/800/600"},
		Make:        "Honda",
		Model:       "Civic",
		Year:        2018,
	}},
}

// Run seeds db when it has no users. It reports false, with nil
// credentials, when the store already had data.
func Run(ctx context.Context, db *gorm.DB) (*Credentials, bool, error) {
	users := repository.NewUserRepository(db)
	cars := repository.NewCarRepository(db)
	favorites := repository.NewFavoriteRepository(db)
	reviews := repository.NewReviewRepository(db)

	count, err := users.Count(ctx)
	if err != nil {
		return nil, false, err
	}
	if count > 0 {
		return nil, false, nil
	}

	created := make([]*domain.User, 0, len(demoUsers))
	for _, cred := range demoUsers {
		hash, err := auth.HashPassword(cred.Password)
		if err != nil {
			return nil, false, err
		}
		u := &domain.User{Username: cred.Username, Password: hash}
		if err := users.Create(ctx, u); err != nil {
			return nil, false, err
		}
		created = append(created, u)
	}

	carIDs := make([]int64, 0, len(demoCars))
	for _, dc := range demoCars {
		car, err := cars.CreateWithOwner(ctx, created[dc.owner].ID, dc.input)
		if err != nil {
			return nil, false, err
		}
		carIDs = append(carIDs, car.ID)
	}

	alice, bob := created[0].ID, created[1].ID
	if _, err := favorites.Add(ctx, alice, carIDs[0]); err != nil {
		return nil, false, err
	}
	if _, err := reviews.Create(ctx, alice, carIDs[0], "Love this car!", 5); err != nil {
		return nil, false, err
	}
	if _, err := favorites.Add(ctx, alice, carIDs[1]); err != nil {
		return nil, false, err
	}
	if _, err := reviews.Create(ctx, bob, carIDs[0], "Nice condition", 4); err != nil {
		return nil, false, err
	}

	return &Credentials{Credentials: append([]Credential(nil), demoUsers...)}, true, nil
}

// WriteCredentials stores the plaintext demo logins as indented JSON.
func WriteCredentials(path string, creds *Credentials) error {
	b, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Printf("seed credentials written to %s", path)
	return nil
}
