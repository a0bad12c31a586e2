package router

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carmarket/internal/database/dbtest"
	"carmarket/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type client struct {
	t      *testing.T
	router http.Handler
}

func newClient(t *testing.T, bodyLimit int64) *client {
	t.Helper()
	db := dbtest.Open(t)
	return &client{
		t: t,
		router: New(db, Options{
			JWTSecret:      "router-test-secret",
			JWTTTL:         time.Hour,
			BodyLimitBytes: bodyLimit,
		}),
	}
}

func (c *client) do(method, path, token, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func (c *client) register(username, password string) string {
	c.t.Helper()
	w := c.do(http.MethodPost, "/users/register", "", fmt.Sprintf(`{"username":%q,"password":%q}`, username, password))
	require.Equal(c.t, http.StatusCreated, w.Code, w.Body.String())
	return w.Body.String()
}

func (c *client) createCar(token, body string) domain.Car {
	c.t.Helper()
	w := c.do(http.MethodPost, "/cars", token, body)
	require.Equal(c.t, http.StatusCreated, w.Code, w.Body.String())
	var car domain.Car
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &car))
	return car
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

const (
	corollaBody = `{"description":"A reliable compact","images":["u1"],"make":"Toyota","model":"Corolla","year":2020}`
	civicBody   = `{"description":"Sporty and efficient","images":"[\"u2\",\"u3\"]","make":"Honda","model":"Civic","year":2018}`
)

func TestRouter_Hello(t *testing.T) {
	c := newClient(t, 1<<20)

	w := c.do(http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello, World!", w.Body.String())

	w = c.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_Users(t *testing.T) {
	c := newClient(t, 1<<20)
	token := c.register("alice", "password123")

	w := c.do(http.MethodPost, "/users/register", "", `{"username":"alice","password":"other"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Username already taken.", w.Body.String())

	w = c.do(http.MethodPost, "/users/register", "", `{"username":"carol"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields: password", w.Body.String())

	w = c.do(http.MethodPost, "/users/login", "", `{"username":"alice","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = c.do(http.MethodPost, "/users/login", "", `{"username":"alice","password":"password123"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.String())

	w = c.do(http.MethodGet, "/users/me", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[domain.Identity](t, w)
	assert.Equal(t, "alice", me.Username)

	w = c.do(http.MethodGet, "/users/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authentication required.", w.Body.String())
}

func TestRouter_CarShowsCanonicalOwner(t *testing.T) {
	c := newClient(t, 1<<20)
	alice := c.register("alice", "password123")
	car := c.createCar(alice, corollaBody)

	w := c.do(http.MethodGet, fmt.Sprintf("/cars/%d", car.ID), "", "")
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[domain.CarWithOwner](t, w)
	assert.Equal(t, "A reliable compact", got.Description)
	assert.Equal(t, domain.Images{"u1"}, got.Images)
	assert.Equal(t, "Toyota", got.Make)
	assert.Equal(t, 2020, got.Year)
	require.NotNil(t, got.OwnerUsername)
	assert.Equal(t, "alice", *got.OwnerUsername)

	w = c.do(http.MethodGet, "/cars/424242", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Car not found.", w.Body.String())

	w = c.do(http.MethodGet, "/cars/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_CreateCarChecksAuthThenBody(t *testing.T) {
	c := newClient(t, 1<<20)
	alice := c.register("alice", "password123")

	w := c.do(http.MethodPost, "/cars", "", `{"make":"Toyota"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = c.do(http.MethodPost, "/cars", alice, `{"make":"Toyota"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields: description, images, model, year", w.Body.String())

	car := c.createCar(alice, civicBody)
	assert.Equal(t, domain.Images{"u2", "u3"}, car.Images)
}

func TestRouter_DuplicateFavorite(t *testing.T) {
	c := newClient(t, 1<<20)
	alice := c.register("alice", "password123")
	car := c.createCar(alice, corollaBody)
	body := fmt.Sprintf(`{"carId":%d}`, car.ID)

	w := c.do(http.MethodPost, "/favorites", alice, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	fav := decode[domain.Favorite](t, w)

	w = c.do(http.MethodPost, "/favorites", alice, body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Already favorited.", w.Body.String())

	w = c.do(http.MethodGet, "/favorites/me", alice, "")
	require.Equal(t, http.StatusOK, w.Code)
	favorites := decode[[]domain.FavoriteWithCar](t, w)
	require.Len(t, favorites, 1)
	assert.Equal(t, fav.ID, favorites[0].FavoriteID)
	assert.Equal(t, "Corolla", favorites[0].Model)

	w = c.do(http.MethodPost, "/favorites", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = c.do(http.MethodPost, "/favorites", alice, `{"carId":999}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_FavoriteRemovalIsScoped(t *testing.T) {
	c := newClient(t, 1<<20)
	alice := c.register("alice", "password123")
	bob := c.register("bob", "secret")
	car := c.createCar(alice, corollaBody)

	w := c.do(http.MethodPost, "/favorites", alice, fmt.Sprintf(`{"carId":%d}`, car.ID))
	require.Equal(t, http.StatusCreated, w.Code)
	fav := decode[domain.Favorite](t, w)
	path := fmt.Sprintf("/favorites/%d", fav.ID)

	w = c.do(http.MethodDelete, path, bob, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Favorite not found.", w.Body.String())

	w = c.do(http.MethodDelete, path, alice, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = c.do(http.MethodDelete, path, alice, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_NonOwnerCannotPatch(t *testing.T) {
	c := newClient(t, 1<<20)
	alice := c.register("alice", "password123")
	bob := c.register("bob", "secret")
	car := c.createCar(alice, corollaBody)
	path := fmt.Sprintf("/cars/%d", car.ID)
	patch := `{"description":"Stolen","images":[],"make":"Fiat","model":"Punto","year":1999}`

	w := c.do(http.MethodPatch, path, "", patch)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = c.do(http.MethodPatch, path, bob, patch)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Not owner of this car.", w.Body.String())

	w = c.do(http.MethodPatch, "/cars/999999", bob, patch)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = c.do(http.MethodDelete, path, bob, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = c.do(http.MethodGet, path, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[domain.CarWithOwner](t, w)
	assert.Equal(t, car, got.Car)
}

func TestRouter_OwnerUpdatesAndDeletes(t *testing.T) {
	c := newClient(t, 1<<20)
	alice := c.register("alice", "password123")
	car := c.createCar(alice, corollaBody)
	path := fmt.Sprintf("/cars/%d", car.ID)

	w := c.do(http.MethodPatch, path, alice, `{"description":"Only this"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields: images, make, model, year", w.Body.String())

	w = c.do(http.MethodPatch, path, alice, `{"description":"Low mileage","images":"https://img.example/1.jpg","make":"Toyota","model":"Corolla","year":2021}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[domain.Car](t, w)
	assert.Equal(t, "Low mileage", updated.Description)
	assert.Equal(t, domain.Images{"https://img.example/1.jpg"}, updated.Images)
	assert.Equal(t, 2021, updated.Year)

	w = c.do(http.MethodGet, "/cars/me", alice, "")
	require.Equal(t, http.StatusOK, w.Code)
	mine := decode[[]domain.CarWithStats](t, w)
	require.Len(t, mine, 1)
	assert.Equal(t, car.ID, mine[0].ID)

	w = c.do(http.MethodDelete, path, alice, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, car.ID, decode[domain.Car](t, w).ID)

	// The ownership link went with the car, so the caller is no longer an owner.
	w = c.do(http.MethodDelete, path, alice, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = c.do(http.MethodGet, path, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_SearchIsCaseInsensitive(t *testing.T) {
	c := newClient(t, 1<<20)
	alice := c.register("alice", "password123")
	c.createCar(alice, corollaBody)
	civic := c.createCar(alice, civicBody)

	w := c.do(http.MethodGet, "/cars/search?term=civic", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	found := decode[[]domain.Car](t, w)
	require.Len(t, found, 1)
	assert.Equal(t, civic.ID, found[0].ID)

	w = c.do(http.MethodGet, "/cars/search", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Car](t, w), 2)

	w = c.do(http.MethodGet, "/cars/make/HONDA", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Car](t, w), 1)

	w = c.do(http.MethodGet, "/cars", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Car](t, w), 2)
}

func TestRouter_Reviews(t *testing.T) {
	c := newClient(t, 1<<20)
	alice := c.register("alice", "password123")
	bob := c.register("bob", "secret")
	car := c.createCar(alice, corollaBody)

	w := c.do(http.MethodGet, fmt.Sprintf("/reviews/stats/%d", car.ID), "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"avg_rating":0,"review_count":0}`, w.Body.String())

	w = c.do(http.MethodGet, "/cars/stats", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[[]domain.CarWithStats](t, w)
	require.Len(t, stats, 1)
	assert.Equal(t, float64(0), stats[0].AvgRating)
	assert.Equal(t, int64(0), stats[0].ReviewCount)

	w = c.do(http.MethodPost, "/reviews", alice, fmt.Sprintf(`{"carId":%d,"review":"Love this car!","rating":9}`, car.ID))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid fields: rating", w.Body.String())

	w = c.do(http.MethodPost, "/reviews", alice, fmt.Sprintf(`{"carId":%d,"review":"Love this car!","rating":5}`, car.ID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rv := decode[domain.Review](t, w)
	path := fmt.Sprintf("/reviews/%d", rv.ID)

	w = c.do(http.MethodPost, "/reviews", bob, fmt.Sprintf(`{"carId":%d,"review":"Nice condition","rating":4}`, car.ID))
	require.Equal(t, http.StatusCreated, w.Code)

	w = c.do(http.MethodGet, fmt.Sprintf("/reviews/car/%d", car.ID), "", "")
	require.Equal(t, http.StatusOK, w.Code)
	withUser := decode[[]domain.ReviewWithUser](t, w)
	require.Len(t, withUser, 2)
	assert.Equal(t, "alice", withUser[0].Username)
	assert.Equal(t, "bob", withUser[1].Username)

	w = c.do(http.MethodGet, fmt.Sprintf("/reviews/stats/%d", car.ID), "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"avg_rating":4.5,"review_count":2}`, w.Body.String())

	w = c.do(http.MethodGet, fmt.Sprintf("/reviews/user/%d", rv.UserID), "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Review](t, w), 1)

	w = c.do(http.MethodGet, "/reviews/424242", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Review not found.", w.Body.String())

	// Existence is checked before authorship, authorship before the body.
	w = c.do(http.MethodPatch, "/reviews/424242", bob, `{"review":"x","rating":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = c.do(http.MethodPatch, path, bob, `{}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Not allowed.", w.Body.String())

	w = c.do(http.MethodPatch, path, alice, `{"review":"Still great"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = c.do(http.MethodPatch, path, alice, `{"review":"Still great","rating":4}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4, decode[domain.Review](t, w).Rating)

	w = c.do(http.MethodDelete, path, bob, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = c.do(http.MethodDelete, path, "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = c.do(http.MethodDelete, path, alice, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = c.do(http.MethodGet, path, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_OversizedBody(t *testing.T) {
	c := newClient(t, 256)
	alice := c.register("alice", "password123")

	big := fmt.Sprintf(`{"description":"big","images":[%q],"make":"Toyota","model":"Corolla","year":2020}`, strings.Repeat("x", 1024))
	w := c.do(http.MethodPost, "/cars", alice, big)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "Upload too large. Please use a smaller image.", w.Body.String())
}
