package middleware

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"carmarket/internal/domain"
	"carmarket/internal/pkg/jwt"
	"carmarket/internal/pkg/response"
)

const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
)

type TokenValidator interface {
	ValidateToken(tokenStr string) (*jwt.Claims, error)
}

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Authenticate resolves an optional bearer token to a user and stores
// user_id and username in the context. It never rejects a request; routes
// that need an identity check c.GetInt64("user_id") themselves.
func Authenticate(tokens TokenValidator, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c.GetHeader("Authorization"))
		if tokenStr == "" {
			c.Next()
			return
		}

		claims, err := tokens.ValidateToken(tokenStr)
		if err != nil {
			c.Next()
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if !domain.IsNotFound(err) {
				log.Printf("auth_lookup_failed request_id=%s user_id=%d error=%v", RequestIDFrom(c), claims.UserID, err)
			}
			c.Next()
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUsername, user.Username)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

type CarOwnership interface {
	IsOwner(ctx context.Context, userID, carID int64) (bool, error)
}

// OwnershipChecker provides middleware to verify resource ownership
type OwnershipChecker struct {
	cars CarOwnership
}

// NewOwnershipChecker creates a new ownership checker
func NewOwnershipChecker(cars CarOwnership) *OwnershipChecker {
	return &OwnershipChecker{cars: cars}
}

// CheckCarOwnership verifies the user has an ownership link for the car.
// Expects car ID in URL param "id". A car that does not exist is reported
// as 403 too, so non-owners cannot probe which ids exist.
func (oc *OwnershipChecker) CheckCarOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64(ContextUserID)
		if userID == 0 {
			response.Error(c, http.StatusUnauthorized, "Authentication required.")
			return
		}

		carID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || carID <= 0 {
			response.Error(c, http.StatusBadRequest, "Invalid car id.")
			return
		}

		owned, err := oc.cars.IsOwner(c.Request.Context(), userID, carID)
		if err != nil {
			response.Fail(c, err)
			return
		}
		if !owned {
			response.Error(c, http.StatusForbidden, "Not owner of this car.")
			return
		}

		c.Next()
	}
}

// RequireUser stops anonymous requests with 401. Routes that validate a
// body put it in front of RequireBody so a missing identity wins.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetInt64(ContextUserID) == 0 {
			response.Error(c, http.StatusUnauthorized, "Authentication required.")
			return
		}
		c.Next()
	}
}
