package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"carmarket/internal/database"
	"carmarket/internal/middleware"
	"carmarket/internal/modules/auth"
	"carmarket/internal/modules/car"
	"carmarket/internal/modules/favorite"
	"carmarket/internal/modules/review"
	jwtsvc "carmarket/internal/pkg/jwt"
	"carmarket/internal/repository"
)

type Options struct {
	JWTSecret      string
	JWTTTL         time.Duration
	CORSOrigin     string
	BodyLimitBytes int64
	AccessLog      bool
}

// New builds the HTTP handler over db.
func New(db *gorm.DB, opts Options) *gin.Engine {
	userRepo := repository.NewUserRepository(db)
	carRepo := repository.NewCarRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	j := jwtsvc.New(opts.JWTSecret, opts.JWTTTL)

	authHandler := auth.NewHandler(auth.NewService(userRepo, j))
	carHandler := car.NewHandler(car.NewService(carRepo))
	favoriteHandler := favorite.NewHandler(favorite.NewService(favoriteRepo))
	reviewHandler := review.NewHandler(review.NewService(reviewRepo))
	owners := middleware.NewOwnershipChecker(carRepo)

	r := gin.New()
	if opts.AccessLog {
		r.Use(gin.Logger())
	}
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(),
		middleware.CORS(opts.CORSOrigin),
		middleware.StorageErrors(),
		middleware.BodyLimit(opts.BodyLimitBytes),
		middleware.Authenticate(j, userRepo),
	)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello, World!")
	})
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := database.Ping(ctx, db); err != nil {
			_ = c.Error(err)
			c.String(http.StatusServiceUnavailable, "unavailable")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	root := r.Group("/")
	authHandler.RegisterRoutes(root)
	carHandler.RegisterRoutes(root, owners)
	favoriteHandler.RegisterRoutes(root)
	reviewHandler.RegisterRoutes(root)

	return r
}
