package review

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"carmarket/internal/middleware"
	"carmarket/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	reviews := rg.Group("/reviews")
	{
		reviews.POST("", middleware.RequireUser(), middleware.RequireBody("carId", "review", "rating"), h.Create)
		reviews.GET("/car/:carId", h.ForCar)
		reviews.GET("/stats/:carId", h.Stats)
		reviews.GET("/user/:userId", h.ByUser)
		reviews.GET("/:id", h.Get)
		reviews.PATCH("/:id", h.Update)
		reviews.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, err)
		return
	}

	rv, err := h.svc.Create(c.Request.Context(), c.GetInt64(middleware.ContextUserID), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rv)
}

func (h *Handler) ForCar(c *gin.Context) {
	carID, ok := pathID(c, "carId", "Invalid car id.")
	if !ok {
		return
	}

	items, err := h.svc.ForCar(c.Request.Context(), carID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Stats(c *gin.Context) {
	carID, ok := pathID(c, "carId", "Invalid car id.")
	if !ok {
		return
	}

	stats, err := h.svc.Stats(c.Request.Context(), carID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) ByUser(c *gin.Context) {
	userID, ok := pathID(c, "userId", "Invalid user id.")
	if !ok {
		return
	}

	items, err := h.svc.ByUser(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "Invalid review id.")
	if !ok {
		return
	}

	rv, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, rv)
}

// Update answers 401, 404, 403 and 400 in that order of precedence.
func (h *Handler) Update(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	id, ok := pathID(c, "id", "Invalid review id.")
	if !ok {
		return
	}

	// A body that does not decode is validated as empty once the
	// existence and authorship checks have passed.
	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Fail(c, err)
			return
		}
		req = UpdateReviewRequest{}
	}

	rv, err := h.svc.Update(c.Request.Context(), id, userID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, rv)
}

func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	id, ok := pathID(c, "id", "Invalid review id.")
	if !ok {
		return
	}

	rv, err := h.svc.Delete(c.Request.Context(), id, userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, rv)
}

func pathID(c *gin.Context, name, message string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, message)
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "Review not found.")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "Not allowed.")
	case errors.Is(err, ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, "Authentication required.")
	default:
		response.Propagate(c, err)
	}
}
