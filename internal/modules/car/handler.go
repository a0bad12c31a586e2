package car

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

// RegisterRoutes mounts /cars. Update and delete run the ownership check
// before the body is looked at.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, owners *middleware.OwnershipChecker) {
	cars := rg.Group("/cars")
	{
		cars.GET("", h.List)
		cars.GET("/stats", h.Stats)
		cars.GET("/search", h.Search)
		cars.GET("/make/:make", h.ByMake)
		cars.GET("/me", h.Mine)
		cars.GET("/:id", h.Get)

		cars.POST("", middleware.RequireUser(), middleware.RequireBody(requiredFields...), h.Create)
		cars.PATCH("/:id", owners.CheckCarOwnership(), middleware.RequireBody(requiredFields...), h.Update)
		cars.DELETE("/:id", owners.CheckCarOwnership(), h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	cars, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, cars)
}

func (h *Handler) Stats(c *gin.Context) {
	cars, err := h.svc.ListWithStats(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, cars)
}

// Search matches ?term= against make, model and description. No term lists everything.
func (h *Handler) Search(c *gin.Context) {
	cars, err := h.svc.Search(c.Request.Context(), c.Query("term"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, cars)
}

func (h *Handler) ByMake(c *gin.Context) {
	cars, err := h.svc.ByMake(c.Request.Context(), c.Param("make"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, cars)
}

func (h *Handler) Mine(c *gin.Context) {
	cars, err := h.svc.Mine(c.Request.Context(), c.GetInt64(middleware.ContextUserID))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, cars)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := carID(c)
	if !ok {
		return
	}

	car, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, car)
}

func (h *Handler) Create(c *gin.Context) {
	var req CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, err)
		return
	}

	car, err := h.svc.Create(c.Request.Context(), c.GetInt64(middleware.ContextUserID), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, car)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := carID(c)
	if !ok {
		return
	}

	var req CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, err)
		return
	}

	car, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, car)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := carID(c)
	if !ok {
		return
	}

	car, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, car)
}

func carID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "Invalid car id.")
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "Car not found.")
	case errors.Is(err, ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, "Authentication required.")
	default:
		response.Propagate(c, err)
	}
}
