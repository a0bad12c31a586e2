package favorite

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"carmarket/internal/middleware"
	"carmarket/internal/pkg/response"
)

// Handler serves the favorites routes
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	favorites := rg.Group("/favorites")
	{
		favorites.POST("", middleware.RequireUser(), middleware.RequireBody("carId"), h.Add)
		favorites.GET("/me", h.Mine)
		favorites.DELETE("/:id", h.Remove)
	}
}

func (h *Handler) Add(c *gin.Context) {
	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, err)
		return
	}

	fav, err := h.svc.Add(c.Request.Context(), c.GetInt64(middleware.ContextUserID), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, fav)
}

func (h *Handler) Mine(c *gin.Context) {
	favorites, err := h.svc.Mine(c.Request.Context(), c.GetInt64(middleware.ContextUserID))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, favorites)
}

func (h *Handler) Remove(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "Invalid favorite id.")
		return
	}

	fav, err := h.svc.Remove(c.Request.Context(), id, userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, fav)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrAlreadyFavorited):
		response.Error(c, http.StatusConflict, "Already favorited.")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "Favorite not found.")
	case errors.Is(err, ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, "Authentication required.")
	default:
		response.Propagate(c, err)
	}
}
