package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carmarket/internal/middleware"
	"carmarket/internal/pkg/response"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.POST("/register", middleware.RequireBody("username", "password"), h.Register)
		users.POST("/login", middleware.RequireBody("username", "password"), h.Login)
		users.GET("/me", h.Me)
	}
}

// Register responds 201 with the new user's token as plain text.
func (h *Handler) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, err)
		return
	}

	token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.String(http.StatusCreated, token)
}

func (h *Handler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, err)
		return
	}

	token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.String(http.StatusOK, token)
}

func (h *Handler) Me(c *gin.Context) {
	me, err := h.service.Me(c.Request.Context(), c.GetInt64(middleware.ContextUserID))
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, me)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUsernameTaken):
		response.Error(c, http.StatusConflict, "Username already taken.")
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "Invalid username or password.")
	case errors.Is(err, ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, "Authentication required.")
	default:
		response.Propagate(c, err)
	}
}
