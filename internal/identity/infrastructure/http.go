package infrastructure

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-usersync/internal/identity/application"
	"go-usersync/internal/identity/domain"
	"go-usersync/pkg/errors"
	"go-usersync/pkg/middleware"
)

// HTTPHandler handles HTTP requests for the identity service
type HTTPHandler struct {
	useCase *application.IdentityUseCase
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(useCase *application.IdentityUseCase) *HTTPHandler {
	return &HTTPHandler{useCase: useCase}
}

// RegisterRoutes registers the identity routes
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/verify/:id", h.VerifyEmail)
		auth.GET("/users/:id", h.GetUser)
	}
}

// RegisterRequest is the request body for registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the user shape in responses. The credential hash has no
// field here on purpose.
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Verified  bool   `json:"verified"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// AuthResponse is the data payload for register and login
type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"accessToken"`
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Verified:  user.Verified,
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: user.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Register handles POST /auth/register
func (h *HTTPHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	output, err := h.useCase.Register(c.Request.Context(), application.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": AuthResponse{
			User:        toUserResponse(output.User),
			AccessToken: output.AccessToken,
		},
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// Login handles POST /auth/login
func (h *HTTPHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	output, err := h.useCase.Login(c.Request.Context(), application.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": AuthResponse{
			User:        toUserResponse(output.User),
			AccessToken: output.AccessToken,
		},
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// VerifyEmail handles POST /auth/verify/:id
func (h *HTTPHandler) VerifyEmail(c *gin.Context) {
	output, err := h.useCase.VerifyEmail(c.Request.Context(), application.VerifyEmailInput{
		UserID: c.Param("id"),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"data":     toUserResponse(output.User),
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// GetUser handles GET /auth/users/:id
func (h *HTTPHandler) GetUser(c *gin.Context) {
	output, err := h.useCase.GetUser(c.Request.Context(), application.GetUserInput{
		ID: c.Param("id"),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"data":     toUserResponse(output.User),
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}
