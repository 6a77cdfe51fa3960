package infrastructure

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-usersync/internal/profile/application"
	"go-usersync/internal/profile/domain"
	"go-usersync/pkg/errors"
	"go-usersync/pkg/middleware"
)

// HTTPHandler handles HTTP requests for the profile service
type HTTPHandler struct {
	useCase *application.ProfileUseCase
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(useCase *application.ProfileUseCase) *HTTPHandler {
	return &HTTPHandler{useCase: useCase}
}

// RegisterRoutes registers the profile routes
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.GET("", h.ListProfiles)
		users.GET("/:id", h.GetProfile)
		users.PUT("/:id", h.UpdateProfile)
	}
}

// UpdateProfileRequest is the request body for updating a profile
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
}

// ProfileResponse is the response body for profile operations
type ProfileResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Verified  bool   `json:"verified"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toProfileResponse(profile *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        profile.UserID,
		Email:     profile.Email,
		Name:      profile.Name,
		Verified:  profile.Verified,
		CreatedAt: profile.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: profile.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// GetProfile handles GET /users/:id
func (h *HTTPHandler) GetProfile(c *gin.Context) {
	output, err := h.useCase.GetProfile(c.Request.Context(), application.GetProfileInput{
		UserID: c.Param("id"),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"data":     toProfileResponse(output.Profile),
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// ListProfiles handles GET /users
func (h *HTTPHandler) ListProfiles(c *gin.Context) {
	output, err := h.useCase.ListProfiles(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	profiles := make([]ProfileResponse, len(output.Profiles))
	for i, p := range output.Profiles {
		profiles[i] = toProfileResponse(p)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"data":     profiles,
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// UpdateProfile handles PUT /users/:id
func (h *HTTPHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	output, err := h.useCase.UpdateProfile(c.Request.Context(), application.UpdateProfileInput{
		UserID: c.Param("id"),
		Name:   req.Name,
		Email:  req.Email,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"data":     toProfileResponse(output.Profile),
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}
