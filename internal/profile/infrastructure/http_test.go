package infrastructure

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"go-usersync/internal/profile/adapters"
	"go-usersync/internal/profile/application"
	"go-usersync/pkg/events"
	"go-usersync/pkg/logger"
	"go-usersync/pkg/middleware"
)

func newTestRouter() (*gin.Engine, *application.ProfileUseCase) {
	gin.SetMode(gin.TestMode)

	log := logger.New("test", "error")
	useCase := application.NewProfileUseCase(adapters.NewMemoryProfileRepository(), log)

	router := gin.New()
	router.Use(middleware.TraceID())
	router.Use(middleware.ErrorHandler(log))

	api := router.Group("/api/v1")
	NewHTTPHandler(useCase).RegisterRoutes(api)

	return router, useCase
}

func TestGetProfileEndpoint_NotYetProjected(t *testing.T) {
	router, _ := newTestRouter()

	// A registration may have succeeded in the identity service moments
	// ago; until its event arrives this endpoint legitimately 404s
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/some-id", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Success {
		t.Error("expected success to be false")
	}
}

func TestGetProfileEndpoint_AfterEvent(t *testing.T) {
	router, useCase := newTestRouter()

	event := events.NewUserRegisteredEvent("user-1", "a@x.com", "A", time.Now(), "")
	if err := useCase.HandleUserRegistered(context.Background(), *event); err != nil {
		t.Fatalf("event handling failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/user-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			ID       string `json:"id"`
			Email    string `json:"email"`
			Verified bool   `json:"verified"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Data.ID != "user-1" {
		t.Errorf("expected id 'user-1', got '%s'", resp.Data.ID)
	}
	if resp.Data.Verified {
		t.Error("expected projection to be unverified")
	}
}

func TestUpdateProfileEndpoint_NoLocalRow(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/user-1",
		strings.NewReader(`{"name":"New Name"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestListProfilesEndpoint(t *testing.T) {
	router, useCase := newTestRouter()

	for _, id := range []string{"user-1", "user-2"} {
		event := events.NewUserRegisteredEvent(id, id+"@x.com", "User", time.Now(), "")
		if err := useCase.HandleUserRegistered(context.Background(), *event); err != nil {
			t.Fatalf("event handling failed: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Data) != 2 {
		t.Errorf("expected 2 profiles, got %d", len(resp.Data))
	}
}
