package infrastructure

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"go-usersync/internal/identity/adapters"
	"go-usersync/internal/identity/application"
	"go-usersync/internal/identity/domain"
	"go-usersync/pkg/logger"
	"go-usersync/pkg/middleware"
)

type nopPublisher struct{}

func (nopPublisher) PublishUserRegistered(ctx context.Context, user *domain.User) error { return nil }
func (nopPublisher) PublishUserVerified(ctx context.Context, user *domain.User) error   { return nil }

type fixedTokens struct{}

func (fixedTokens) Issue(userID string) (string, error) { return "token-abc", nil }

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	log := logger.New("test", "error")
	useCase := application.NewIdentityUseCase(
		adapters.NewMemoryUserRepository(),
		nopPublisher{},
		fixedTokens{},
		log,
	)

	router := gin.New()
	router.Use(middleware.TraceID())
	router.Use(middleware.ErrorHandler(log))

	api := router.Group("/api/v1")
	NewHTTPHandler(useCase).RegisterRoutes(api)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterEndpoint(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register",
		`{"email":"a@x.com","password":"secret1","name":"A"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			User struct {
				ID       string `json:"id"`
				Email    string `json:"email"`
				Name     string `json:"name"`
				Verified bool   `json:"verified"`
			} `json:"user"`
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !resp.Success {
		t.Error("expected success to be true")
	}
	if resp.Data.User.Email != "a@x.com" {
		t.Errorf("expected email 'a@x.com', got '%s'", resp.Data.User.Email)
	}
	if resp.Data.User.Name != "A" {
		t.Errorf("expected name 'A', got '%s'", resp.Data.User.Name)
	}
	if resp.Data.User.Verified {
		t.Error("expected new user to be unverified")
	}
	if resp.Data.AccessToken == "" {
		t.Error("expected a non-empty access token")
	}

	// Credential material must never appear in the payload
	body := w.Body.String()
	if strings.Contains(body, "secret1") || strings.Contains(body, "password") || strings.Contains(body, "hash") {
		t.Errorf("response leaks credential material: %s", body)
	}
}

func TestRegisterEndpoint_DuplicateEmail(t *testing.T) {
	router := newTestRouter()

	payload := `{"email":"a@x.com","password":"secret1","name":"A"}`
	if w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", payload); w.Code != http.StatusCreated {
		t.Fatalf("first registration failed: %d", w.Code)
	}

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", payload)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
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
	if resp.Message == "" {
		t.Error("expected a non-empty message")
	}
}

func TestLoginEndpoint_UnverifiedUser(t *testing.T) {
	router := newTestRouter()

	if w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register",
		`{"email":"a@x.com","password":"secret1","name":"A"}`); w.Code != http.StatusCreated {
		t.Fatalf("registration failed: %d", w.Code)
	}

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login",
		`{"email":"a@x.com","password":"secret1"}`)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestVerifyThenLoginEndpoint(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register",
		`{"email":"a@x.com","password":"secret1","name":"A"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("registration failed: %d", w.Code)
	}

	var reg struct {
		Data struct {
			User struct {
				ID string `json:"id"`
			} `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &reg); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if w := doJSON(t, router, http.MethodPost, "/api/v1/auth/verify/"+reg.Data.User.ID, ""); w.Code != http.StatusOK {
		t.Fatalf("verification failed: %d: %s", w.Code, w.Body.String())
	}

	if w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login",
		`{"email":"a@x.com","password":"secret1"}`); w.Code != http.StatusOK {
		t.Fatalf("expected login to succeed after verification, got %d", w.Code)
	}
}
