// Package proxy implements the edge router: a stateless forwarder that maps
// the public API surface onto the identity and profile services. It adds no
// validation and aggregates nothing; each request is relayed to exactly one
// backend.
package proxy

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-usersync/pkg/errors"
	"go-usersync/pkg/logger"
	"go-usersync/pkg/middleware"
)

// Router forwards requests to the identity and profile services
type Router struct {
	identity *httputil.ReverseProxy
	profile  *httputil.ReverseProxy
	log      *logger.Logger
}

// New creates a new edge router for the given backend base URLs
func New(identityAddr, profileAddr string, log *logger.Logger) (*Router, error) {
	identity, err := newProxy(identityAddr, log)
	if err != nil {
		return nil, fmt.Errorf("invalid identity address: %w", err)
	}

	profile, err := newProxy(profileAddr, log)
	if err != nil {
		return nil, fmt.Errorf("invalid profile address: %w", err)
	}

	return &Router{
		identity: identity,
		profile:  profile,
		log:      log,
	}, nil
}

func newProxy(addr string, log *logger.Logger) (*httputil.ReverseProxy, error) {
	target, err := url.Parse(addr)
	if err != nil {
		return nil, err
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.WithContext(r.Context()).Error("backend unreachable",
			zap.Error(err),
			zap.String("target", target.Host),
			zap.String("path", r.URL.Path),
		)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(errors.ErrorResponse{
			Success: false,
			Message: "service unavailable",
			Code:    errors.CodeUnavailable,
			TraceID: r.Header.Get(middleware.TraceIDHeader),
		})
	}

	return proxy, nil
}

// RegisterRoutes registers the public API surface
func (r *Router) RegisterRoutes(g *gin.RouterGroup) {
	auth := g.Group("/auth")
	{
		auth.POST("/register", r.toIdentity)
		auth.POST("/login", r.toIdentity)
		auth.POST("/verify/:id", r.toIdentity)
		auth.GET("/users/:id", r.toIdentity)
	}

	users := g.Group("/users")
	{
		users.GET("", r.toProfile)
		users.GET("/:id", r.toProfile)
		users.PUT("/:id", r.toProfile)
	}
}

func (r *Router) toIdentity(c *gin.Context) {
	r.identity.ServeHTTP(c.Writer, c.Request)
}

func (r *Router) toProfile(c *gin.Context) {
	r.profile.ServeHTTP(c.Writer, c.Request)
}
