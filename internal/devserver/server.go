// Package devserver is an in-memory implementation of the homes/locations
// HTTP API. It backs local runs of the console and its integration tests;
// nothing is persisted.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/locator/internal/client/models"
	"github.com/dmitrijs2005/locator/internal/logging"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"
)

// Server wires the store, token issuer and routes.
type Server struct {
	echo  *echo.Echo
	store *Store
	cfg   *Config
	log   logging.Logger
}

// New builds the server and seeds the root account from cfg.
func New(cfg *Config, log logging.Logger) (*Server, error) {
	if log == nil {
		log = logging.Nop{}
	}

	store := NewStore()
	if cfg.RootEmail != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.RootPassword), cfg.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash root password: %w", err)
		}
		if _, err := store.CreateUser(models.User{Name: "root", Email: cfg.RootEmail, Role: models.RoleRoot}, hash); err != nil {
			return nil, fmt.Errorf("seed root user: %w", err)
		}
	}

	s := &Server{store: store, cfg: cfg, log: log}
	s.echo = s.routes(NewTokens(cfg.JWTSecret, cfg.TokenTTL))
	return s, nil
}

func (s *Server) routes(tokens *Tokens) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newValidator()
	e.HTTPErrorHandler = newHTTPErrorHandler(s.log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(s.log))

	h := &handlers{store: s.store, tokens: tokens, log: s.log, cost: s.cfg.BcryptCost}
	authed := requireAuth(tokens, s.store)
	admin := requireRole(models.RoleAdmin, models.RoleRoot)

	e.GET("/", h.root)
	e.POST("/auth/signup", h.signup)
	e.POST("/auth/signin", h.signin)
	e.POST("/geocode/search", h.geocode)

	users := e.Group("/users", authed, admin)
	users.GET("/", h.listUsers)
	users.PUT("/:id", h.updateUser)
	users.DELETE("/:id", h.deleteUser)

	locations := e.Group("/locations", authed)
	locations.GET("/", h.listLocations)
	locations.POST("/", h.createLocation)
	locations.GET("/:id", h.getLocation)
	locations.PUT("/:id", h.updateLocation)
	locations.DELETE("/:id", h.deleteLocation, admin)

	homes := e.Group("/homes", authed)
	homes.GET("/", h.listHomes)
	homes.POST("/", h.createHome)
	homes.GET("/:id", h.getHome)
	homes.PUT("/:id", h.updateHome)
	homes.DELETE("/:id", h.deleteHome, admin)
	homes.GET("/:id/distances", h.distances)

	return e
}

// Handler exposes the routes, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Store returns the backing store, for seeding.
func (s *Server) Store() *Store {
	return s.store
}

// Start serves on cfg.Addr until Shutdown.
func (s *Server) Start() error {
	s.log.Info(context.Background(), "dev server listening", "addr", s.cfg.Addr)
	if err := s.echo.Start(s.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
