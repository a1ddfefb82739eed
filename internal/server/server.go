package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gamesetuphub/backend/config"
	"github.com/gamesetuphub/backend/internal/auth"
	"github.com/gamesetuphub/backend/internal/db"
	"github.com/gamesetuphub/backend/internal/handlers"
	"github.com/gamesetuphub/backend/internal/services"
	"github.com/gamesetuphub/backend/internal/store"
)

// Server wraps the HTTP server and router for one service.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	client     *mongo.Client
}

// NewUsers constructs the users service: registration, login, profiles.
func NewUsers(ctx context.Context, cfg config.Config) (*Server, error) {
	client, authenticator, err := connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	userRepo := store.NewUserRepository(db.Database(client, cfg))
	userService := services.NewUserService(userRepo)

	router := newRouter()
	handlers.AuthRouter(router, userService, authenticator)

	return newServer(router, client, cfg), nil
}

// NewConfigs constructs the configs service: configuration CRUD,
// search, versions, comments and likes.
func NewConfigs(ctx context.Context, cfg config.Config) (*Server, error) {
	client, authenticator, err := connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	configRepo := store.NewConfigRepository(db.Database(client, cfg))
	configService := services.NewConfigService(configRepo)

	router := newRouter()
	handlers.ConfigRouter(router, configService, authenticator)

	return newServer(router, client, cfg), nil
}

func connect(ctx context.Context, cfg config.Config) (*mongo.Client, *auth.Authenticator, error) {
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, nil, errors.New("JWT_SECRET is required")
	}

	client, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	return client, auth.NewAuthenticator(cfg.JWTSecret), nil
}

func newRouter() *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/health", handlers.Healthz)
	return router
}

func newServer(router *chi.Mux, client *mongo.Client, cfg config.Config) *Server {
	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		client:     client,
	}
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.client != nil {
		_ = s.client.Disconnect(context.Background())
	}
	return s.httpServer.Close()
}
