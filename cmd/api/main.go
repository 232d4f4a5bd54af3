package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/Dan9191/blog-service/internal/cache"
	"github.com/Dan9191/blog-service/internal/config"
	"github.com/Dan9191/blog-service/internal/feed"
	"github.com/Dan9191/blog-service/internal/handler"
	"github.com/Dan9191/blog-service/internal/middleware"
	"github.com/Dan9191/blog-service/internal/repository"
	"github.com/Dan9191/blog-service/internal/service"
	"github.com/Dan9191/blog-service/internal/token"
	"github.com/Dan9191/blog-service/internal/utils/email"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize cache and its sweep job
	memCache := cache.NewMemoryCache()
	sweeper := cron.New()
	if _, err := sweeper.AddFunc("@every 1m", memCache.SweepExpired); err != nil {
		logger.Fatalf("Failed to schedule cache sweep: %v", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	// Welcome emails are optional; enabled when SMTP is configured
	var mailer service.Mailer
	if cfg.SMTPHost != "" {
		mailer = email.NewSender(cfg, logger)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, memCache, cfg.CacheTTL, logger, mailer)
	tokens := token.NewService(cfg.JWTSecret, cfg.JWTLifetime)
	h := handler.NewHandler(svc, tokens, feed.NewBuilder(cfg.SiteURL))

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logger))

	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", h.Register).Methods("POST")
	api.HandleFunc("/auth/login", h.Login).Methods("POST")
	api.HandleFunc("/posts/feed", h.Feed).Methods("GET")
	api.HandleFunc("/posts/{id:[0-9]+}", h.GetPost).Methods("GET")
	api.HandleFunc("/comments/post/{postId:[0-9]+}", h.ListCommentsByPost).Methods("GET")
	api.HandleFunc("/comments/{id:[0-9]+}", h.GetComment).Methods("GET")

	// Read endpoints that behave the same for anonymous callers
	optRouter := api.PathPrefix("/").Subrouter()
	optRouter.Use(middleware.OptionalAuth(tokens))
	optRouter.HandleFunc("/posts", h.ListPosts).Methods("GET")

	// Protected routes
	authRouter := api.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.Authenticate(tokens))
	authRouter.HandleFunc("/auth/profile", h.Profile).Methods("GET")
	authRouter.HandleFunc("/posts", h.CreatePost).Methods("POST")
	authRouter.HandleFunc("/posts/{id:[0-9]+}", h.UpdatePost).Methods("PUT")
	authRouter.HandleFunc("/posts/{id:[0-9]+}", h.DeletePost).Methods("DELETE")
	authRouter.HandleFunc("/comments/{postId:[0-9]+}", h.CreateComment).Methods("POST")
	authRouter.HandleFunc("/comments/{id:[0-9]+}", h.UpdateComment).Methods("PUT")
	authRouter.HandleFunc("/comments/{id:[0-9]+}", h.DeleteComment).Methods("DELETE")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success":   true,
			"message":   "Server is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
