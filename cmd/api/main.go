package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/ammdev/money-manager/internal/config"
	"github.com/ammdev/money-manager/internal/handler"
	"github.com/ammdev/money-manager/internal/middleware"
	"github.com/ammdev/money-manager/internal/service"
	"github.com/ammdev/money-manager/internal/storage"
	"github.com/gorilla/mux"
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
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := storage.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer client.Disconnect(context.Background())

	// Initialize layers
	store := storage.NewMongoStore(client, cfg.DatabaseName)
	svc := service.NewService(store, logger)
	h := handler.NewHandler(svc)

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.HandleFunc("/", h.Root).Methods("GET")
	r.HandleFunc("/test", h.TestStore).Methods("GET")
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/accounts", h.CreateAccount).Methods("POST")
	api.HandleFunc("/accounts", h.ListAccounts).Methods("GET")
	api.HandleFunc("/categories", h.CreateCategory).Methods("POST")
	api.HandleFunc("/categories", h.ListCategories).Methods("GET")
	api.HandleFunc("/setup/defaults", h.SetupDefaults).Methods("POST")
	api.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	api.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	api.HandleFunc("/budgets", h.CreateBudget).Methods("POST")
	api.HandleFunc("/budgets", h.ListBudgets).Methods("GET")
	api.HandleFunc("/parse", h.ParseText).Methods("POST")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	// CORS wraps the router itself: preflights must be answered even when
	// no method matcher accepts OPTIONS.
	server := &http.Server{
		Addr:         addr,
		Handler:      middleware.CORS(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
