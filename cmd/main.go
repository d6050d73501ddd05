package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"teamspace/clients/google"
	"teamspace/config"
	"teamspace/db"
	"teamspace/handlers"
	"teamspace/jwtauth"
	"teamspace/metrics"
	"teamspace/middleware"
	"teamspace/services/auth"
	"teamspace/services/txmanager"
	"teamspace/services/users"
	"teamspace/services/workspaces"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize error alert middleware
	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.AlertConfig{
		WebhookURL:  cfg.AlertWebhookURL,
		Environment: cfg.Environment,
		AppName:     "teamspace",
	})

	// Initialize database connection
	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	// Initialize repositories with shared connection
	usersRepo := db.NewPostgresUsersRepository(dbConn, cfg.DatabaseSchema)
	accountsRepo := db.NewPostgresAccountsRepository(dbConn, cfg.DatabaseSchema)
	workspacesRepo := db.NewPostgresWorkspacesRepository(dbConn, cfg.DatabaseSchema)
	rolesRepo := db.NewPostgresRolesRepository(dbConn, cfg.DatabaseSchema)
	membersRepo := db.NewPostgresMembersRepository(dbConn, cfg.DatabaseSchema)

	// Initialize transaction manager and metrics
	txManager := txmanager.NewTransactionManager(dbConn)
	collector := metrics.NewPrometheusCollector()

	authService := auth.NewAuthService(
		usersRepo, accountsRepo, workspacesRepo, rolesRepo, membersRepo, txManager, collector)
	usersService := users.NewUsersService(usersRepo, membersRepo)
	workspacesService := workspaces.NewWorkspacesService(
		usersRepo, workspacesRepo, rolesRepo, membersRepo, txManager)

	issuer := jwtauth.NewIssuer(cfg.SessionSecret, cfg.SessionTTL)
	authMiddleware := middleware.NewSessionAuthMiddleware(usersService, issuer)

	var googleClient handlers.GoogleOAuthClient
	if cfg.Google.IsConfigured() {
		googleClient = google.NewOAuthClient(
			cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.CallbackURL)
	} else {
		log.Printf("⚠️ Google OAuth not configured, Google sign-in disabled")
	}

	authHandler := handlers.NewAuthHandler(authService, issuer, googleClient, cfg.FrontendGoogleCallbackURL)
	usersHandler := handlers.NewUsersHandler(usersService)
	workspacesHandler := handlers.NewWorkspacesHandler(workspacesService)

	// Create a new router
	router := mux.NewRouter()

	authHandler.SetupEndpoints(router)
	usersHandler.SetupEndpoints(router, authMiddleware)
	workspacesHandler.SetupEndpoints(router, authMiddleware)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			log.Printf("❌ Failed to write health check response: %v", err)
		}
	}).Methods("GET")

	// Prometheus metrics endpoint
	router.Handle("/metrics", collector.Handler()).Methods("GET")

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: alertMiddleware.HTTPMiddleware(corsHandler.Handler(router)),
	}

	// Graceful shutdown on SIGINT/SIGTERM
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("✅ Listening on http://localhost:%s", cfg.Port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-shutdownCh:
		log.Printf("📋 Received signal %v, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	}
}
