package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stayHydratedAPI/handlers"
	"stayHydratedAPI/internal/notification"
	"stayHydratedAPI/middleware"
	"stayHydratedAPI/services"
)

var (
	dbPool              *pgxpool.Pool
	authService         *services.AuthService
	userService         *services.UserService
	hydrationService    *services.HydrationService
	corporationService  *services.CorporationService
	managerService      *services.ManagerService
	warningService      *services.WarningService
	notificationService *services.NotificationService
	fcmService          *notification.FCMService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	if os.Getenv("JWT_KEY") == "" {
		log.Fatal("JWT_KEY environment variable is not set")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Fatal("Failed to parse database URL:", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("Failed to create connection pool:", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Successfully connected to database")

	notificationService = services.NewNotificationService(dbPool)
	authService = services.NewAuthService(dbPool)
	userService = services.NewUserService(dbPool)
	hydrationService = services.NewHydrationService(dbPool, userService)
	corporationService = services.NewCorporationService(dbPool)
	managerService = services.NewManagerService(dbPool)
	warningService = services.NewWarningService(dbPool, notificationService)

	fcmService, err = notification.NewFCMService("./serviceAccountKey.json")
	if err != nil {
		log.Printf("Warning: Could not initialize FCM: %v", err)
	} else {
		notificationService.SetPushProvider(fcmService)
		log.Println("FCM Push Provider initialized successfully")
	}

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Println("Closing database connection pool...")
		dbPool.Close()
	}()

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	hydrationHandler := handlers.NewHydrationHandler(hydrationService)
	corporationHandler := handlers.NewCorporationHandler(corporationService, userService)
	managerHandler := handlers.NewManagerHandler(managerService, warningService, userService)
	warningHandler := handlers.NewWarningHandler(warningService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	r := mux.NewRouter()

	go middleware.CleanupClients()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "stayHydrated-api"}`))
	}).Methods("GET")

	// -------------------------------------------------------------------------
	// API V1 SUBROUTER
	// -------------------------------------------------------------------------
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/signup", authHandler.SignUp).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// -------------------------------------------------------------------------
	// PROTECTED ROUTES (REQUIRE AUTH HEADER)
	// -------------------------------------------------------------------------
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.JWTAuthMiddleware)

	protected.HandleFunc("/user", userHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/user/update-profile", userHandler.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/user/settings", userHandler.GetSettings).Methods("GET")
	protected.HandleFunc("/user/settings", userHandler.UpdateSettings).Methods("PUT")
	protected.HandleFunc("/user/settings/recommended-target", userHandler.GetRecommendedTarget).Methods("GET")

	protected.HandleFunc("/hydration/log", hydrationHandler.LogIntake).Methods("POST")
	protected.HandleFunc("/hydration/dashboard", hydrationHandler.GetDashboard).Methods("GET")
	protected.HandleFunc("/hydration/history", hydrationHandler.GetHistory).Methods("GET")

	protected.HandleFunc("/company", corporationHandler.GetMyCorporation).Methods("GET")
	protected.HandleFunc("/company", corporationHandler.CreateCorporation).Methods("POST")
	protected.HandleFunc("/company/join", corporationHandler.JoinCorporation).Methods("POST")
	protected.HandleFunc("/company/leave", corporationHandler.LeaveCorporation).Methods("POST")

	protected.HandleFunc("/warnings", warningHandler.GetWarnings).Methods("GET")
	protected.HandleFunc("/warnings/unread-count", warningHandler.GetUnreadCount).Methods("GET")
	protected.HandleFunc("/warnings/{id}/read", warningHandler.MarkAsRead).Methods("PUT")

	protected.HandleFunc("/notifications/register-device", notificationHandler.RegisterDevice).Methods("POST")

	// -------------------------------------------------------------------------
	// MANAGER CONSOLE (REQUIRE MANAGER ROLE)
	// -------------------------------------------------------------------------
	manager := protected.PathPrefix("/manager").Subrouter()
	manager.Use(middleware.RequireManager)

	manager.HandleFunc("/workers", managerHandler.ListWorkers).Methods("GET")
	manager.HandleFunc("/warnings", managerHandler.SendWarning).Methods("POST")
	manager.HandleFunc("/summary/generate", managerHandler.GenerateSummary).Methods("POST")
	manager.HandleFunc("/summary/history", managerHandler.GetSummaryHistory).Methods("GET")
	manager.HandleFunc("/invite-qr", corporationHandler.GetInviteQR).Methods("GET")

	// CORS configuration
	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorillaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
