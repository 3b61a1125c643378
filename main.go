package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"absen_map_dashboard/config"
	"absen_map_dashboard/dataset"
	"absen_map_dashboard/db"
	"absen_map_dashboard/middleware"
	"absen_map_dashboard/models"
	"absen_map_dashboard/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		if err := hashPassword(os.Args[2:]); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found") // Non-fatal in production
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	loader, cleanup, err := newLoader(cfg)
	if err != nil {
		log.Fatalf("Error preparing attendance source: %v", err)
	}
	defer cleanup()

	// A failed first load is fatal.
	store := dataset.NewStore(loader)
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.FetchTimeout)
	_, err = store.Reload(loadCtx)
	cancelLoad()
	if err != nil {
		log.Fatalf("Error loading attendance data: %v", err)
	}

	// Initialize router
	r := gin.Default()
	r.Use(middleware.RequestID())

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
		middleware.RequestIDHeader,
	}
	corsConfig.AllowMethods = []string{
		"GET",
		"POST",
	}
	r.Use(cors.New(corsConfig))

	// Setup routes
	routes.SetupRoutes(r, cfg, &timeoutStore{Store: store, timeout: cfg.FetchTimeout})

	// Run server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Printf("Dashboard listening on :%s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
}

func newLoader(cfg *config.Config) (dataset.Loader, func(), error) {
	if cfg.DataSource != config.SourcePostgres {
		client := &http.Client{Timeout: cfg.FetchTimeout}
		return dataset.NewCSVLoader(client, cfg.CSVURL), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
	defer cancel()
	database, err := db.Initialize(ctx, db.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
	})
	if err != nil {
		return nil, nil, err
	}

	loader, err := db.NewTableLoader(database, cfg.DBTable)
	if err != nil {
		database.Close()
		return nil, nil, err
	}
	return loader, func() { database.Close() }, nil
}

// timeoutStore bounds reloads triggered over HTTP by the fetch timeout.
type timeoutStore struct {
	*dataset.Store
	timeout time.Duration
}

func (s *timeoutStore) Reload(ctx context.Context) (*models.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.Store.Reload(ctx)
}

func hashPassword(args []string) error {
	if len(args) != 1 || args[0] == "" {
		return fmt.Errorf("usage: absenmap hash-password <password>")
	}
	hash, err := middleware.HashPassword(args[0])
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	fmt.Println(hash)
	return nil
}
