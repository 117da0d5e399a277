package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smart-waste/internal/api"
	"smart-waste/internal/config"
	"smart-waste/internal/metrics"
	"smart-waste/internal/modules/analysis"
	"smart-waste/internal/modules/assignments"
	"smart-waste/internal/modules/bins"
	"smart-waste/internal/modules/collections"
	"smart-waste/internal/modules/households"
	"smart-waste/internal/modules/maintenance"
	"smart-waste/internal/modules/routes"
	"smart-waste/internal/modules/sensors"
	"smart-waste/internal/modules/users"
	"smart-waste/internal/modules/vehicles"
	"smart-waste/internal/modules/wastetypes"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	// 1. --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	e := echo.New()
	e.HideBanner = true

	// 2. --- Middleware ---
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.ClientOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	metrics.RegisterDefault()
	e.Use(metrics.Middleware())

	// 3. --- Database Connection ---
	// The pool is shared across every module repository.
	dbConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to parse database configuration: %v", err)
	}

	dbPool, err := pgxpool.NewWithConfig(context.Background(), dbConfig)
	if err != nil {
		log.Fatalf("Unable to create connection pool: %v\n", err)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(context.Background()); err != nil {
		log.Fatalf("Unable to ping database: %v\n", err)
	}
	e.Logger.Info("Successfully connected to the database!")

	// 4. --- Dependency Injection (Wiring everything up) ---
	analysisRepo := analysis.NewRepository(dbPool)
	analysisService := analysis.NewService(analysisRepo)
	analysisHandler := analysis.NewHandler(analysisService)

	routeRepo := routes.NewRepository(dbPool)
	routeService := routes.NewService(routeRepo)
	routeHandler := routes.NewHandler(routeService)

	householdRepo := households.NewRepository(dbPool)
	householdService := households.NewService(householdRepo)
	householdHandler := households.NewHandler(householdService)

	binRepo := bins.NewRepository(dbPool)
	binService := bins.NewService(binRepo)
	binHandler := bins.NewHandler(binService)

	handlers := api.Handlers{
		Households:  householdHandler,
		Bins:        binHandler,
		Analysis:    analysisHandler,
		Routes:      routeHandler,
		Users:       users.NewHandler(users.NewRepository(dbPool)),
		Vehicles:    vehicles.NewHandler(vehicles.NewRepository(dbPool)),
		Collections: collections.NewHandler(collections.NewRepository(dbPool)),
		Sensors:     sensors.NewHandler(sensors.NewRepository(dbPool)),
		Maintenance: maintenance.NewHandler(maintenance.NewRepository(dbPool)),
		WasteTypes:  wastetypes.NewHandler(wastetypes.NewRepository(dbPool)),
		Assignments: assignments.NewHandler(assignments.NewRepository(dbPool)),
	}

	// 5. --- Initialize Router ---
	api.SetupRoutes(e, handlers)

	// 6. --- Start Server with graceful shutdown logic ---
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server an error occurred:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal("Server forced to shutdown:", err)
	}
	log.Println("Server exiting")
}
