package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"unit-loader/core/config"
	"unit-loader/core/loader"
	"unit-loader/core/logger"
	"unit-loader/core/middleware/auth"
	"unit-loader/core/middleware/rayid"
	"unit-loader/core/telemetry"

	"unit-loader/feature/units"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "unit-loader/docs/swagger"
)

// @title Unit Loader API
// @version 1.0
// @description API for loading code units on demand with single-flight semantics.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the unit loader server",
	Long:  `Starts the HTTP server, preloads the shared unit and serves unit load requests.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
		if err != nil {
			logg.Warn("Tracing disabled", zap.Error(err))
		}
		defer shutdownTracing(ctx)

		// 3. Wire the unit loader
		comps, err := buildComponents(ctx, cfg, logg)
		if err != nil {
			logg.Fatal("Failed to initialize unit loader", zap.Error(err))
		}
		defer comps.Close(ctx)

		// Storage is optional until the first fetch, so a missing bucket only warns.
		if comps.store != nil {
			if ok, err := comps.store.BucketExists(ctx, cfg.Storage.Bucket); err != nil || !ok {
				logg.Warn("Unit bucket is not reachable", zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
			}
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 4. Register Features
		mgr := loader.NewManager()
		unitsFeature := units.NewFeature(comps.loader, comps.manifest, logg)
		mgr.Register(unitsFeature)

		// RayID first so every later log line can carry it
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger stays public
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))
		if !cfg.Server.AuthEnabled() {
			logg.Warn("API key is empty, requests are not authenticated")
		}

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 5. Preload the shared unit
		if cfg.Server.Preload {
			if err := unitsFeature.Service().Preload(ctx); err != nil {
				logg.Error("Shared unit preload failed", zap.Error(err))
			}
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("address", cfg.Server.Address()))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
