package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"table-compare/core/config"
	"table-compare/core/database"
	"table-compare/core/loader"
	"table-compare/core/logger"
	"table-compare/core/middleware/auth"
	"table-compare/core/middleware/rayid"
	"table-compare/core/source"
	"table-compare/core/storage"

	"table-compare/feature/compare"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "table-compare/docs/swagger"
)

// @title Table Compare API
// @version 1.0
// @description API for comparing versions of tabular datasets and reviewing the differences.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the comparison server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
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

		// 3. Connect to Database (Optional, only needed for db: locators)
		opener := &source.Opener{
			Bucket: cfg.Storage.Bucket,
			Cache:  source.NewCache(cfg.Compare.CacheTTL()),
		}
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed, db: datasets disabled", zap.Error(err))
		} else {
			opener.DB = conn
			logg.Info("Connected to dataset database", zap.String("driver", cfg.Database.Driver))
		}

		// 4. Initialize Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		opener.Storage = store

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
			ReadTimeout:           cfg.Server.ReadTimeout(),
		})

		// 5. Register Features
		mgr := loader.NewManager(logg)
		if cfg.Compare.DataDir == "" {
			logg.Info("File datasets disabled for the API, set compare.data_dir to enable")
		} else {
			logg.Info("File datasets confined", zap.String("data_dir", cfg.Compare.DataDir))
		}
		compareFeature := compare.NewFeature(opener, store, cfg.Storage.Bucket, cfg.Compare, logg)
		mgr.Register(compareFeature)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go compareFeature.Service().Run(ctx)

		// RayID first so every later log line carries it
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
		app.Use(auth.New(auth.Config{
			ApiKey: cfg.Server.ApiKey,
			Skip: func(c *fiber.Ctx) bool {
				return strings.HasPrefix(c.Path(), "/swagger")
			},
		}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		cancel()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
