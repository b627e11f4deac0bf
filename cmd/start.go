package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"structure-manager/core/config"
	"structure-manager/core/database"
	"structure-manager/core/loader"
	"structure-manager/core/logger"
	"structure-manager/core/middleware/auth"
	"structure-manager/core/middleware/rayid"
	"structure-manager/core/storage"

	"structure-manager/feature/editor"
	"structure-manager/feature/snapshot"
	"structure-manager/feature/structure"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "structure-manager/docs/swagger"
)

// @title Structure Manager API
// @version 1.0
// @description API for reconciling and editing the tracking structure.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the structure manager server",
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

		// 3. Connect to Database (optional; the structure feature
		// disables itself without it)
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to tracker database", zap.String("database", cfg.Database.Name))
		}

		// 4. Initialize Storage (optional; archiving degrades to a warning)
		var store storage.Client
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Optional storage client creation failed", zap.Error(err))
		} else {
			store = client
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// 5. Initialize Feature Loader
		mgr := loader.NewManager()

		var archiver structure.Archiver
		snapshotFeature := snapshot.NewFeature(store, cfg.Storage.Bucket, logg)
		if snapshotFeature.IsEnabled() {
			archiver = snapshotFeature.Service()
		}

		mgr.Register(structure.NewFeature(db, logg, archiver, cfg.Reconcile))
		mgr.Register(snapshotFeature)
		mgr.Register(editor.NewFeature(logg))

		// Middleware: RayID first so everything downstream is traceable.
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

		// Swagger documentation stays public.
		app.Get("/swagger/*", swagger.HandlerDefault)

		// Everything else sits behind the API key.
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 6. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
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
