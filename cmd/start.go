package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"descriptor-sync/core/config"
	"descriptor-sync/core/loader"
	"descriptor-sync/core/logger"
	"descriptor-sync/core/metrics"
	"descriptor-sync/core/middleware/auth"
	"descriptor-sync/core/middleware/rayid"
	"descriptor-sync/feature/ghosts"
	"descriptor-sync/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "descriptor-sync/docs/swagger"
)

// @title Descriptor Sync API
// @version 1.0
// @description API for reconciling live objects with descriptor snapshots.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the descriptor sync server",
	Long: `Starts the HTTP server, initializes all enabled features and reconciles
the snapshot from storage every SNAPSHOT_INTERVAL_SECONDS.`,
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

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// 3. Connect to Database and Storage (Optional)
		db, client := connect(cfg, logg)

		recorder := metrics.NewRecorder()
		svc, err := newGhostService(ctx, cfg, logg, db, client, recorder)
		if err != nil {
			logg.Warn("Ghosts feature disabled", zap.Error(err))
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		mgr := loader.NewManager(logg)
		mgr.Register(integrity.NewFeature(integrity.NewService(client, cfg.Storage, cfg.Snapshot.Object, db, logg)))
		mgr.Register(ghosts.NewFeature(svc))

		// Middleware Registration
		// RayID must be first to trace everything
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

		// Public endpoints
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", recorder.Handler())

		// Everything registered after this point requires the API key
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			return app.Listen(cfg.Server.Addr())
		})

		if svc != nil && cfg.Snapshot.IntervalSeconds > 0 {
			interval := time.Duration(cfg.Snapshot.IntervalSeconds) * time.Second
			g.Go(func() error {
				logg.Info("Starting snapshot poller", zap.Duration("interval", interval))
				if err := svc.Run(gctx, interval); err != nil {
					logg.Warn("Snapshot poller stopped", zap.Error(err))
				}
				return nil
			})
		}

		// Graceful Shutdown
		g.Go(func() error {
			<-gctx.Done()
			logg.Info("Shutting down server...")
			return app.ShutdownWithTimeout(10 * time.Second)
		})

		if err := g.Wait(); err != nil {
			logg.Error("Server stopped with error", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
