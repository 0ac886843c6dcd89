package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"object-resolver/core/config"
	"object-resolver/core/loader"
	"object-resolver/core/logger"
	"object-resolver/core/metrics"
	"object-resolver/core/middleware/auth"
	"object-resolver/core/middleware/rayid"
	"object-resolver/core/storage"
	"object-resolver/feature/integrity"
	"object-resolver/feature/manifest"
	"object-resolver/feature/resolve"
	"object-resolver/feature/transfer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "object-resolver/docs/swagger"
)

// @title Object Resolver API
// @version 1.0
// @description API for resolving wildcard key patterns and transferring objects in S3-compatible storage.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the object resolver server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		logg := rt.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if err := rt.cfg.Server.Validate(); err != nil {
			return err
		}

		// Connect to Database (Optional)
		db := rt.connectDB()

		m := metrics.New(true)
		app, err := newApp(rt.cfg, logg, rt.client, db, m)
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port), zap.String("bucket", rt.cfg.Storage.Bucket))
			errCh <- app.Listen(rt.cfg.Server.Addr())
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		select {
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		case <-ctx.Done():
		}

		logg.Info("Shutting down server...")
		return app.ShutdownWithTimeout(rt.cfg.Server.ShutdownTimeout())
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

// newApp builds the Fiber application with middleware and every feature loaded.
func newApp(cfg *config.Config, logg *zap.Logger, client storage.Client, db *gorm.DB, m *metrics.Metrics) (*fiber.App, error) {
	prefixes, err := resolve.Prefixes(cfg.Resolver.PatternList())
	if err != nil {
		return nil, fmt.Errorf("invalid configured patterns: %w", err)
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// RayID first so every later log line carries it
	app.Use(rayid.New())
	app.Use(recover.New())
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
	if cfg.Server.Metrics && m != nil {
		app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	}

	app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

	manifests := manifest.NewFeature(db, logg)
	var store resolve.ManifestStore
	if manifests.IsEnabled() {
		store = manifests.Store()
	}

	mgr := loader.NewManager(logg)
	mgr.Register(manifests)
	mgr.Register(resolve.NewFeature(client, cfg.Storage.Bucket, logg, m, store, cfg.Resolver.Concurrency))
	mgr.Register(transfer.NewFeature(client, cfg.Storage.Bucket, logg, m))
	mgr.Register(integrity.NewFeature(client, cfg.Storage.Bucket, prefixes, logg, db, m))

	if err := mgr.LoadAll(app); err != nil {
		return nil, err
	}
	return app, nil
}

