package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/airenamify/dlgate/pkg/dlapi"
	"github.com/airenamify/dlgate/pkg/dlapi/config"
	"github.com/airenamify/dlgate/pkg/dlapi/routes"
	"github.com/airenamify/dlgate/pkg/dlapi/services"
	"github.com/airenamify/dlgate/pkg/dlog"
	"github.com/airenamify/dlgate/pkg/relstore"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the download gateway",
	Long: `Starts the HTTP gateway. Configuration comes from the environment (and a
.env file in development); see the README for the variables.`,
	RunE: serve,
}

var seedDir string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&seedDir, "seed-dir", "", "With STORE_BACKEND=memory, load this directory into the bucket (keys are paths relative to it)")
}

func serve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.ValidateEnv()
	if err != nil {
		dlog.NewDefault().Fatalf("❌ %v", err)
	}

	cfg.Print(log.Printf)

	logger := dlog.New(dlog.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	svcs, err := services.NewServices(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	if mem, ok := svcs.Store.(*relstore.MemoryStore); ok && seedDir != "" {
		n, err := seedMemoryStore(mem, seedDir)
		if err != nil {
			return fmt.Errorf("failed to seed store: %w", err)
		}
		logger.Info("seeded memory store", "dir", seedDir, "objects", n)
	}

	if err := svcs.Store.CheckBucket(ctx); err != nil {
		logger.Warn("release bucket check failed", "bucket", cfg.S3Bucket, "error", err)
	}

	api := dlapi.NewApi()
	routes.RegisterAPI(api.Api, svcs)
	api.Fallback(routes.StaticHandler(cfg.StaticDir, logger))

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Router,
		ReadHeaderTimeout: cfg.ReadTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	log.Printf("🚀 Gateway starting on %s\n", addr)
	log.Printf("📦 Download: http://localhost%s%s?os=mac&arch=arm64\n", addr, routes.DownloadPath)
	log.Printf("📚 OpenAPI docs: http://localhost%s/docs\n", addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// seedMemoryStore copies every regular file under dir into store.
func seedMemoryStore(store *relstore.MemoryStore, dir string) (int, error) {
	n := 0
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		store.Put(filepath.ToSlash(rel), data)
		n++
		return nil
	})
	return n, err
}
