package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	apperrors "task-manager.com/task-manager/internal/errors"
	httpapi "task-manager.com/task-manager/internal/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tasks table over HTTP",
	Long:  "Exposes an SQL-backed tasks table as the HTTP resource used by TASKS_BACKEND=http",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.Backend.IsSQL() {
			return fmt.Errorf("%w: serve needs an SQL backend, got %q", apperrors.ErrConfiguration, cfg.Backend)
		}

		taskRepo, err := openSQLRepository(cfg)
		if err != nil {
			return err
		}
		defer taskRepo.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := taskRepo.EnsureSchema(ctx); err != nil {
			return err
		}

		e := echo.New()
		e.HideBanner = true
		httpapi.Register(e, httpapi.NewHandler(taskRepo), cfg.DatabaseName, cfg.RateLimit)

		go func() {
			log.Printf("HTTP server listening on %s/%s", cfg.AppURL, cfg.DatabaseName)
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("server stopped: %v", err)
				stop()
			}
		}()

		<-ctx.Done()

		echoCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := e.Shutdown(echoCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}

		log.Println("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
