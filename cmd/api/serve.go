package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	appHTTP "github.com/cmlabs-hris/officehr-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Bool("migrate", false, "Apply pending migrations before serving")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if applyMigrations, _ := cmd.Flags().GetBool("migrate"); applyMigrations {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize local storage: %w", err)
	}

	svc, err := newServices(cfg, db, fileStorage)
	if err != nil {
		return err
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Env:            cfg.App.Env,
			AllowedOrigins: cfg.App.CORSOrigins,
			AvatarDir:      filepath.Join(cfg.Storage.BasePath, "avatars"),
		},
		JWTService,
		appHTTP.NewEmployeeHandler(svc.employee),
		appHTTP.NewMasterHandler(svc.master),
		appHTTP.NewAttendanceHandler(svc.attendance),
		appHTTP.NewLeaveHandler(svc.leave),
		appHTTP.NewPayrollHandler(svc.payroll),
		appHTTP.NewDocumentHandler(svc.document, cfg.Storage.MaxUploadSize),
		appHTTP.NewTaskHandler(svc.task),
		appHTTP.NewDashboardHandler(svc.dashboard),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
