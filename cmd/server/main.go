package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"project-manager/internal/config"
	apphttp "project-manager/internal/http"
	"project-manager/internal/repository/sqlstore"
	"project-manager/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	configureLogger(logger, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlstore.Open(ctx, sqlstore.Options{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		Path:         cfg.Database.Path,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	})
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()
	logger.Infof("using %s store", db.Dialect())

	userRepo := sqlstore.NewUserRepository(db)
	projectRepo := sqlstore.NewProjectRepository(db)

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := projectRepo.Init(ctx); err != nil {
		logger.Fatalf("init project repository: %v", err)
	}

	userService := service.NewUserService(userRepo, db, cfg.Pagination.MaxLimit, logger.WithField("component", "users"))
	projectService := service.NewProjectService(projectRepo, userService, db, cfg.Pagination.MaxLimit, logger.WithField("component", "projects"))

	gin.SetMode(gin.ReleaseMode)
	handler := apphttp.NewHandler(userService, projectService, db, logger)
	router, err := apphttp.NewRouter(handler, apphttp.RouterOptions{AllowOrigins: cfg.CORS.AllowOrigins})
	if err != nil {
		logger.Fatalf("build router: %v", err)
	}

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func configureLogger(logger *logrus.Logger, cfg config.Config) {
	if strings.EqualFold(cfg.Log.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warnf("invalid log level %q, using info", cfg.Log.Level)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}
