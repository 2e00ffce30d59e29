package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gistapi/gistapi/config"
	"gistapi/gistapi/controllers"
	"gistapi/gistapi/middlewares"
	"gistapi/gistapi/routes"
	"gistapi/gistapi/services/gists"
	httputils "gistapi/gistapi/utils/http"
	"gistapi/gistapi/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()

	client := httputils.New(cfg.HTTPTimeout, cfg.HTTPRetries, cfg.HTTPBackoff)
	gistSvc := gists.NewService(client, cfg.GithubBaseURL)
	healthCtrl := controllers.NewHealthController()
	searchCtrl := controllers.NewSearchController(gistSvc)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middlewares.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Mount("/ping", routes.HealthRoutes(healthCtrl))
	r.Mount("/api/v1", routes.SearchRoutes(searchCtrl))

	addr := cfg.Host + ":" + cfg.Port
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
