// Пакет server — HTTP-сервер webhelp с graceful shutdown.
// Без TLS — TLS termination на reverse proxy.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dcplusplus/webhelp/internal/api/handlers"
	"github.com/dcplusplus/webhelp/internal/api/middleware"
	"github.com/dcplusplus/webhelp/internal/config"
)

// Server — HTTP-сервер webhelp.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New создаёт HTTP-сервер с настроенными routes и middleware.
func New(cfg *config.Config, logger *slog.Logger, help *handlers.HelpHandler, health *handlers.HealthHandler) *Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      NewRouter(cfg, logger, help, health),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// NewRouter собирает chi-маршрутизатор: health, метрики и справку под cfg.MountPath.
func NewRouter(cfg *config.Config, logger *slog.Logger, help *handlers.HelpHandler, health *handlers.HealthHandler) http.Handler {
	router := chi.NewRouter()

	// Глобальные middleware (применяются ко ВСЕМ маршрутам)
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(middleware.MetricsMiddleware(cfg.MountPath))
	router.Use(middleware.RequestLogger(logger))
	router.Use(chimw.Recoverer)

	router.Get("/health/live", health.HealthLive)
	router.Get("/health/ready", health.HealthReady)
	router.Get("/metrics", health.GetMetrics)

	router.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(cfg.RequestTimeout))

		// Без завершающего слеша относительный action формы указывал бы мимо справки
		redirect := mountRedirect(cfg.MountPath)
		r.Method(http.MethodGet, cfg.MountPath, redirect)
		r.Method(http.MethodHead, cfg.MountPath, redirect)
		r.Method(http.MethodPost, cfg.MountPath, redirect)

		for _, pattern := range []string{cfg.MountPath + "/", cfg.MountPath + "/*"} {
			r.Method(http.MethodGet, pattern, help)
			r.Method(http.MethodHead, pattern, help)
			r.Method(http.MethodPost, pattern, help)
		}
	})

	return router
}

// mountRedirect перенаправляет {mount} на {mount}/ с сохранением query.
// POST получает 308, чтобы браузер повторил его с тем же телом.
func mountRedirect(mountPath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target := mountPath + "/"
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		code := http.StatusMovedPermanently
		if r.Method == http.MethodPost {
			code = http.StatusPermanentRedirect
		}
		http.Redirect(w, r, target, code)
	})
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
			slog.String("mount_path", s.cfg.MountPath),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
