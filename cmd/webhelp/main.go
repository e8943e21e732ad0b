// Точка входа webhelp — сервер локализованной справки DC++.
// Загружает конфигурацию, открывает корень справки, создаёт хранилище сессий,
// обработчики и HTTP-сервер с graceful shutdown.
package main

import (
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dcplusplus/webhelp/internal/api/handlers"
	"github.com/dcplusplus/webhelp/internal/config"
	"github.com/dcplusplus/webhelp/internal/content"
	"github.com/dcplusplus/webhelp/internal/language"
	"github.com/dcplusplus/webhelp/internal/server"
	"github.com/dcplusplus/webhelp/internal/session"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("webhelp запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("content_root", cfg.ContentRoot),
	)

	// 3. Корень справки
	library, err := content.New(cfg.ContentRoot)
	if err != nil {
		logger.Error("Ошибка открытия корня справки", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if langs, err := library.Languages(); err == nil {
		logger.Info("Языки справки найдены", slog.Int("count", len(langs)))
	}
	if !library.DirectoryExists(cfg.DefaultLanguage) {
		logger.Warn("Нет директории языка по умолчанию, запросы без выбора языка получат ошибку",
			slog.String("default_language", cfg.DefaultLanguage),
		)
	}

	// 4. Хранилище сессий
	sessions, err := newSessionStore(cfg)
	if err != nil {
		logger.Error("Ошибка создания хранилища сессий", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.SessionStore == config.SessionStoreCookie && cfg.SessionSecret == "" {
		logger.Warn("WH_SESSION_SECRET не задан, выбор языка не сохраняется между рестартами")
	}
	logger.Info("Хранилище сессий создано", slog.String("store", cfg.SessionStore))

	// 5. Обработчики
	resolver := language.NewResolver(library, cfg.DefaultLanguage)
	helpHandler := handlers.NewHelpHandler(
		library, resolver, sessions,
		cfg.MountPath, cfg.DefaultDocument,
		logger,
	)
	healthHandler := handlers.NewHealthHandler(library, cfg.DefaultLanguage)

	// 6. Создание и запуск HTTP-сервера
	srv := server.New(cfg, logger, helpHandler, healthHandler)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("webhelp остановлен")
}

// newSessionStore создаёт хранилище сессий по WH_SESSION_STORE.
func newSessionStore(cfg *config.Config) (session.Store, error) {
	if cfg.SessionStore == config.SessionStoreMemory {
		return session.NewMemoryStore(
			cfg.SessionMaxEntries, cfg.SessionTTL,
			cfg.MountPath, cfg.SessionSecureCookie,
			prometheus.DefaultRegisterer,
		), nil
	}
	return session.NewCookieStore(
		cfg.SessionSecret, cfg.MountPath,
		cfg.SessionTTL, cfg.SessionSecureCookie,
	)
}
