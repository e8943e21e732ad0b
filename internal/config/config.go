// Пакет config — загрузка и валидация конфигурации webhelp
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Допустимые реализации хранилища сессий.
const (
	SessionStoreCookie = "cookie"
	SessionStoreMemory = "memory"
)

// Config содержит все параметры конфигурации webhelp.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int `env:"WH_PORT" envDefault:"8080"`
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level `env:"WH_LOG_LEVEL" envDefault:"info"`
	// Формат логов (json, text)
	LogFormat string `env:"WH_LOG_FORMAT" envDefault:"json"`

	// --- Контент ---

	// Корневая директория справки: по одной поддиректории на язык
	ContentRoot string `env:"WH_CONTENT_ROOT,required"`
	// Префикс URL, под которым обслуживается справка
	MountPath string `env:"WH_MOUNT_PATH" envDefault:"/webhelp"`
	// Язык по умолчанию (наличие директории не проверяется)
	DefaultLanguage string `env:"WH_DEFAULT_LANGUAGE" envDefault:"en-US"`
	// Документ для пустого имени
	DefaultDocument string `env:"WH_DEFAULT_DOCUMENT" envDefault:"index.html"`

	// --- Сессии ---

	// Хранилище сессий: cookie или memory
	SessionStore string `env:"WH_SESSION_STORE" envDefault:"cookie"`
	// Ключ шифрования cookie-сессий (пусто — случайный ключ на время жизни процесса)
	SessionSecret string `env:"WH_SESSION_SECRET"`
	// Время жизни сессии
	SessionTTL time.Duration `env:"WH_SESSION_TTL" envDefault:"720h"`
	// Максимальное количество сессий в памяти (только memory)
	SessionMaxEntries int `env:"WH_SESSION_MAX_ENTRIES" envDefault:"10000"`
	// Secure flag для cookie (true за HTTPS)
	SessionSecureCookie bool `env:"WH_SESSION_SECURE_COOKIE" envDefault:"false"`

	// --- Таймауты ---

	// Таймаут обработки одного запроса
	RequestTimeout time.Duration `env:"WH_REQUEST_TIMEOUT" envDefault:"30s"`
	// Таймаут graceful shutdown HTTP-сервера
	ShutdownTimeout time.Duration `env:"WH_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Load загружает конфигурацию из переменных окружения, валидирует
// значения и возвращает Config или ошибку.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate проверяет диапазоны и нормализует значения после парсинга.
func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("WH_PORT: значение %d вне допустимого диапазона 1-65535", c.Port)
	}

	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("WH_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", c.LogFormat)
	}

	info, err := os.Stat(c.ContentRoot)
	if err != nil {
		return fmt.Errorf("WH_CONTENT_ROOT: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("WH_CONTENT_ROOT: %s не является директорией", c.ContentRoot)
	}

	// Префикс всегда с ведущим и без завершающего слеша
	c.MountPath = "/" + strings.Trim(c.MountPath, "/")
	if c.MountPath == "/" {
		return fmt.Errorf("WH_MOUNT_PATH: корневой префикс не поддерживается")
	}

	if strings.TrimSpace(c.DefaultLanguage) == "" {
		return fmt.Errorf("WH_DEFAULT_LANGUAGE: пустое значение")
	}
	if c.DefaultDocument == "" || strings.Contains(c.DefaultDocument, "/") {
		return fmt.Errorf("WH_DEFAULT_DOCUMENT: недопустимое значение %q", c.DefaultDocument)
	}

	switch c.SessionStore {
	case SessionStoreCookie, SessionStoreMemory:
	default:
		return fmt.Errorf("WH_SESSION_STORE: недопустимое значение %q, допустимые: cookie, memory", c.SessionStore)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("WH_SESSION_TTL: должно быть положительным, получено %v", c.SessionTTL)
	}
	if c.SessionMaxEntries < 1 {
		return fmt.Errorf("WH_SESSION_MAX_ENTRIES: значение %d меньше 1", c.SessionMaxEntries)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("WH_REQUEST_TIMEOUT: должно быть положительным, получено %v", c.RequestTimeout)
	}
	return nil
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
