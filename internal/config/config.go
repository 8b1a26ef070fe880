package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Config содержит настройки приложения.
// Изменяемые из приложения параметры (кэш, копии, выгрузки)
// живут отдельно в файле настроек, см. internal/settings.
type Config struct {
	Database     DatabaseConfig
	Activity     ActivityConfig
	Seed         SeedConfig
	SettingsPath string
}

// DatabaseConfig - настройки локальной базы данных
type DatabaseConfig struct {
	Path string
}

// ActivityConfig - настройки журнала действий
type ActivityConfig struct {
	Dir string
}

// SeedConfig - пароли стартовых учётных записей.
// Значения по умолчанию годятся только для локального использования;
// в реальной установке задаются через окружение.
type SeedConfig struct {
	AdminPassword  string
	EditorPassword string
	ViewerPassword string
}

// Load загружает конфигурацию из .env файла и переменных окружения
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	return &Config{
		Database: DatabaseConfig{
			Path: getEnv("DIRECTORY_DB_PATH", "data/employees.db"),
		},
		Activity: ActivityConfig{
			Dir: getEnv("DIRECTORY_LOG_DIR", "logs"),
		},
		Seed: SeedConfig{
			AdminPassword:  getEnv("DIRECTORY_ADMIN_PASSWORD", "admin123"),
			EditorPassword: getEnv("DIRECTORY_EDITOR_PASSWORD", "editor123"),
			ViewerPassword: getEnv("DIRECTORY_VIEWER_PASSWORD", "user123"),
		},
		SettingsPath: getEnv("DIRECTORY_SETTINGS_PATH", "settings.yaml"),
	}
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
