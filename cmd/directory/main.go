package main

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/employee-directory/internal/activity"
	"github.com/employee-directory/internal/auth"
	"github.com/employee-directory/internal/backup"
	"github.com/employee-directory/internal/cache"
	"github.com/employee-directory/internal/cli"
	"github.com/employee-directory/internal/config"
	"github.com/employee-directory/internal/repository"
	"github.com/employee-directory/internal/service"
	"github.com/employee-directory/internal/settings"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

func main() {
	// Инициализация логгера
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	// Загрузка конфигурации и пользовательских настроек
	cfg := config.Load()

	appSettings, err := settings.Load(cfg.SettingsPath)
	if err != nil {
		logger.Error("failed to load settings", slog.Any("error", err))
		os.Exit(1)
	}

	// Подключение к БД
	db, err := openDB(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("failed to get sql.DB", slog.Any("error", err))
		os.Exit(1)
	}
	defer sqlDB.Close()

	// Запуск миграций
	if err := runMigrations(sqlDB); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// Инициализация репозиториев
	empRepo := repository.NewEmployeeRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Кэш чтения: один экземпляр на процесс, передаётся сервисам явно
	readCache := cache.New(time.Duration(appSettings.CacheTTLSeconds) * time.Second)

	// Инициализация сервисов
	empService := service.NewEmployeeService(empRepo, deptRepo, readCache)
	deptService := service.NewDepartmentService(deptRepo, empRepo, readCache)
	userService := service.NewUserService(userRepo, empRepo)

	// Аутентификация и стартовые учётные записи
	authManager := auth.NewManager(userRepo, logger)
	if err := authManager.EnsureDefaultUsers(context.Background(), cfg.Seed); err != nil {
		logger.Error("failed to seed default users", slog.Any("error", err))
		os.Exit(1)
	}

	backups := backup.NewManager(cfg.Database.Path, appSettings.BackupDir, appSettings.BackupKeep)

	activityLog, err := activity.NewLogger(cfg.Activity.Dir)
	if err != nil {
		logger.Error("failed to open activity log", slog.Any("error", err))
		os.Exit(1)
	}
	defer activityLog.Close()

	app := cli.New(empService, deptService, userService, authManager, backups, activityLog, appSettings, cfg.SettingsPath, logger)

	if err := app.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		os.Exit(1)
	}
}

// openDB открывает файл SQLite, создавая каталог при необходимости
func openDB(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	return db, nil
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
