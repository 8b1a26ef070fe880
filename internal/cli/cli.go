package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/employee-directory/internal/activity"
	"github.com/employee-directory/internal/auth"
	"github.com/employee-directory/internal/backup"
	"github.com/employee-directory/internal/service"
	"github.com/employee-directory/internal/settings"
	"github.com/spf13/cobra"
)

// CLI собирает команды приложения поверх сервисного слоя.
// Экземпляр кэша живёт внутри сервисов и нигде не является глобальным.
type CLI struct {
	employees   service.EmployeeService
	departments service.DepartmentService
	users       service.UserService
	auth        *auth.Manager
	backups     *backup.Manager
	activity    *activity.Logger
	logger      *slog.Logger

	settings     settings.Settings
	settingsPath string

	username string
	password string
}

// New создаёт CLI с готовыми зависимостями
func New(
	employees service.EmployeeService,
	departments service.DepartmentService,
	users service.UserService,
	authManager *auth.Manager,
	backups *backup.Manager,
	activityLog *activity.Logger,
	appSettings settings.Settings,
	settingsPath string,
	logger *slog.Logger,
) *CLI {
	return &CLI{
		employees:    employees,
		departments:  departments,
		users:        users,
		auth:         authManager,
		backups:      backups,
		activity:     activityLog,
		settings:     appSettings,
		settingsPath: settingsPath,
		logger:       logger,
	}
}

// Root строит корневую команду приложения
func (c *CLI) Root() *cobra.Command {
	root := &cobra.Command{
		Use:           "directory",
		Short:         "Локальный справочник сотрудников организации",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.login(cmd)
		},
	}

	root.PersistentFlags().StringVar(&c.username, "user", os.Getenv("DIRECTORY_USER"), "имя пользователя")
	root.PersistentFlags().StringVar(&c.password, "password", os.Getenv("DIRECTORY_PASSWORD"), "пароль")

	root.AddCommand(
		c.employeeCommand(),
		c.departmentCommand(),
		c.userCommand(),
		c.exportCommand(),
		c.importCommand(),
		c.backupCommand(),
		c.historyCommand(),
		c.settingsCommand(),
	)

	return root
}

// login выполняет вход перед любой командой
func (c *CLI) login(cmd *cobra.Command) error {
	if c.username == "" {
		return fmt.Errorf("укажите пользователя через --user или DIRECTORY_USER")
	}
	return c.auth.Authenticate(cmd.Context(), c.username, c.password)
}

// run оборачивает обработчик команды: проверка права, перехват паники
// и запись длительности в журнал
func (c *CLI) run(permission string, fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		if permErr := c.auth.RequirePermission(permission); permErr != nil {
			return permErr
		}

		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				c.logger.Error("panic recovered",
					slog.Any("error", r),
					slog.String("command", cmd.CommandPath()),
				)
				err = fmt.Errorf("internal error: %v", r)
			}
			c.logger.Info("command executed",
				slog.String("command", cmd.CommandPath()),
				slog.Duration("duration", time.Since(start)),
				slog.Bool("ok", err == nil),
			)
		}()

		return fn(cmd, args)
	}
}

// record пишет действие текущего пользователя в журнал действий
func (c *CLI) record(action, entity, details string) {
	username := ""
	if user := c.auth.CurrentUser(); user != nil {
		username = user.Username
	}
	if err := c.activity.Log(username, action, entity, details); err != nil {
		c.logger.Warn("failed to write activity log", slog.Any("error", err))
	}
}
