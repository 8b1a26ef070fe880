package cli

import (
	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/settings"
	"github.com/spf13/cobra"
)

func (c *CLI) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Настройки приложения",
	}

	cmd.AddCommand(c.settingsShowCmd(), c.settingsSetCmd())
	return cmd
}

func (c *CLI) settingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Показать текущие настройки",
		RunE: c.run(domain.PermissionView, func(cmd *cobra.Command, args []string) error {
			cmd.Printf("Каталог выгрузок:   %s\n", c.settings.ExportDir)
			cmd.Printf("Каталог копий:      %s\n", c.settings.BackupDir)
			cmd.Printf("Хранить копий:      %d\n", c.settings.BackupKeep)
			cmd.Printf("TTL кэша (секунды): %d\n", c.settings.CacheTTLSeconds)
			return nil
		}),
	}
}

// Изменение настроек вступает в силу при следующем запуске
func (c *CLI) settingsSetCmd() *cobra.Command {
	var exportDir, backupDir string
	var backupKeep, cacheTTL int

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Изменить настройки",
		RunE: c.run(domain.PermissionEdit, func(cmd *cobra.Command, args []string) error {
			s := c.settings
			if cmd.Flags().Changed("export-dir") {
				s.ExportDir = exportDir
			}
			if cmd.Flags().Changed("backup-dir") {
				s.BackupDir = backupDir
			}
			if cmd.Flags().Changed("backup-keep") {
				s.BackupKeep = backupKeep
			}
			if cmd.Flags().Changed("cache-ttl") {
				s.CacheTTLSeconds = cacheTTL
			}

			if err := settings.Save(c.settingsPath, s); err != nil {
				return err
			}
			c.settings = s

			c.record("edit", "settings", c.settingsPath)
			cmd.Println("Настройки сохранены")
			return nil
		}),
	}

	cmd.Flags().StringVar(&exportDir, "export-dir", "", "каталог для выгрузок")
	cmd.Flags().StringVar(&backupDir, "backup-dir", "", "каталог резервных копий")
	cmd.Flags().IntVar(&backupKeep, "backup-keep", 0, "сколько копий хранить")
	cmd.Flags().IntVar(&cacheTTL, "cache-ttl", 0, "срок жизни кэша в секундах")
	return cmd
}
