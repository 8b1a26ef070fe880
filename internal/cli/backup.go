package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/employee-directory/internal/domain"
	"github.com/spf13/cobra"
)

func (c *CLI) backupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Резервные копии базы данных",
	}

	cmd.AddCommand(c.backupCreateCmd(), c.backupListCmd(), c.backupRestoreCmd())
	return cmd
}

func (c *CLI) backupCreateCmd() *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Создать резервную копию",
		RunE: c.run(domain.PermissionEdit, func(cmd *cobra.Command, args []string) error {
			path, err := c.backups.Create(comment)
			if err != nil {
				return err
			}

			c.record("backup", "database", path)
			cmd.Printf("Резервная копия создана: %s\n", path)
			return nil
		}),
	}

	cmd.Flags().StringVar(&comment, "comment", "", "комментарий к копии")
	return cmd
}

func (c *CLI) backupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Список резервных копий",
		RunE: c.run(domain.PermissionView, func(cmd *cobra.Command, args []string) error {
			backups, err := c.backups.List()
			if err != nil {
				return err
			}

			if len(backups) == 0 {
				cmd.Println("Резервных копий нет")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "Файл\tРазмер\tДата\tКомментарий")
			for _, b := range backups {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
					b.Name, b.Size, b.CreatedAt.Format("2006-01-02 15:04:05"), b.Comment)
			}
			w.Flush()
			return nil
		}),
	}
}

// Восстановление перезаписывает рабочую базу, поэтому требует права delete
func (c *CLI) backupRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <путь>",
		Short: "Восстановить базу из копии",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(domain.PermissionDelete, func(cmd *cobra.Command, args []string) error {
			if err := c.backups.Restore(args[0]); err != nil {
				return err
			}

			c.record("restore", "database", args[0])
			cmd.Printf("База восстановлена из %s\n", args[0])
			return nil
		}),
	}
}

func (c *CLI) historyCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Последние действия пользователей",
		RunE: c.run(domain.PermissionView, func(cmd *cobra.Command, args []string) error {
			entries, err := c.activity.Tail(limit)
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				cmd.Println("История пуста")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "Время\tПользователь\tДействие\tОбъект\tДетали")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					e.Timestamp.Format("2006-01-02 15:04:05"), e.Username, e.Action, e.Entity, e.Details)
			}
			w.Flush()
			return nil
		}),
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "сколько записей показать")
	return cmd
}
