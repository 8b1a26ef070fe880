package cli

import (
	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/dto"
	"github.com/spf13/cobra"
)

func (c *CLI) userCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Учётные записи приложения",
	}

	cmd.AddCommand(c.userAddCmd(), c.userWhoamiCmd())
	return cmd
}

// Создание учётных записей доступно только администратору,
// поэтому здесь проверяется право delete - его имеет только он
func (c *CLI) userAddCmd() *cobra.Command {
	var username, password, role string
	var employeeID int64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Создать учётную запись",
		RunE: c.run(domain.PermissionDelete, func(cmd *cobra.Command, args []string) error {
			req := &dto.CreateUserRequest{
				Username: username,
				Password: password,
				Role:     role,
			}
			if employeeID > 0 {
				req.EmployeeID = &employeeID
			}

			user, err := c.users.Create(cmd.Context(), req)
			if err != nil {
				return describeError(err)
			}

			c.record("add", "user", user.Username)
			cmd.Printf("Учётная запись %q создана, роль %s\n", user.Username, user.Role)
			return nil
		}),
	}

	cmd.Flags().StringVar(&username, "username", "", "имя пользователя (обязательно)")
	cmd.Flags().StringVar(&password, "new-password", "", "пароль (обязательно)")
	cmd.Flags().StringVar(&role, "role", domain.RoleViewer, "роль: admin, editor или viewer")
	cmd.Flags().Int64Var(&employeeID, "employee", 0, "id связанного сотрудника")
	return cmd
}

func (c *CLI) userWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Текущий пользователь и его роль",
		RunE: c.run(domain.PermissionView, func(cmd *cobra.Command, args []string) error {
			user := c.auth.CurrentUser()
			cmd.Printf("%s (%s)\n", user.Username, user.Role)
			return nil
		}),
	}
}
