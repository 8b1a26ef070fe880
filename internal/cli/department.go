package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/dto"
	"github.com/employee-directory/internal/service"
	"github.com/spf13/cobra"
)

func (c *CLI) departmentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "department",
		Short: "Работа с подразделениями",
	}

	cmd.AddCommand(
		c.departmentListCmd(),
		c.departmentTreeCmd(),
		c.departmentAddCmd(),
		c.departmentUpdateCmd(),
		c.departmentDeleteCmd(),
	)
	return cmd
}

func (c *CLI) departmentListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Список всех подразделений",
		RunE: c.run(domain.PermissionView, func(cmd *cobra.Command, args []string) error {
			departments, err := c.departments.List(cmd.Context())
			if err != nil {
				return describeError(err)
			}

			if len(departments) == 0 {
				cmd.Println("Подразделения не найдены")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tНазвание\tРодитель\tРуководитель")
			for _, dept := range departments {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
					dept.ID, dept.Name, optID64(dept.ParentID), optID64(dept.ManagerID))
			}
			w.Flush()
			return nil
		}),
	}
}

func (c *CLI) departmentTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Иерархия подразделений",
		RunE: c.run(domain.PermissionView, func(cmd *cobra.Command, args []string) error {
			roots, err := c.departments.Tree(cmd.Context())
			if err != nil {
				return describeError(err)
			}

			for _, root := range roots {
				printTree(cmd, root, 0)
			}
			return nil
		}),
	}
}

func printTree(cmd *cobra.Command, node *service.DepartmentNode, depth int) {
	cmd.Printf("%s%s (id=%d)\n", strings.Repeat("  ", depth), node.Department.Name, node.Department.ID)
	for _, child := range node.Children {
		printTree(cmd, child, depth+1)
	}
}

func (c *CLI) departmentAddCmd() *cobra.Command {
	var name string
	var parentID, managerID int64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Добавить подразделение",
		RunE: c.run(domain.PermissionAdd, func(cmd *cobra.Command, args []string) error {
			req := &dto.DepartmentRequest{Name: name}
			if parentID > 0 {
				req.ParentID = &parentID
			}
			if managerID > 0 {
				req.ManagerID = &managerID
			}

			dept, err := c.departments.Create(cmd.Context(), req)
			if err != nil {
				return describeError(err)
			}

			c.record("add", "department", dept.Name)
			cmd.Printf("Подразделение добавлено, id=%d\n", dept.ID)
			return nil
		}),
	}

	cmd.Flags().StringVar(&name, "name", "", "название (обязательно)")
	cmd.Flags().Int64Var(&parentID, "parent", 0, "id родительского подразделения")
	cmd.Flags().Int64Var(&managerID, "manager", 0, "id руководителя")
	return cmd
}

func (c *CLI) departmentUpdateCmd() *cobra.Command {
	var name string
	var parentID, managerID int64

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Заменить данные подразделения",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(domain.PermissionEdit, func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			current, err := c.departments.GetByID(cmd.Context(), id)
			if err != nil {
				return describeError(err)
			}

			if !cmd.Flags().Changed("name") {
				name = current.Name
			}
			if !cmd.Flags().Changed("parent") && current.ParentID != nil {
				parentID = *current.ParentID
			}
			if !cmd.Flags().Changed("manager") && current.ManagerID != nil {
				managerID = *current.ManagerID
			}

			req := &dto.DepartmentRequest{Name: name}
			if parentID > 0 {
				req.ParentID = &parentID
			}
			if managerID > 0 {
				req.ManagerID = &managerID
			}

			dept, err := c.departments.Update(cmd.Context(), id, req)
			if err != nil {
				return describeError(err)
			}

			c.record("edit", "department", dept.Name)
			cmd.Printf("Подразделение %d обновлено\n", id)
			return nil
		}),
	}

	cmd.Flags().StringVar(&name, "name", "", "название")
	cmd.Flags().Int64Var(&parentID, "parent", 0, "id родительского подразделения")
	cmd.Flags().Int64Var(&managerID, "manager", 0, "id руководителя")
	return cmd
}

func (c *CLI) departmentDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Удалить подразделение",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(domain.PermissionDelete, func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := c.departments.Delete(cmd.Context(), id); err != nil {
				return describeError(err)
			}

			c.record("delete", "department", args[0])
			cmd.Printf("Подразделение %d удалено\n", id)
			return nil
		}),
	}
}
