package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/export"
	"github.com/spf13/cobra"
)

func (c *CLI) exportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Выгрузка данных в файлы",
	}

	cmd.AddCommand(
		c.exportTableCmd("csv", "employees.csv", export.EmployeesToCSV),
		c.exportTableCmd("xlsx", "employees.xlsx", export.EmployeesToXLSX),
		c.exportJSONCmd(),
		c.exportVCardCmd(),
		c.exportQRCmd(),
	)
	return cmd
}

// exportTableCmd - общая команда для табличных форматов (CSV и XLSX)
func (c *CLI) exportTableCmd(format, defaultName string, write func(w io.Writer, employees []domain.Employee) error) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   format,
		Short: fmt.Sprintf("Выгрузить сотрудников в %s", format),
		RunE: c.run(domain.PermissionView, func(cmd *cobra.Command, args []string) error {
			employees, err := c.employees.List(cmd.Context())
			if err != nil {
				return describeError(err)
			}

			f, err := createOutput(out)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := write(f, employees); err != nil {
				return err
			}

			c.record("export", "employee", out)
			cmd.Printf("Выгружено %d сотрудников в %s\n", len(employees), out)
			return nil
		}),
	}

	cmd.Flags().StringVar(&out, "out", filepath.Join(c.settings.ExportDir, defaultName), "путь к файлу")
	return cmd
}

func (c *CLI) exportJSONCmd() *cobra.Command {
	var out string
	var withDepartments bool

	cmd := &cobra.Command{
		Use:   "json",
		Short: "Выгрузить сотрудников (и при желании подразделения) в JSON",
		RunE: c.run(domain.PermissionView, func(cmd *cobra.Command, args []string) error {
			employees, err := c.employees.List(cmd.Context())
			if err != nil {
				return describeError(err)
			}

			f, err := createOutput(out)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := export.EmployeesToJSON(f, employees); err != nil {
				return err
			}

			if withDepartments {
				departments, err := c.departments.List(cmd.Context())
				if err != nil {
					return describeError(err)
				}

				deptOut := departmentsPath(out)
				df, err := createOutput(deptOut)
				if err != nil {
					return err
				}
				defer df.Close()

				if err := export.DepartmentsToJSON(df, departments); err != nil {
					return err
				}
				cmd.Printf("Подразделения выгружены в %s\n", deptOut)
			}

			c.record("export", "employee", out)
			cmd.Printf("Выгружено %d сотрудников в %s\n", len(employees), out)
			return nil
		}),
	}

	cmd.Flags().StringVar(&out, "out", filepath.Join(c.settings.ExportDir, "employees.json"), "путь к файлу")
	cmd.Flags().BoolVar(&withDepartments, "departments", false, "выгрузить и подразделения")
	return cmd
}

func (c *CLI) exportVCardCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "vcard <id>",
		Short: "Визитка сотрудника в формате vCard",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(domain.PermissionView, func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			emp, err := c.employees.GetByID(cmd.Context(), id)
			if err != nil {
				return describeError(err)
			}

			if out == "" {
				out = filepath.Join(c.settings.ExportDir, fmt.Sprintf("employee_%d.vcf", id))
			}
			f, err := createOutput(out)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := export.EmployeeToVCard(f, emp); err != nil {
				return err
			}

			c.record("export", "employee", out)
			cmd.Printf("Визитка сохранена в %s\n", out)
			return nil
		}),
	}

	cmd.Flags().StringVar(&out, "out", "", "путь к файлу")
	return cmd
}

func (c *CLI) exportQRCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "qr <id>",
		Short: "QR-код с визиткой сотрудника (PNG)",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(domain.PermissionView, func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			emp, err := c.employees.GetByID(cmd.Context(), id)
			if err != nil {
				return describeError(err)
			}

			png, err := export.EmployeeQRCode(emp)
			if err != nil {
				return err
			}

			if out == "" {
				out = filepath.Join(c.settings.ExportDir, fmt.Sprintf("employee_%d.png", id))
			}
			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := os.WriteFile(out, png, 0o644); err != nil {
				return err
			}

			c.record("export", "employee", out)
			cmd.Printf("QR-код сохранён в %s\n", out)
			return nil
		}),
	}

	cmd.Flags().StringVar(&out, "out", "", "путь к файлу")
	return cmd
}

func (c *CLI) importCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Загрузка сотрудников из файлов",
	}

	cmd.AddCommand(c.importCSVCmd(), c.importXLSXCmd())
	return cmd
}

func (c *CLI) importCSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "csv <файл>",
		Short: "Импорт сотрудников из CSV",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(domain.PermissionAdd, func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			result, err := export.EmployeesFromCSV(cmd.Context(), f, c.employees)
			if err != nil {
				return err
			}

			c.record("import", "employee", args[0])
			cmd.Printf("Импортировано %d, пропущено %d\n", result.Imported, result.Skipped)
			return nil
		}),
	}
}

func (c *CLI) importXLSXCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "xlsx <файл>",
		Short: "Импорт сотрудников из XLSX",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(domain.PermissionAdd, func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			result, err := export.EmployeesFromXLSX(cmd.Context(), f, c.employees)
			if err != nil {
				return err
			}

			c.record("import", "employee", args[0])
			cmd.Printf("Импортировано %d, пропущено %d\n", result.Imported, result.Skipped)
			return nil
		}),
	}
}

func createOutput(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

func departmentsPath(employeesPath string) string {
	dir := filepath.Dir(employeesPath)
	return filepath.Join(dir, "departments.json")
}
