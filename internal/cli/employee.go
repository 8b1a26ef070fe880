package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/dto"
	"github.com/spf13/cobra"
)

// employeeFlags - флаги полей сотрудника, общие для add и update
type employeeFlags struct {
	lastName     string
	firstName    string
	middleName   string
	departmentID int64
	position     string
	workPhone    string
	mobilePhone  string
	email        string
	birthDate    string
	hireDate     string
	photo        string
	room         string
	skills       string
	managerID    int64
	workSchedule string
	telegram     string
	whatsapp     string
	skype        string

	photoData []byte
}

func (f *employeeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.lastName, "last-name", "", "фамилия (обязательно)")
	cmd.Flags().StringVar(&f.firstName, "first-name", "", "имя (обязательно)")
	cmd.Flags().StringVar(&f.middleName, "middle-name", "", "отчество")
	cmd.Flags().Int64Var(&f.departmentID, "department", 0, "id подразделения")
	cmd.Flags().StringVar(&f.position, "position", "", "должность")
	cmd.Flags().StringVar(&f.workPhone, "work-phone", "", "рабочий телефон")
	cmd.Flags().StringVar(&f.mobilePhone, "mobile-phone", "", "мобильный телефон")
	cmd.Flags().StringVar(&f.email, "email", "", "email")
	cmd.Flags().StringVar(&f.birthDate, "birth-date", "", "дата рождения (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.hireDate, "hire-date", "", "дата приёма (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.photo, "photo", "", "путь к файлу с фотографией")
	cmd.Flags().StringVar(&f.room, "room", "", "кабинет")
	cmd.Flags().StringVar(&f.skills, "skills", "", "навыки")
	cmd.Flags().Int64Var(&f.managerID, "manager", 0, "id руководителя")
	cmd.Flags().StringVar(&f.workSchedule, "schedule", "", "график работы")
	cmd.Flags().StringVar(&f.telegram, "telegram", "", "telegram (@имя)")
	cmd.Flags().StringVar(&f.whatsapp, "whatsapp", "", "whatsapp")
	cmd.Flags().StringVar(&f.skype, "skype", "", "skype")
}

func (f *employeeFlags) request() *dto.EmployeeRequest {
	req := &dto.EmployeeRequest{
		LastName:     f.lastName,
		FirstName:    f.firstName,
		MiddleName:   optFlag(f.middleName),
		Position:     optFlag(f.position),
		WorkPhone:    optFlag(f.workPhone),
		MobilePhone:  optFlag(f.mobilePhone),
		Email:        optFlag(f.email),
		BirthDate:    optFlag(f.birthDate),
		HireDate:     optFlag(f.hireDate),
		Photo:        f.photoData,
		Room:         optFlag(f.room),
		Skills:       optFlag(f.skills),
		WorkSchedule: optFlag(f.workSchedule),
		Telegram:     optFlag(f.telegram),
		Whatsapp:     optFlag(f.whatsapp),
		Skype:        optFlag(f.skype),
	}
	if f.departmentID > 0 {
		req.DepartmentID = &f.departmentID
	}
	if f.managerID > 0 {
		req.ManagerID = &f.managerID
	}
	return req
}

// loadPhoto читает файл фотографии, если оператор передал --photo.
// Пустое значение флага очищает фотографию.
func (f *employeeFlags) loadPhoto(cmd *cobra.Command) error {
	if !cmd.Flags().Changed("photo") || f.photo == "" {
		return nil
	}

	data, err := os.ReadFile(f.photo)
	if err != nil {
		return fmt.Errorf("не удалось прочитать фотографию: %w", err)
	}
	f.photoData = data
	return nil
}

// apply заполняет флаги текущими значениями записи; при обновлении
// незатронутые флаги сохраняют то, что уже хранится
func (f *employeeFlags) apply(cmd *cobra.Command, emp *domain.Employee) {
	setDefault := func(name string, target *string, value string) {
		if !cmd.Flags().Changed(name) {
			*target = value
		}
	}

	setDefault("last-name", &f.lastName, emp.LastName)
	setDefault("first-name", &f.firstName, emp.FirstName)
	setDefault("middle-name", &f.middleName, deref(emp.MiddleName))
	setDefault("position", &f.position, deref(emp.Position))
	setDefault("work-phone", &f.workPhone, deref(emp.WorkPhone))
	setDefault("mobile-phone", &f.mobilePhone, deref(emp.MobilePhone))
	setDefault("email", &f.email, deref(emp.Email))
	setDefault("birth-date", &f.birthDate, formatDate(emp.BirthDate))
	setDefault("hire-date", &f.hireDate, formatDate(emp.HireDate))

	setDefault("room", &f.room, deref(emp.Room))
	setDefault("skills", &f.skills, deref(emp.Skills))
	setDefault("schedule", &f.workSchedule, deref(emp.WorkSchedule))
	setDefault("telegram", &f.telegram, deref(emp.Telegram))
	setDefault("whatsapp", &f.whatsapp, deref(emp.Whatsapp))
	setDefault("skype", &f.skype, deref(emp.Skype))

	if !cmd.Flags().Changed("department") && emp.DepartmentID != nil {
		f.departmentID = *emp.DepartmentID
	}
	if !cmd.Flags().Changed("manager") && emp.ManagerID != nil {
		f.managerID = *emp.ManagerID
	}

	// Фотография задаётся файлом, а не текстовым значением: без --photo
	// в запрос уходит то, что уже хранится
	if !cmd.Flags().Changed("photo") {
		f.photoData = emp.Photo
	}
}

func (c *CLI) employeeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Работа с карточками сотрудников",
	}

	cmd.AddCommand(
		c.employeeListCmd(),
		c.employeeGetCmd(),
		c.employeeAddCmd(),
		c.employeeUpdateCmd(),
		c.employeeDeleteCmd(),
		c.employeeSearchCmd(),
		c.employeeFilterCmd(),
		c.employeeHiredCmd(),
		c.employeeBirthdaysCmd(),
	)
	return cmd
}

func (c *CLI) employeeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Список всех сотрудников",
		RunE: c.run(domain.PermissionView, func(cmd *cobra.Command, args []string) error {
			employees, err := c.employees.List(cmd.Context())
			if err != nil {
				return describeError(err)
			}
			printEmployees(cmd, employees)
			return nil
		}),
	}
}

func (c *CLI) employeeGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Карточка сотрудника",
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
			printEmployeeCard(cmd, emp)
			return nil
		}),
	}
}

func (c *CLI) employeeAddCmd() *cobra.Command {
	var flags employeeFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Добавить сотрудника",
		RunE: c.run(domain.PermissionAdd, func(cmd *cobra.Command, args []string) error {
			if err := flags.loadPhoto(cmd); err != nil {
				return err
			}

			emp, err := c.employees.Create(cmd.Context(), flags.request())
			if err != nil {
				return describeError(err)
			}

			c.record("add", "employee", emp.FullName())
			cmd.Printf("Сотрудник добавлен, id=%d\n", emp.ID)
			return nil
		}),
	}

	flags.register(cmd)
	return cmd
}

func (c *CLI) employeeUpdateCmd() *cobra.Command {
	var flags employeeFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Заменить данные сотрудника",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(domain.PermissionEdit, func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			current, err := c.employees.GetByID(cmd.Context(), id)
			if err != nil {
				return describeError(err)
			}
			flags.apply(cmd, current)
			if err := flags.loadPhoto(cmd); err != nil {
				return err
			}

			emp, err := c.employees.Update(cmd.Context(), id, flags.request())
			if err != nil {
				return describeError(err)
			}

			c.record("edit", "employee", emp.FullName())
			cmd.Printf("Сотрудник %d обновлён\n", id)
			return nil
		}),
	}

	flags.register(cmd)
	return cmd
}

func (c *CLI) employeeDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Удалить сотрудника",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(domain.PermissionDelete, func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := c.employees.Delete(cmd.Context(), id); err != nil {
				return describeError(err)
			}

			c.record("delete", "employee", args[0])
			cmd.Printf("Сотрудник %d удалён\n", id)
			return nil
		}),
	}
}

func (c *CLI) employeeSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <текст>",
		Short: "Поиск по имени, должности, телефонам и email",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(domain.PermissionView, func(cmd *cobra.Command, args []string) error {
			employees, err := c.employees.Search(cmd.Context(), args[0])
			if err != nil {
				return describeError(err)
			}
			printEmployees(cmd, employees)
			return nil
		}),
	}
}

func (c *CLI) employeeFilterCmd() *cobra.Command {
	var departmentID int64
	var position string

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Отбор по подразделению и должности",
		RunE: c.run(domain.PermissionView, func(cmd *cobra.Command, args []string) error {
			filter := dto.EmployeeFilter{Position: position}
			if cmd.Flags().Changed("department") {
				filter.DepartmentID = &departmentID
			}

			employees, err := c.employees.Filter(cmd.Context(), filter)
			if err != nil {
				return describeError(err)
			}
			printEmployees(cmd, employees)
			return nil
		}),
	}

	cmd.Flags().Int64Var(&departmentID, "department", 0, "id подразделения")
	cmd.Flags().StringVar(&position, "position", "", "подстрока должности")
	return cmd
}

func (c *CLI) employeeHiredCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "hired",
		Short: "Принятые на работу за период",
		RunE: c.run(domain.PermissionView, func(cmd *cobra.Command, args []string) error {
			r := dto.HireDateRange{Start: optFlag(from), End: optFlag(to)}

			employees, err := c.employees.FilterByHireDate(cmd.Context(), r)
			if err != nil {
				return describeError(err)
			}
			printEmployees(cmd, employees)
			return nil
		}),
	}

	cmd.Flags().StringVar(&from, "from", "", "начало периода (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "конец периода (YYYY-MM-DD)")
	return cmd
}

func (c *CLI) employeeBirthdaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "birthdays <месяц>",
		Short: "Дни рождения в указанном месяце",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(domain.PermissionView, func(cmd *cobra.Command, args []string) error {
			month, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("некорректный месяц: %s", args[0])
			}

			employees, err := c.employees.BirthdaysInMonth(cmd.Context(), month)
			if err != nil {
				return describeError(err)
			}
			printEmployees(cmd, employees)
			return nil
		}),
	}
}

func printEmployees(cmd *cobra.Command, employees []domain.Employee) {
	if len(employees) == 0 {
		cmd.Println("Сотрудники не найдены")
		return
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tФИО\tДолжность\tПодразделение\tТелефон\tEmail")
	for _, emp := range employees {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			emp.ID,
			emp.FullName(),
			deref(emp.Position),
			optID64(emp.DepartmentID),
			deref(emp.WorkPhone),
			deref(emp.Email),
		)
	}
	w.Flush()
}

func printEmployeeCard(cmd *cobra.Command, emp *domain.Employee) {
	cmd.Printf("ID:            %d\n", emp.ID)
	cmd.Printf("ФИО:           %s\n", emp.FullName())
	cmd.Printf("Должность:     %s\n", deref(emp.Position))
	cmd.Printf("Подразделение: %s\n", optID64(emp.DepartmentID))
	cmd.Printf("Руководитель:  %s\n", optID64(emp.ManagerID))
	cmd.Printf("Раб. телефон:  %s\n", deref(emp.WorkPhone))
	cmd.Printf("Моб. телефон:  %s\n", deref(emp.MobilePhone))
	cmd.Printf("Email:         %s\n", deref(emp.Email))
	cmd.Printf("Дата рождения: %s\n", formatDate(emp.BirthDate))
	cmd.Printf("Дата приёма:   %s\n", formatDate(emp.HireDate))
	cmd.Printf("Кабинет:       %s\n", deref(emp.Room))
	cmd.Printf("График:        %s\n", deref(emp.WorkSchedule))
	cmd.Printf("Навыки:        %s\n", deref(emp.Skills))
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("некорректный id: %s", arg)
	}
	return id, nil
}

func optFlag(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func optID64(value *int64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatInt(*value, 10)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
