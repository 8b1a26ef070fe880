package dto

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// EmployeeRequest - данные сотрудника при создании или полной замене записи
type EmployeeRequest struct {
	LastName     string  `json:"last_name" validate:"required,min=1,max=100"`
	FirstName    string  `json:"first_name" validate:"required,min=1,max=100"`
	MiddleName   *string `json:"middle_name" validate:"omitempty,max=100"`
	DepartmentID *int64  `json:"department_id" validate:"omitempty,min=1"`
	Position     *string `json:"position" validate:"omitempty,max=200"`
	WorkPhone    *string `json:"work_phone" validate:"omitempty,phone"`
	MobilePhone  *string `json:"mobile_phone" validate:"omitempty,phone"`
	Email        *string `json:"email" validate:"omitempty,email"`
	BirthDate    *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	HireDate     *string `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
	Photo        []byte  `json:"photo,omitempty"`
	Room         *string `json:"room" validate:"omitempty,max=50"`
	Skills       *string `json:"skills"`
	ManagerID    *int64  `json:"manager_id" validate:"omitempty,min=1"`
	WorkSchedule *string `json:"work_schedule" validate:"omitempty,max=200"`
	Telegram     *string `json:"telegram" validate:"omitempty,startswith=@,min=2"`
	Whatsapp     *string `json:"whatsapp" validate:"omitempty,phone"`
	Skype        *string `json:"skype" validate:"omitempty,max=100"`
}

// DepartmentRequest - данные подразделения при создании или полной замене записи
type DepartmentRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	ParentID  *int64 `json:"parent_id" validate:"omitempty,min=1"`
	ManagerID *int64 `json:"manager_id" validate:"omitempty,min=1"`
}

// CreateUserRequest - запрос на создание учётной записи
type CreateUserRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=100"`
	Password   string `json:"password" validate:"required,min=6,max=100"`
	Role       string `json:"role" validate:"required,oneof=admin editor viewer"`
	EmployeeID *int64 `json:"employee_id" validate:"omitempty,min=1"`
}

// EmployeeFilter - необязательные критерии отбора сотрудников (объединяются по И)
type EmployeeFilter struct {
	DepartmentID *int64
	Position     string
}

// HireDateRange - границы периода приёма на работу, включительно с обеих сторон
type HireDateRange struct {
	Start *string `validate:"omitempty,datetime=2006-01-02"`
	End   *string `validate:"omitempty,datetime=2006-01-02"`
}

var nonDigits = regexp.MustCompile(`[^\d+]`)

// NewValidator создаёт валидатор с дополнительным правилом "phone":
// после удаления разделителей номер должен содержать не менее 10 цифр
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		digits := nonDigits.ReplaceAllString(fl.Field().String(), "")
		return len(digits) >= 10
	})
	return v
}
