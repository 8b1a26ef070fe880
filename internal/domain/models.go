package domain

import (
	"strings"
	"time"
)

// Department представляет подразделение организации.
// Подразделения образуют лес через ParentID.
type Department struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string `json:"name" gorm:"type:varchar(200);not null"`
	ParentID  *int64 `json:"parent_id" gorm:"index"`
	ManagerID *int64 `json:"manager_id" gorm:"index"`

	Parent   *Department  `json:"-" gorm:"foreignKey:ParentID"`
	Children []Department `json:"children,omitempty" gorm:"foreignKey:ParentID"`
}

// TableName задаёт имя таблицы для GORM
func (Department) TableName() string {
	return "departments"
}

// Employee представляет сотрудника справочника.
// Обязательны только фамилия и имя, остальные поля могут отсутствовать.
type Employee struct {
	ID           int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	LastName     string     `json:"last_name" gorm:"type:varchar(100);not null"`
	FirstName    string     `json:"first_name" gorm:"type:varchar(100);not null"`
	MiddleName   *string    `json:"middle_name,omitempty" gorm:"type:varchar(100)"`
	DepartmentID *int64     `json:"department_id,omitempty" gorm:"index"`
	Position     *string    `json:"position,omitempty" gorm:"type:varchar(200)"`
	WorkPhone    *string    `json:"work_phone,omitempty" gorm:"type:varchar(50)"`
	MobilePhone  *string    `json:"mobile_phone,omitempty" gorm:"type:varchar(50)"`
	Email        *string    `json:"email,omitempty" gorm:"type:varchar(200)"`
	BirthDate    *time.Time `json:"birth_date,omitempty" gorm:"type:date"`
	HireDate     *time.Time `json:"hire_date,omitempty" gorm:"type:date"`
	Photo        []byte     `json:"-" gorm:"type:blob"`
	Room         *string    `json:"room,omitempty" gorm:"type:varchar(50)"`
	Skills       *string    `json:"skills,omitempty" gorm:"type:text"`
	ManagerID    *int64     `json:"manager_id,omitempty" gorm:"index"`
	WorkSchedule *string    `json:"work_schedule,omitempty" gorm:"type:varchar(200)"`
	Telegram     *string    `json:"telegram,omitempty" gorm:"type:varchar(100)"`
	Whatsapp     *string    `json:"whatsapp,omitempty" gorm:"type:varchar(100)"`
	Skype        *string    `json:"skype,omitempty" gorm:"type:varchar(100)"`

	Department *Department `json:"-" gorm:"foreignKey:DepartmentID"`
	Manager    *Employee   `json:"-" gorm:"foreignKey:ManagerID"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "employees"
}

// FullName возвращает "Фамилия Имя Отчество" без пустых частей
func (e *Employee) FullName() string {
	parts := []string{e.LastName, e.FirstName}
	if e.MiddleName != nil && *e.MiddleName != "" {
		parts = append(parts, *e.MiddleName)
	}
	return strings.Join(parts, " ")
}

// Роли пользователей
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// Права доступа
const (
	PermissionView   = "view"
	PermissionAdd    = "add"
	PermissionEdit   = "edit"
	PermissionDelete = "delete"
)

// User представляет учётную запись приложения
type User struct {
	ID           int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string `json:"username" gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"type:varchar(200);not null"`
	Role         string `json:"role" gorm:"type:varchar(50);not null"`
	EmployeeID   *int64 `json:"employee_id,omitempty"`
}

// TableName задаёт имя таблицы для GORM
func (User) TableName() string {
	return "users"
}
