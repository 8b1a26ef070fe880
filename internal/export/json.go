package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/employee-directory/internal/domain"
)

// employeeJSON - плоское представление сотрудника с датами в формате YYYY-MM-DD
type employeeJSON struct {
	ID           int64   `json:"id"`
	LastName     string  `json:"last_name"`
	FirstName    string  `json:"first_name"`
	MiddleName   *string `json:"middle_name,omitempty"`
	DepartmentID *int64  `json:"department_id,omitempty"`
	Position     *string `json:"position,omitempty"`
	WorkPhone    *string `json:"work_phone,omitempty"`
	MobilePhone  *string `json:"mobile_phone,omitempty"`
	Email        *string `json:"email,omitempty"`
	BirthDate    *string `json:"birth_date,omitempty"`
	HireDate     *string `json:"hire_date,omitempty"`
	Room         *string `json:"room,omitempty"`
	Skills       *string `json:"skills,omitempty"`
	ManagerID    *int64  `json:"manager_id,omitempty"`
	WorkSchedule *string `json:"work_schedule,omitempty"`
	Telegram     *string `json:"telegram,omitempty"`
	Whatsapp     *string `json:"whatsapp,omitempty"`
	Skype        *string `json:"skype,omitempty"`
}

// EmployeesToJSON выгружает сотрудников в JSON с отступами
func EmployeesToJSON(w io.Writer, employees []domain.Employee) error {
	out := make([]employeeJSON, 0, len(employees))
	for _, emp := range employees {
		out = append(out, employeeJSON{
			ID:           emp.ID,
			LastName:     emp.LastName,
			FirstName:    emp.FirstName,
			MiddleName:   emp.MiddleName,
			DepartmentID: emp.DepartmentID,
			Position:     emp.Position,
			WorkPhone:    emp.WorkPhone,
			MobilePhone:  emp.MobilePhone,
			Email:        emp.Email,
			BirthDate:    dateString(emp.BirthDate),
			HireDate:     dateString(emp.HireDate),
			Room:         emp.Room,
			Skills:       emp.Skills,
			ManagerID:    emp.ManagerID,
			WorkSchedule: emp.WorkSchedule,
			Telegram:     emp.Telegram,
			Whatsapp:     emp.Whatsapp,
			Skype:        emp.Skype,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// DepartmentsToJSON выгружает подразделения в JSON с отступами
func DepartmentsToJSON(w io.Writer, departments []domain.Department) error {
	type departmentJSON struct {
		ID        int64  `json:"id"`
		Name      string `json:"name"`
		ParentID  *int64 `json:"parent_id,omitempty"`
		ManagerID *int64 `json:"manager_id,omitempty"`
	}

	out := make([]departmentJSON, 0, len(departments))
	for _, dept := range departments {
		out = append(out, departmentJSON{
			ID:        dept.ID,
			Name:      dept.Name,
			ParentID:  dept.ParentID,
			ManagerID: dept.ManagerID,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func dateString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
