package cache

import (
	"time"

	"github.com/employee-directory/internal/domain"
)

// DefaultTTL - срок жизни снимка по умолчанию
const DefaultTTL = 300 * time.Second

// Cache - кэш чтения для двух полных выборок: сотрудников и подразделений.
// Снимок коллекции живёт фиксированное время и истекает целиком; индексы по id
// намеренно не проверяются на срок жизни и остаются доступными до явной
// инвалидации.
//
// Кэш рассчитан на однопоточный доступ и не выполняет никакого ввода-вывода.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	employees    []domain.Employee
	employeesAt  time.Time
	employeeByID map[int64]domain.Employee

	departments    []domain.Department
	departmentsAt  time.Time
	departmentByID map[int64]domain.Department
}

// New создаёт кэш с указанным сроком жизни снимков.
// Неположительный ttl заменяется значением по умолчанию.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl: ttl,
		now: time.Now,
	}
}

// GetEmployees возвращает снимок сотрудников, если он ещё свежий.
// false означает, что вызывающий должен перечитать данные из хранилища.
func (c *Cache) GetEmployees() ([]domain.Employee, bool) {
	if !c.isValid(c.employeesAt) {
		return nil, false
	}
	return c.employees, true
}

// SetEmployees полностью заменяет снимок сотрудников и перестраивает индекс по id
func (c *Cache) SetEmployees(employees []domain.Employee) {
	c.employees = employees
	c.employeesAt = c.now()
	c.employeeByID = make(map[int64]domain.Employee, len(employees))
	for _, emp := range employees {
		if emp.ID != 0 {
			c.employeeByID[emp.ID] = emp
		}
	}
}

// GetDepartments возвращает снимок подразделений, если он ещё свежий
func (c *Cache) GetDepartments() ([]domain.Department, bool) {
	if !c.isValid(c.departmentsAt) {
		return nil, false
	}
	return c.departments, true
}

// SetDepartments полностью заменяет снимок подразделений и перестраивает индекс по id
func (c *Cache) SetDepartments(departments []domain.Department) {
	c.departments = departments
	c.departmentsAt = c.now()
	c.departmentByID = make(map[int64]domain.Department, len(departments))
	for _, dept := range departments {
		if dept.ID != 0 {
			c.departmentByID[dept.ID] = dept
		}
	}
}

// EmployeeByID ищет сотрудника в последнем построенном индексе.
// Срок жизни снимка здесь не проверяется.
func (c *Cache) EmployeeByID(id int64) (domain.Employee, bool) {
	emp, ok := c.employeeByID[id]
	return emp, ok
}

// DepartmentByID ищет подразделение в последнем построенном индексе.
// Срок жизни снимка здесь не проверяется.
func (c *Cache) DepartmentByID(id int64) (domain.Department, bool) {
	dept, ok := c.departmentByID[id]
	return dept, ok
}

// InvalidateEmployees сбрасывает снимок сотрудников вместе с индексом
func (c *Cache) InvalidateEmployees() {
	c.employees = nil
	c.employeesAt = time.Time{}
	c.employeeByID = nil
}

// InvalidateDepartments сбрасывает снимок подразделений вместе с индексом
func (c *Cache) InvalidateDepartments() {
	c.departments = nil
	c.departmentsAt = time.Time{}
	c.departmentByID = nil
}

// InvalidateAll сбрасывает оба снимка
func (c *Cache) InvalidateAll() {
	c.InvalidateEmployees()
	c.InvalidateDepartments()
}

func (c *Cache) isValid(at time.Time) bool {
	if at.IsZero() {
		return false
	}
	return c.now().Sub(at) < c.ttl
}
