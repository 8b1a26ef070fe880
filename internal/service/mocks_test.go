package service_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/employee-directory/internal/domain"
)

// Мок-репозитории в памяти, повторяющие контракт настоящих

type mockEmployeeRepo struct {
	employees   map[int64]*domain.Employee
	nextID      int64
	getAllCalls int
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{
		employees: make(map[int64]*domain.Employee),
		nextID:    1,
	}
}

func (m *mockEmployeeRepo) Create(ctx context.Context, emp *domain.Employee) error {
	emp.ID = m.nextID
	m.nextID++
	stored := *emp
	m.employees[emp.ID] = &stored
	return nil
}

func (m *mockEmployeeRepo) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	if emp, ok := m.employees[id]; ok {
		copy := *emp
		return &copy, nil
	}
	return nil, domain.ErrEmployeeNotFound
}

func (m *mockEmployeeRepo) GetAll(ctx context.Context) ([]domain.Employee, error) {
	m.getAllCalls++

	var out []domain.Employee
	for _, emp := range m.employees {
		out = append(out, *emp)
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i].LastName), strings.ToLower(out[j].LastName)
		if li != lj {
			return li < lj
		}
		return strings.ToLower(out[i].FirstName) < strings.ToLower(out[j].FirstName)
	})
	return out, nil
}

func (m *mockEmployeeRepo) Update(ctx context.Context, emp *domain.Employee) error {
	if _, ok := m.employees[emp.ID]; !ok {
		return domain.ErrEmployeeNotFound
	}
	stored := *emp
	m.employees[emp.ID] = &stored
	return nil
}

func (m *mockEmployeeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.employees[id]; !ok {
		return domain.ErrEmployeeNotFound
	}
	delete(m.employees, id)
	return nil
}

func (m *mockEmployeeRepo) Search(ctx context.Context, query string) ([]domain.Employee, error) {
	q := strings.ToLower(query)
	all, _ := m.GetAll(ctx)
	m.getAllCalls--

	var out []domain.Employee
	for _, emp := range all {
		fields := []string{emp.LastName, emp.FirstName}
		for _, opt := range []*string{emp.MiddleName, emp.Position, emp.WorkPhone, emp.MobilePhone, emp.Email} {
			if opt != nil {
				fields = append(fields, *opt)
			}
		}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, emp)
				break
			}
		}
	}
	return out, nil
}

func (m *mockEmployeeRepo) Filter(ctx context.Context, departmentID *int64, position string) ([]domain.Employee, error) {
	all, _ := m.GetAll(ctx)
	m.getAllCalls--

	var out []domain.Employee
	for _, emp := range all {
		if departmentID != nil && (emp.DepartmentID == nil || *emp.DepartmentID != *departmentID) {
			continue
		}
		if position != "" {
			if emp.Position == nil || !strings.Contains(strings.ToLower(*emp.Position), strings.ToLower(position)) {
				continue
			}
		}
		out = append(out, emp)
	}
	return out, nil
}

func (m *mockEmployeeRepo) FilterByHireDate(ctx context.Context, start, end *time.Time) ([]domain.Employee, error) {
	var out []domain.Employee
	for _, emp := range m.employees {
		if emp.HireDate == nil {
			continue
		}
		if start != nil && emp.HireDate.Before(*start) {
			continue
		}
		if end != nil && emp.HireDate.After(*end) {
			continue
		}
		out = append(out, *emp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].HireDate.After(*out[j].HireDate)
	})
	return out, nil
}

func (m *mockEmployeeRepo) GetByBirthMonth(ctx context.Context, month int) ([]domain.Employee, error) {
	var out []domain.Employee
	for _, emp := range m.employees {
		if emp.BirthDate != nil && int(emp.BirthDate.Month()) == month {
			out = append(out, *emp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].BirthDate.Day() < out[j].BirthDate.Day()
	})
	return out, nil
}

func (m *mockEmployeeRepo) ClearDepartment(ctx context.Context, departmentID int64) error {
	for _, emp := range m.employees {
		if emp.DepartmentID != nil && *emp.DepartmentID == departmentID {
			emp.DepartmentID = nil
		}
	}
	return nil
}

func (m *mockEmployeeRepo) ClearManager(ctx context.Context, managerID int64) error {
	for _, emp := range m.employees {
		if emp.ManagerID != nil && *emp.ManagerID == managerID {
			emp.ManagerID = nil
		}
	}
	return nil
}

type mockDepartmentRepo struct {
	departments map[int64]*domain.Department
	nextID      int64
	getAllCalls int
}

func newMockDepartmentRepo() *mockDepartmentRepo {
	return &mockDepartmentRepo{
		departments: make(map[int64]*domain.Department),
		nextID:      1,
	}
}

func (m *mockDepartmentRepo) Create(ctx context.Context, dept *domain.Department) error {
	dept.ID = m.nextID
	m.nextID++
	stored := *dept
	m.departments[dept.ID] = &stored
	return nil
}

func (m *mockDepartmentRepo) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	if dept, ok := m.departments[id]; ok {
		copy := *dept
		return &copy, nil
	}
	return nil, domain.ErrDepartmentNotFound
}

func (m *mockDepartmentRepo) GetAll(ctx context.Context) ([]domain.Department, error) {
	m.getAllCalls++

	var out []domain.Department
	for _, dept := range m.departments {
		out = append(out, *dept)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (m *mockDepartmentRepo) Update(ctx context.Context, dept *domain.Department) error {
	if _, ok := m.departments[dept.ID]; !ok {
		return domain.ErrDepartmentNotFound
	}
	stored := *dept
	m.departments[dept.ID] = &stored
	return nil
}

func (m *mockDepartmentRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.departments[id]; !ok {
		return domain.ErrDepartmentNotFound
	}
	delete(m.departments, id)
	return nil
}

func (m *mockDepartmentRepo) IsDescendant(ctx context.Context, ancestorID, descendantID int64) (bool, error) {
	current := descendantID
	visited := make(map[int64]bool)
	for {
		if current == ancestorID {
			return true, nil
		}
		if visited[current] {
			return false, nil
		}
		visited[current] = true
		dept, ok := m.departments[current]
		if !ok || dept.ParentID == nil {
			return false, nil
		}
		current = *dept.ParentID
	}
}

func (m *mockDepartmentRepo) GetAllDescendantIDs(ctx context.Context, id int64) ([]int64, error) {
	var out []int64
	for _, dept := range m.departments {
		if dept.ParentID != nil && *dept.ParentID == id {
			out = append(out, dept.ID)
			children, _ := m.GetAllDescendantIDs(ctx, dept.ID)
			out = append(out, children...)
		}
	}
	return out, nil
}

func (m *mockDepartmentRepo) ReparentChildren(ctx context.Context, id int64, newParentID *int64) error {
	for _, dept := range m.departments {
		if dept.ParentID != nil && *dept.ParentID == id {
			dept.ParentID = newParentID
		}
	}
	return nil
}

func (m *mockDepartmentRepo) ClearManager(ctx context.Context, managerID int64) error {
	for _, dept := range m.departments {
		if dept.ManagerID != nil && *dept.ManagerID == managerID {
			dept.ManagerID = nil
		}
	}
	return nil
}

type mockUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:  make(map[string]*domain.User),
		nextID: 1,
	}
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	if _, ok := m.users[user.Username]; ok {
		return domain.ErrDuplicateUsername
	}
	user.ID = m.nextID
	m.nextID++
	stored := *user
	m.users[user.Username] = &stored
	return nil
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if user, ok := m.users[username]; ok {
		copy := *user
		return &copy, nil
	}
	return nil, domain.ErrUserNotFound
}

func ptr[T any](v T) *T {
	return &v
}
