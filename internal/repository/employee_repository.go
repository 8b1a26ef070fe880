package repository

import (
	"context"
	"strings"
	"time"

	"github.com/employee-directory/internal/domain"
	"gorm.io/gorm"
)

// Порядок сортировки по умолчанию для списков сотрудников
const defaultEmployeeOrder = "last_name COLLATE NOCASE, first_name COLLATE NOCASE"

// EmployeeRepository определяет интерфейс для работы с сотрудниками
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetAll(ctx context.Context) ([]domain.Employee, error)
	Update(ctx context.Context, emp *domain.Employee) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]domain.Employee, error)
	Filter(ctx context.Context, departmentID *int64, position string) ([]domain.Employee, error)
	FilterByHireDate(ctx context.Context, start, end *time.Time) ([]domain.Employee, error)
	GetByBirthMonth(ctx context.Context, month int) ([]domain.Employee, error)
	ClearDepartment(ctx context.Context, departmentID int64) error
	ClearManager(ctx context.Context, managerID int64) error
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository создаёт новый экземпляр репозитория
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	return r.db.WithContext(ctx).Create(emp).Error
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).First(&emp, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) GetAll(ctx context.Context) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := r.db.WithContext(ctx).
		Order(defaultEmployeeOrder).
		Find(&employees).Error
	return employees, err
}

// Update полностью заменяет запись по id.
// Отсутствующая запись - явная ошибка, а не тихий no-op.
func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("id = ?", emp.ID).
		Select("*").Omit("id").
		Updates(emp)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Employee{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// Search ищет подстроку без учёта регистра в семи полях: фамилия, имя,
// отчество, должность, оба телефона и email. Совпадение любого поля достаточно.
func (r *employeeRepository) Search(ctx context.Context, query string) ([]domain.Employee, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var employees []domain.Employee
	err := r.db.WithContext(ctx).
		Where(`LOWER(last_name) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(middle_name) LIKE ?
			OR LOWER(position) LIKE ? OR LOWER(work_phone) LIKE ? OR LOWER(mobile_phone) LIKE ?
			OR LOWER(email) LIKE ?`,
			pattern, pattern, pattern, pattern, pattern, pattern, pattern).
		Order(defaultEmployeeOrder).
		Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) Filter(ctx context.Context, departmentID *int64, position string) ([]domain.Employee, error) {
	query := r.db.WithContext(ctx)

	if departmentID != nil {
		query = query.Where("department_id = ?", *departmentID)
	}
	if position != "" {
		query = query.Where("LOWER(position) LIKE ?", "%"+strings.ToLower(position)+"%")
	}

	var employees []domain.Employee
	err := query.Order(defaultEmployeeOrder).Find(&employees).Error
	return employees, err
}

// FilterByHireDate отбирает сотрудников по дате приёма, границы включительно.
// Любая из границ может отсутствовать. Сортировка - по дате приёма по убыванию.
func (r *employeeRepository) FilterByHireDate(ctx context.Context, start, end *time.Time) ([]domain.Employee, error) {
	query := r.db.WithContext(ctx)

	if start != nil {
		query = query.Where("hire_date >= ?", *start)
	}
	if end != nil {
		query = query.Where("hire_date <= ?", *end)
	}

	var employees []domain.Employee
	err := query.Order("hire_date DESC").Find(&employees).Error
	return employees, err
}

// GetByBirthMonth возвращает сотрудников, родившихся в указанном месяце,
// независимо от года, отсортированных по дню месяца.
func (r *employeeRepository) GetByBirthMonth(ctx context.Context, month int) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := r.db.WithContext(ctx).
		Where("CAST(strftime('%m', birth_date) AS INTEGER) = ?", month).
		Order("strftime('%d', birth_date)").
		Find(&employees).Error
	return employees, err
}

// ClearDepartment обнуляет ссылку на подразделение у всех его сотрудников
func (r *employeeRepository) ClearDepartment(ctx context.Context, departmentID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("department_id = ?", departmentID).
		Update("department_id", nil).Error
}

// ClearManager обнуляет ссылку на руководителя у всех его подчинённых
func (r *employeeRepository) ClearManager(ctx context.Context, managerID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("manager_id = ?", managerID).
		Update("manager_id", nil).Error
}
