package repository

import (
	"context"

	"github.com/employee-directory/internal/domain"
	"gorm.io/gorm"
)

// DepartmentRepository определяет интерфейс для работы с подразделениями
type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	GetAll(ctx context.Context) ([]domain.Department, error)
	Update(ctx context.Context, dept *domain.Department) error
	Delete(ctx context.Context, id int64) error
	IsDescendant(ctx context.Context, ancestorID, descendantID int64) (bool, error)
	GetAllDescendantIDs(ctx context.Context, id int64) ([]int64, error)
	ReparentChildren(ctx context.Context, id int64, newParentID *int64) error
	ClearManager(ctx context.Context, managerID int64) error
}

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository создаёт новый экземпляр репозитория
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *departmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	var dept domain.Department
	err := r.db.WithContext(ctx).First(&dept, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrDepartmentNotFound
		}
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) GetAll(ctx context.Context) ([]domain.Department, error) {
	var departments []domain.Department
	err := r.db.WithContext(ctx).
		Order("name COLLATE NOCASE").
		Find(&departments).Error
	return departments, err
}

// Update полностью заменяет запись по id.
// Отсутствующая запись - явная ошибка, а не тихий no-op.
func (r *departmentRepository) Update(ctx context.Context, dept *domain.Department) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Department{}).
		Where("id = ?", dept.ID).
		Select("*").Omit("id").
		Updates(dept)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrDepartmentNotFound
	}
	return nil
}

func (r *departmentRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Department{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrDepartmentNotFound
	}
	return nil
}

func (r *departmentRepository) IsDescendant(ctx context.Context, ancestorID, descendantID int64) (bool, error) {
	descendants, err := r.GetAllDescendantIDs(ctx, ancestorID)
	if err != nil {
		return false, err
	}

	for _, id := range descendants {
		if id == descendantID {
			return true, nil
		}
	}
	return false, nil
}

func (r *departmentRepository) GetAllDescendantIDs(ctx context.Context, id int64) ([]int64, error) {
	var result []int64

	// Рекурсивный CTE, SQLite поддерживает его начиная с 3.8.3
	query := `
		WITH RECURSIVE descendants AS (
			SELECT id FROM departments WHERE parent_id = ?
			UNION ALL
			SELECT d.id FROM departments d
			INNER JOIN descendants ds ON d.parent_id = ds.id
		)
		SELECT id FROM descendants
	`

	rows, err := r.db.WithContext(ctx).Raw(query, id).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var descendantID int64
		if err := rows.Scan(&descendantID); err != nil {
			return nil, err
		}
		result = append(result, descendantID)
	}

	return result, rows.Err()
}

// ReparentChildren переносит прямых детей подразделения к новому родителю
// (nil делает их корневыми)
func (r *departmentRepository) ReparentChildren(ctx context.Context, id int64, newParentID *int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Department{}).
		Where("parent_id = ?", id).
		Update("parent_id", newParentID).Error
}

// ClearManager обнуляет ссылку на руководителя во всех подразделениях
func (r *departmentRepository) ClearManager(ctx context.Context, managerID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Department{}).
		Where("manager_id = ?", managerID).
		Update("manager_id", nil).Error
}
