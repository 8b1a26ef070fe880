package service

import (
	"context"
	"errors"
	"strings"

	"github.com/employee-directory/internal/cache"
	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/dto"
	"github.com/employee-directory/internal/repository"
	"github.com/go-playground/validator/v10"
)

// DepartmentNode - узел дерева подразделений
type DepartmentNode struct {
	Department domain.Department
	Children   []*DepartmentNode
}

// DepartmentService определяет интерфейс бизнес-логики для подразделений
type DepartmentService interface {
	Create(ctx context.Context, req *dto.DepartmentRequest) (*domain.Department, error)
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
	Update(ctx context.Context, id int64, req *dto.DepartmentRequest) (*domain.Department, error)
	Delete(ctx context.Context, id int64) error
	Tree(ctx context.Context) ([]*DepartmentNode, error)
}

type departmentService struct {
	deptRepo repository.DepartmentRepository
	empRepo  repository.EmployeeRepository
	cache    *cache.Cache
	validate *validator.Validate
}

// NewDepartmentService создаёт новый экземпляр сервиса.
// Кэш принадлежит вызывающему и передаётся явно.
func NewDepartmentService(
	deptRepo repository.DepartmentRepository,
	empRepo repository.EmployeeRepository,
	c *cache.Cache,
) DepartmentService {
	return &departmentService{
		deptRepo: deptRepo,
		empRepo:  empRepo,
		cache:    c,
		validate: dto.NewValidator(),
	}
}

func (s *departmentService) Create(ctx context.Context, req *dto.DepartmentRequest) (*domain.Department, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	dept := &domain.Department{
		Name:      strings.TrimSpace(req.Name),
		ParentID:  req.ParentID,
		ManagerID: req.ManagerID,
	}

	if err := s.deptRepo.Create(ctx, dept); err != nil {
		return nil, err
	}

	s.cache.InvalidateDepartments()
	return dept, nil
}

// GetByID сначала смотрит в индекс кэша, затем в хранилище
func (s *departmentService) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	if dept, ok := s.cache.DepartmentByID(id); ok {
		return &dept, nil
	}
	return s.deptRepo.GetByID(ctx, id)
}

// List возвращает все подразделения, переиспользуя свежий снимок кэша
func (s *departmentService) List(ctx context.Context) ([]domain.Department, error) {
	if departments, ok := s.cache.GetDepartments(); ok {
		return departments, nil
	}

	departments, err := s.deptRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.SetDepartments(departments)
	return departments, nil
}

func (s *departmentService) Update(ctx context.Context, id int64, req *dto.DepartmentRequest) (*domain.Department, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		// Подразделение не может быть родителем самого себя
		if *req.ParentID == id {
			return nil, domain.ErrSelfReference
		}

		// Перенос в собственного потомка создал бы цикл
		isDescendant, err := s.deptRepo.IsDescendant(ctx, id, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if isDescendant {
			return nil, domain.ErrCyclicReference
		}
	}

	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	dept := &domain.Department{
		ID:        id,
		Name:      strings.TrimSpace(req.Name),
		ParentID:  req.ParentID,
		ManagerID: req.ManagerID,
	}

	if err := s.deptRepo.Update(ctx, dept); err != nil {
		return nil, err
	}

	s.cache.InvalidateDepartments()
	return dept, nil
}

// Delete удаляет подразделение: его сотрудники остаются без подразделения,
// прямые дети переносятся к родителю удаляемого узла
func (s *departmentService) Delete(ctx context.Context, id int64) error {
	dept, err := s.deptRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.empRepo.ClearDepartment(ctx, id); err != nil {
		return err
	}
	if err := s.deptRepo.ReparentChildren(ctx, id, dept.ParentID); err != nil {
		return err
	}
	if err := s.deptRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.InvalidateAll()
	return nil
}

// Tree строит лес подразделений из плоского списка
func (s *departmentService) Tree(ctx context.Context) ([]*DepartmentNode, error) {
	departments, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	nodes := make(map[int64]*DepartmentNode, len(departments))
	for _, dept := range departments {
		nodes[dept.ID] = &DepartmentNode{Department: dept}
	}

	var roots []*DepartmentNode
	for _, dept := range departments {
		node := nodes[dept.ID]
		if dept.ParentID != nil {
			if parent, ok := nodes[*dept.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	return roots, nil
}

// checkReferences проверяет существование родителя и руководителя перед записью
func (s *departmentService) checkReferences(ctx context.Context, req *dto.DepartmentRequest) error {
	if req.ParentID != nil {
		if _, err := s.deptRepo.GetByID(ctx, *req.ParentID); err != nil {
			return err
		}
	}
	if req.ManagerID != nil {
		if _, err := s.empRepo.GetByID(ctx, *req.ManagerID); err != nil {
			if errors.Is(err, domain.ErrEmployeeNotFound) {
				return domain.ErrManagerNotFound
			}
			return err
		}
	}
	return nil
}
