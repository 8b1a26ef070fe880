package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/employee-directory/internal/cache"
	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/dto"
	"github.com/employee-directory/internal/repository"
	"github.com/go-playground/validator/v10"
)

// EmployeeService определяет интерфейс бизнес-логики для сотрудников
type EmployeeService interface {
	Create(ctx context.Context, req *dto.EmployeeRequest) (*domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Update(ctx context.Context, id int64, req *dto.EmployeeRequest) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]domain.Employee, error)
	Filter(ctx context.Context, filter dto.EmployeeFilter) ([]domain.Employee, error)
	FilterByHireDate(ctx context.Context, r dto.HireDateRange) ([]domain.Employee, error)
	BirthdaysInMonth(ctx context.Context, month int) ([]domain.Employee, error)
}

type employeeService struct {
	empRepo  repository.EmployeeRepository
	deptRepo repository.DepartmentRepository
	cache    *cache.Cache
	validate *validator.Validate
}

// NewEmployeeService создаёт новый экземпляр сервиса.
// Кэш принадлежит вызывающему и передаётся явно.
func NewEmployeeService(
	empRepo repository.EmployeeRepository,
	deptRepo repository.DepartmentRepository,
	c *cache.Cache,
) EmployeeService {
	return &employeeService{
		empRepo:  empRepo,
		deptRepo: deptRepo,
		cache:    c,
		validate: dto.NewValidator(),
	}
}

func (s *employeeService) Create(ctx context.Context, req *dto.EmployeeRequest) (*domain.Employee, error) {
	emp, err := s.fromRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.empRepo.Create(ctx, emp); err != nil {
		return nil, err
	}

	s.cache.InvalidateEmployees()
	return emp, nil
}

// GetByID сначала смотрит в индекс кэша, затем в хранилище
func (s *employeeService) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	if emp, ok := s.cache.EmployeeByID(id); ok {
		return &emp, nil
	}
	return s.empRepo.GetByID(ctx, id)
}

// List возвращает всех сотрудников, переиспользуя свежий снимок кэша
func (s *employeeService) List(ctx context.Context) ([]domain.Employee, error) {
	if employees, ok := s.cache.GetEmployees(); ok {
		return employees, nil
	}

	employees, err := s.empRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.SetEmployees(employees)
	return employees, nil
}

func (s *employeeService) Update(ctx context.Context, id int64, req *dto.EmployeeRequest) (*domain.Employee, error) {
	emp, err := s.fromRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	emp.ID = id

	// Сотрудник не может быть руководителем самого себя
	if emp.ManagerID != nil && *emp.ManagerID == id {
		return nil, domain.ErrSelfReference
	}

	if err := s.empRepo.Update(ctx, emp); err != nil {
		return nil, err
	}

	s.cache.InvalidateEmployees()
	return emp, nil
}

// Delete удаляет сотрудника и обнуляет ссылки на него как на руководителя
// у других сотрудников и у подразделений
func (s *employeeService) Delete(ctx context.Context, id int64) error {
	if err := s.empRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.empRepo.ClearManager(ctx, id); err != nil {
		return err
	}
	if err := s.deptRepo.ClearManager(ctx, id); err != nil {
		return err
	}

	s.cache.InvalidateAll()
	return nil
}

func (s *employeeService) Search(ctx context.Context, query string) ([]domain.Employee, error) {
	return s.empRepo.Search(ctx, strings.TrimSpace(query))
}

func (s *employeeService) Filter(ctx context.Context, filter dto.EmployeeFilter) ([]domain.Employee, error) {
	return s.empRepo.Filter(ctx, filter.DepartmentID, strings.TrimSpace(filter.Position))
}

func (s *employeeService) FilterByHireDate(ctx context.Context, r dto.HireDateRange) ([]domain.Employee, error) {
	if err := s.validate.Struct(&r); err != nil {
		return nil, err
	}

	start, err := parseDate(r.Start)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(r.End)
	if err != nil {
		return nil, err
	}

	return s.empRepo.FilterByHireDate(ctx, start, end)
}

func (s *employeeService) BirthdaysInMonth(ctx context.Context, month int) ([]domain.Employee, error) {
	if month < 1 || month > 12 {
		return nil, domain.ErrInvalidMonth
	}
	return s.empRepo.GetByBirthMonth(ctx, month)
}

// fromRequest валидирует запрос и собирает доменную запись,
// проверяя существование подразделения и руководителя перед записью
func (s *employeeService) fromRequest(ctx context.Context, req *dto.EmployeeRequest) (*domain.Employee, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	if req.DepartmentID != nil {
		if _, err := s.deptRepo.GetByID(ctx, *req.DepartmentID); err != nil {
			return nil, err
		}
	}
	if req.ManagerID != nil {
		if _, err := s.empRepo.GetByID(ctx, *req.ManagerID); err != nil {
			if errors.Is(err, domain.ErrEmployeeNotFound) {
				return nil, domain.ErrManagerNotFound
			}
			return nil, err
		}
	}

	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		return nil, err
	}
	hireDate, err := parseDate(req.HireDate)
	if err != nil {
		return nil, err
	}

	return &domain.Employee{
		LastName:     strings.TrimSpace(req.LastName),
		FirstName:    strings.TrimSpace(req.FirstName),
		MiddleName:   trimOptional(req.MiddleName),
		DepartmentID: req.DepartmentID,
		Position:     trimOptional(req.Position),
		WorkPhone:    trimOptional(req.WorkPhone),
		MobilePhone:  trimOptional(req.MobilePhone),
		Email:        trimOptional(req.Email),
		BirthDate:    birthDate,
		HireDate:     hireDate,
		Photo:        req.Photo,
		Room:         trimOptional(req.Room),
		Skills:       trimOptional(req.Skills),
		ManagerID:    req.ManagerID,
		WorkSchedule: trimOptional(req.WorkSchedule),
		Telegram:     trimOptional(req.Telegram),
		Whatsapp:     trimOptional(req.Whatsapp),
		Skype:        trimOptional(req.Skype),
	}, nil
}

func parseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
