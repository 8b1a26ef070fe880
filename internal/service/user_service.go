package service

import (
	"context"
	"strings"

	"github.com/employee-directory/internal/auth"
	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/dto"
	"github.com/employee-directory/internal/repository"
	"github.com/go-playground/validator/v10"
)

// UserService определяет интерфейс бизнес-логики для учётных записей
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	empRepo  repository.EmployeeRepository
	validate *validator.Validate
}

// NewUserService создаёт новый экземпляр сервиса
func NewUserService(userRepo repository.UserRepository, empRepo repository.EmployeeRepository) UserService {
	return &userService{
		userRepo: userRepo,
		empRepo:  empRepo,
		validate: dto.NewValidator(),
	}
}

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*domain.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	// Привязка к сотруднику необязательна, но должна указывать на существующего
	if req.EmployeeID != nil {
		if _, err := s.empRepo.GetByID(ctx, *req.EmployeeID); err != nil {
			return nil, err
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hash,
		Role:         req.Role,
		EmployeeID:   req.EmployeeID,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}
