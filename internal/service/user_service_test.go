package service_test

import (
	"context"
	"testing"

	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/dto"
	"github.com/employee-directory/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserService() (service.UserService, *mockEmployeeRepo) {
	empRepo := newMockEmployeeRepo()
	return service.NewUserService(newMockUserRepo(), empRepo), empRepo
}

func TestUserCreate(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	user, err := svc.Create(ctx, &dto.CreateUserRequest{
		Username: "petrov",
		Password: "secret123",
		Role:     domain.RoleEditor,
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, domain.RoleEditor, user.Role)

	// В хранилище попадает только bcrypt-хэш
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
}

func TestUserCreateValidation(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	cases := []struct {
		name string
		req  dto.CreateUserRequest
	}{
		{"короткий логин", dto.CreateUserRequest{Username: "ab", Password: "secret123", Role: "viewer"}},
		{"короткий пароль", dto.CreateUserRequest{Username: "petrov", Password: "12345", Role: "viewer"}},
		{"неизвестная роль", dto.CreateUserRequest{Username: "petrov", Password: "secret123", Role: "superuser"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, &tc.req)
			assert.Error(t, err)
		})
	}
}

func TestUserCreateDuplicate(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	req := &dto.CreateUserRequest{Username: "petrov", Password: "secret123", Role: "viewer"}
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
}

func TestUserCreateChecksEmployee(t *testing.T) {
	svc, empRepo := newUserService()
	ctx := context.Background()

	_, err := svc.Create(ctx, &dto.CreateUserRequest{
		Username:   "petrov",
		Password:   "secret123",
		Role:       "viewer",
		EmployeeID: ptr(int64(99)),
	})
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)

	emp := &domain.Employee{LastName: "Петров", FirstName: "Пётр"}
	require.NoError(t, empRepo.Create(ctx, emp))

	user, err := svc.Create(ctx, &dto.CreateUserRequest{
		Username:   "petrov",
		Password:   "secret123",
		Role:       "viewer",
		EmployeeID: &emp.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, user.EmployeeID)
	assert.Equal(t, emp.ID, *user.EmployeeID)
}

func TestUserGetByUsername(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	_, err := svc.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.Create(ctx, &dto.CreateUserRequest{Username: "petrov", Password: "secret123", Role: "admin"})
	require.NoError(t, err)

	user, err := svc.GetByUsername(ctx, "petrov")
	require.NoError(t, err)
	assert.Equal(t, "petrov", user.Username)
}
