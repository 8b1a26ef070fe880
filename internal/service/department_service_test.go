package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/employee-directory/internal/cache"
	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/dto"
	"github.com/employee-directory/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDepartmentService() (service.DepartmentService, *mockDepartmentRepo, *mockEmployeeRepo, *cache.Cache) {
	deptRepo := newMockDepartmentRepo()
	empRepo := newMockEmployeeRepo()
	c := cache.New(time.Minute)
	return service.NewDepartmentService(deptRepo, empRepo, c), deptRepo, empRepo, c
}

func TestDepartmentCreate(t *testing.T) {
	svc, _, _, _ := newDepartmentService()
	ctx := context.Background()

	dept, err := svc.Create(ctx, &dto.DepartmentRequest{Name: "Инженерия"})
	require.NoError(t, err)
	assert.NotZero(t, dept.ID)
	assert.Equal(t, "Инженерия", dept.Name)
}

func TestDepartmentCreateRequiresName(t *testing.T) {
	svc, _, _, _ := newDepartmentService()

	_, err := svc.Create(context.Background(), &dto.DepartmentRequest{})
	assert.Error(t, err)
}

func TestDepartmentCreateChecksParent(t *testing.T) {
	svc, _, _, _ := newDepartmentService()
	ctx := context.Background()

	_, err := svc.Create(ctx, &dto.DepartmentRequest{Name: "Отдел", ParentID: ptr(int64(42))})
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)
}

func TestDepartmentSelfParent(t *testing.T) {
	svc, _, _, _ := newDepartmentService()
	ctx := context.Background()

	dept, err := svc.Create(ctx, &dto.DepartmentRequest{Name: "Отдел"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, dept.ID, &dto.DepartmentRequest{Name: "Отдел", ParentID: &dept.ID})
	assert.ErrorIs(t, err, domain.ErrSelfReference)
}

func TestDepartmentCycleDetection(t *testing.T) {
	svc, _, _, _ := newDepartmentService()
	ctx := context.Background()

	root, err := svc.Create(ctx, &dto.DepartmentRequest{Name: "Корень"})
	require.NoError(t, err)
	child, err := svc.Create(ctx, &dto.DepartmentRequest{Name: "Ребёнок", ParentID: &root.ID})
	require.NoError(t, err)

	// Перенос корня под собственного потомка запрещён
	_, err = svc.Update(ctx, root.ID, &dto.DepartmentRequest{Name: "Корень", ParentID: &child.ID})
	assert.ErrorIs(t, err, domain.ErrCyclicReference)
}

func TestDepartmentListUsesCache(t *testing.T) {
	svc, deptRepo, _, _ := newDepartmentService()
	ctx := context.Background()

	_, err := svc.Create(ctx, &dto.DepartmentRequest{Name: "ИТ"})
	require.NoError(t, err)

	_, err = svc.List(ctx)
	require.NoError(t, err)
	_, err = svc.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, deptRepo.getAllCalls)
}

func TestDepartmentDeleteDetachesEmployeesAndChildren(t *testing.T) {
	svc, deptRepo, empRepo, _ := newDepartmentService()
	ctx := context.Background()

	parent, err := svc.Create(ctx, &dto.DepartmentRequest{Name: "Дирекция"})
	require.NoError(t, err)
	middle, err := svc.Create(ctx, &dto.DepartmentRequest{Name: "Отдел", ParentID: &parent.ID})
	require.NoError(t, err)
	leaf, err := svc.Create(ctx, &dto.DepartmentRequest{Name: "Группа", ParentID: &middle.ID})
	require.NoError(t, err)

	emp := &domain.Employee{LastName: "Иванов", FirstName: "Иван", DepartmentID: &middle.ID}
	require.NoError(t, empRepo.Create(ctx, emp))

	require.NoError(t, svc.Delete(ctx, middle.ID))

	// Сотрудники остаются без подразделения
	gotEmp, err := empRepo.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Nil(t, gotEmp.DepartmentID)

	// Дети переносятся к родителю удалённого узла
	gotLeaf, err := deptRepo.GetByID(ctx, leaf.ID)
	require.NoError(t, err)
	require.NotNil(t, gotLeaf.ParentID)
	assert.Equal(t, parent.ID, *gotLeaf.ParentID)

	_, err = svc.GetByID(ctx, middle.ID)
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)
}

func TestDepartmentEmployeesByDepartment(t *testing.T) {
	deptRepo := newMockDepartmentRepo()
	empRepo := newMockEmployeeRepo()
	c := cache.New(time.Minute)
	deptSvc := service.NewDepartmentService(deptRepo, empRepo, c)
	empSvc := service.NewEmployeeService(empRepo, deptRepo, c)
	ctx := context.Background()

	eng, err := deptSvc.Create(ctx, &dto.DepartmentRequest{Name: "Инженерия"})
	require.NoError(t, err)

	created, err := empSvc.Create(ctx, &dto.EmployeeRequest{
		LastName:     "Иванов",
		FirstName:    "Иван",
		DepartmentID: &eng.ID,
	})
	require.NoError(t, err)

	_, err = empSvc.Create(ctx, &dto.EmployeeRequest{LastName: "Петров", FirstName: "Пётр"})
	require.NoError(t, err)

	got, err := empSvc.Filter(ctx, dto.EmployeeFilter{DepartmentID: &eng.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, created.ID, got[0].ID)
}

func TestDepartmentTree(t *testing.T) {
	svc, _, _, _ := newDepartmentService()
	ctx := context.Background()

	root, err := svc.Create(ctx, &dto.DepartmentRequest{Name: "Дирекция"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &dto.DepartmentRequest{Name: "Бухгалтерия", ParentID: &root.ID})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &dto.DepartmentRequest{Name: "ИТ", ParentID: &root.ID})
	require.NoError(t, err)

	roots, err := svc.Tree(ctx)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "Дирекция", roots[0].Department.Name)
	assert.Len(t, roots[0].Children, 2)
}
