package domain

import "errors"

// Определение бизнес-ошибок
var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrManagerNotFound    = errors.New("manager not found")
	ErrDuplicateUsername  = errors.New("user with this username already exists")
	ErrSelfReference      = errors.New("department cannot be its own parent")
	ErrCyclicReference    = errors.New("moving department would create a cycle")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidMonth       = errors.New("month must be between 1 and 12")
)
