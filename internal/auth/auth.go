package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/employee-directory/internal/config"
	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Manager отвечает за вход в приложение и проверку прав текущего пользователя
type Manager struct {
	users   repository.UserRepository
	logger  *slog.Logger
	current *domain.User
}

// NewManager создаёт новый экземпляр менеджера аутентификации
func NewManager(users repository.UserRepository, logger *slog.Logger) *Manager {
	return &Manager{
		users:  users,
		logger: logger,
	}
}

// HashPassword возвращает bcrypt-хэш пароля
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Authenticate проверяет пару логин/пароль и запоминает пользователя.
// Неизвестный логин и неверный пароль неразличимы для вызывающего.
func (m *Manager) Authenticate(ctx context.Context, username, password string) error {
	user, err := m.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidCredentials
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.ErrInvalidCredentials
	}

	m.current = user
	m.logger.Info("user authenticated",
		slog.String("username", user.Username),
		slog.String("role", user.Role),
	)
	return nil
}

// Logout сбрасывает текущего пользователя
func (m *Manager) Logout() {
	m.current = nil
}

// IsAuthenticated сообщает, выполнен ли вход
func (m *Manager) IsAuthenticated() bool {
	return m.current != nil
}

// CurrentUser возвращает текущего пользователя или nil
func (m *Manager) CurrentUser() *domain.User {
	return m.current
}

// HasPermission проверяет право текущего пользователя.
// Администратору разрешено всё, редактору - просмотр и изменение,
// наблюдателю - только просмотр. Неизвестная роль не имеет прав.
func (m *Manager) HasPermission(permission string) bool {
	if m.current == nil {
		return false
	}

	switch m.current.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleEditor:
		return permission == domain.PermissionView ||
			permission == domain.PermissionAdd ||
			permission == domain.PermissionEdit
	case domain.RoleViewer:
		return permission == domain.PermissionView
	}

	return false
}

// RequirePermission возвращает ошибку, если право отсутствует
func (m *Manager) RequirePermission(permission string) error {
	if m.current == nil {
		return domain.ErrNotAuthenticated
	}
	if !m.HasPermission(permission) {
		return domain.ErrPermissionDenied
	}
	return nil
}

// EnsureDefaultUsers создаёт стартовые учётные записи admin/editor/viewer,
// если их ещё нет. Пароли берутся из конфигурации.
func (m *Manager) EnsureDefaultUsers(ctx context.Context, seed config.SeedConfig) error {
	defaults := []struct {
		username string
		password string
		role     string
	}{
		{"admin", seed.AdminPassword, domain.RoleAdmin},
		{"editor", seed.EditorPassword, domain.RoleEditor},
		{"viewer", seed.ViewerPassword, domain.RoleViewer},
	}

	for _, d := range defaults {
		_, err := m.users.GetByUsername(ctx, d.username)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return err
		}

		hash, err := HashPassword(d.password)
		if err != nil {
			return err
		}

		user := &domain.User{
			Username:     d.username,
			PasswordHash: hash,
			Role:         d.role,
		}
		if err := m.users.Create(ctx, user); err != nil {
			return err
		}
		m.logger.Info("default user created", slog.String("username", d.username))
	}

	return nil
}
