package cli

import (
	"errors"
	"fmt"

	"github.com/employee-directory/internal/domain"
	"github.com/go-playground/validator/v10"
)

// describeError переводит ошибки сервисного слоя в сообщения для оператора
func describeError(err error) error {
	switch {
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return fmt.Errorf("сотрудник не найден")
	case errors.Is(err, domain.ErrDepartmentNotFound):
		return fmt.Errorf("подразделение не найдено")
	case errors.Is(err, domain.ErrManagerNotFound):
		return fmt.Errorf("руководитель не найден")
	case errors.Is(err, domain.ErrUserNotFound):
		return fmt.Errorf("пользователь не найден")
	case errors.Is(err, domain.ErrDuplicateUsername):
		return fmt.Errorf("пользователь с таким именем уже существует")
	case errors.Is(err, domain.ErrSelfReference):
		return fmt.Errorf("запись не может ссылаться сама на себя")
	case errors.Is(err, domain.ErrCyclicReference):
		return fmt.Errorf("перенос создал бы цикл в дереве подразделений")
	case errors.Is(err, domain.ErrInvalidMonth):
		return fmt.Errorf("месяц должен быть от 1 до 12")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fmt.Errorf("неверное имя пользователя или пароль")
	case errors.Is(err, domain.ErrPermissionDenied):
		return fmt.Errorf("недостаточно прав для этого действия")
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, fe.Field())
		}
		return fmt.Errorf("некорректные поля: %v", fields)
	}

	return err
}
