package export

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/dto"
	"github.com/employee-directory/internal/service"
)

const dateLayout = "2006-01-02"

// Колонки CSV-файла сотрудников; порядок фиксирован и общий для экспорта и импорта
var csvHeader = []string{
	"id", "last_name", "first_name", "middle_name", "department_id",
	"position", "work_phone", "mobile_phone", "email",
	"birth_date", "hire_date", "room", "skills",
}

// EmployeesToCSV выгружает сотрудников в CSV
func EmployeesToCSV(w io.Writer, employees []domain.Employee) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, emp := range employees {
		record := []string{
			strconv.FormatInt(emp.ID, 10),
			emp.LastName,
			emp.FirstName,
			optString(emp.MiddleName),
			optID(emp.DepartmentID),
			optString(emp.Position),
			optString(emp.WorkPhone),
			optString(emp.MobilePhone),
			optString(emp.Email),
			optDate(emp.BirthDate),
			optDate(emp.HireDate),
			optString(emp.Room),
			optString(emp.Skills),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ImportResult - итог импорта: строки обрабатываются независимо,
// ошибочные пропускаются и подсчитываются
type ImportResult struct {
	Imported int
	Skipped  int
}

// EmployeesFromCSV читает CSV и добавляет сотрудников через сервис,
// строка за строкой. Колонка id игнорируется.
func EmployeesFromCSV(ctx context.Context, r io.Reader, employees service.EmployeeService) (ImportResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return ImportResult{}, err
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	var result ImportResult
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped++
			continue
		}

		req := requestFromRecord(record, index)
		if _, err := employees.Create(ctx, req); err != nil {
			result.Skipped++
			continue
		}
		result.Imported++
	}

	return result, nil
}

func requestFromRecord(record []string, index map[string]int) *dto.EmployeeRequest {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}
	opt := func(name string) *string {
		if v := field(name); v != "" {
			return &v
		}
		return nil
	}

	req := &dto.EmployeeRequest{
		LastName:    field("last_name"),
		FirstName:   field("first_name"),
		MiddleName:  opt("middle_name"),
		Position:    opt("position"),
		WorkPhone:   opt("work_phone"),
		MobilePhone: opt("mobile_phone"),
		Email:       opt("email"),
		BirthDate:   opt("birth_date"),
		HireDate:    opt("hire_date"),
		Room:        opt("room"),
		Skills:      opt("skills"),
	}

	if v := field("department_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			req.DepartmentID = &id
		}
	}

	return req
}

func optString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func optID(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func optDate(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format(dateLayout)
}
