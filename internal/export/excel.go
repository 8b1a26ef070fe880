package export

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/service"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Employees"

// EmployeesToXLSX выгружает сотрудников на лист Employees книги XLSX
func EmployeesToXLSX(w io.Writer, employees []domain.Employee) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	for col, name := range csvHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return err
		}
	}

	for row, emp := range employees {
		values := []string{
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
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

// EmployeesFromXLSX читает первый лист книги XLSX и добавляет сотрудников
// через сервис. Первая строка считается заголовком с именами колонок CSV-формата.
func EmployeesFromXLSX(ctx context.Context, r io.Reader, employees service.EmployeeService) (ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return ImportResult{}, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{}, fmt.Errorf("no sheets found in workbook")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ImportResult{}, err
	}
	if len(rows) == 0 {
		return ImportResult{}, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[name] = i
	}

	var result ImportResult
	for _, row := range rows[1:] {
		req := requestFromRecord(row, index)
		if _, err := employees.Create(ctx, req); err != nil {
			result.Skipped++
			continue
		}
		result.Imported++
	}

	return result, nil
}
