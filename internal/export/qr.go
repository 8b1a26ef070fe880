package export

import (
	"github.com/employee-directory/internal/domain"
	qrcode "github.com/skip2/go-qrcode"
)

// Размер QR-кода в пикселях
const qrSize = 256

// EmployeeQRCode кодирует визитку сотрудника в PNG с QR-кодом
func EmployeeQRCode(emp *domain.Employee) ([]byte, error) {
	data, err := EmployeeVCardString(emp)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(data, qrcode.Medium, qrSize)
}
