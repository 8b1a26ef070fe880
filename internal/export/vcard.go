package export

import (
	"bytes"
	"io"

	"github.com/emersion/go-vcard"
	"github.com/employee-directory/internal/domain"
)

// EmployeeToVCard записывает визитку сотрудника в формате vCard.
// Заполняются только присутствующие поля.
func EmployeeToVCard(w io.Writer, emp *domain.Employee) error {
	card := make(vcard.Card)

	card.SetValue(vcard.FieldFormattedName, emp.FullName())

	middle := ""
	if emp.MiddleName != nil {
		middle = *emp.MiddleName
	}
	card.AddName(&vcard.Name{
		FamilyName:     emp.LastName,
		GivenName:      emp.FirstName,
		AdditionalName: middle,
	})

	if emp.Position != nil {
		card.SetValue(vcard.FieldTitle, *emp.Position)
	}
	if emp.WorkPhone != nil {
		card.Add(vcard.FieldTelephone, &vcard.Field{
			Value:  *emp.WorkPhone,
			Params: vcard.Params{vcard.ParamType: {"work"}},
		})
	}
	if emp.MobilePhone != nil {
		card.Add(vcard.FieldTelephone, &vcard.Field{
			Value:  *emp.MobilePhone,
			Params: vcard.Params{vcard.ParamType: {"cell"}},
		})
	}
	if emp.Email != nil {
		card.SetValue(vcard.FieldEmail, *emp.Email)
	}

	vcard.ToV4(card)
	return vcard.NewEncoder(w).Encode(card)
}

// EmployeeVCardString возвращает визитку строкой
func EmployeeVCardString(emp *domain.Employee) (string, error) {
	var buf bytes.Buffer
	if err := EmployeeToVCard(&buf, emp); err != nil {
		return "", err
	}
	return buf.String(), nil
}
