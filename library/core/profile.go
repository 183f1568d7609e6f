package core

import "strings"

// Profile is the personal data of a user.
type Profile struct {
	FirstName       string
	PaternalSurname string
	MaternalSurname string
	BirthDate       string // YYYY-MM-DD or empty
	Phone           string
	Address         string
	Gender          string
}

// DisplayName is first name and paternal surname, as shown in the dashboards.
func (p Profile) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.PaternalSurname)
}

// FullName includes the maternal surname.
func (p Profile) FullName() string {
	return strings.TrimSpace(p.DisplayName() + " " + p.MaternalSurname)
}
