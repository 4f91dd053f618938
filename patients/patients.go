// Package patients holds the inpatient record model and the maintenance
// operations over it.
package patients

// Gender values accepted by the backend.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// CivilStatus values accepted by the backend.
type CivilStatus string

const (
	CivilStatusUnmarried CivilStatus = "Unmarried"
	CivilStatusMarried   CivilStatus = "Married"
)

// AccountType distinguishes self-paying patients from corporate accounts.
type AccountType string

const (
	AccountIndividual AccountType = "Individual"
	AccountCorporate  AccountType = "Corporate"
)

// Inpatient is one patient record as served by the backend.
type Inpatient struct {
	PatientID   string      `json:"patientId"`
	FirstName   string      `json:"firstName"`
	Surname     string      `json:"surname"`
	Gender      Gender      `json:"gender"`
	DateOfBirth string      `json:"dateOfBirth"`
	NICNumber   string      `json:"nicNumber"`
	Address     string      `json:"address"`
	PhoneHome   string      `json:"phoneHome"`
	PhoneMobile string      `json:"phoneMobile"`
	Occupation  string      `json:"occupation"`
	CivilStatus CivilStatus `json:"civilStatus"`
	AccountType AccountType `json:"accountType"`
	CompanyID   string      `json:"companyId"`
	CompanyName string      `json:"companyName"`
	ModDate     string      `json:"modDate"`
}

// RecordID satisfies cursor.Record.
func (p Inpatient) RecordID() string { return p.PatientID }

// Company is a corporate account a patient can be billed against.
type Company struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
