package model

// CompanyStatus represents the registration status reported by Companies House.
type CompanyStatus string

const (
	StatusActive                CompanyStatus = "active"
	StatusDissolved             CompanyStatus = "dissolved"
	StatusLiquidation           CompanyStatus = "liquidation"
	StatusReceivership          CompanyStatus = "receivership"
	StatusAdministration        CompanyStatus = "administration"
	StatusVoluntaryArrangement  CompanyStatus = "voluntary-arrangement"
	StatusConvertedClosed       CompanyStatus = "converted-closed"
	StatusInsolvencyProceedings CompanyStatus = "insolvency-proceedings"
)

// String returns the string representation of the status.
func (s CompanyStatus) String() string {
	return string(s)
}

// IsValid checks whether the status is a value the registry documents.
func (s CompanyStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusDissolved, StatusLiquidation, StatusReceivership,
		StatusAdministration, StatusVoluntaryArrangement, StatusConvertedClosed,
		StatusInsolvencyProceedings:
		return true
	}
	return false
}

// Address is a registered office address as returned by the registry.
// Field names mirror the Companies House response fields.
type Address struct {
	Premises     string `json:"premises,omitempty"`
	AddressLine1 string `json:"address_line_1,omitempty"`
	AddressLine2 string `json:"address_line_2,omitempty"`
	Locality     string `json:"locality,omitempty"`
	Region       string `json:"region,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	Country      string `json:"country,omitempty"`
}

// Company is a point-in-time snapshot of a company record. It is never
// persisted; every instance comes straight from an API response.
type Company struct {
	CompanyNumber  string        `json:"company_number"`
	CompanyName    string        `json:"company_name"`
	CompanyStatus  CompanyStatus `json:"company_status"`
	CompanyType    string        `json:"company_type,omitempty"`
	DateOfCreation string        `json:"date_of_creation,omitempty"`
	SICCodes       []string      `json:"sic_codes,omitempty"`
	Address        Address       `json:"registered_office_address"`
}
