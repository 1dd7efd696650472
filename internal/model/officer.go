package model

// OfficerRole categorizes an officer appointment. Well-known constants are
// provided below, but the registry reports more role strings than any fixed
// list; unknown roles are carried through verbatim.
type OfficerRole string

const (
	RoleDirector          OfficerRole = "director"
	RoleSecretary         OfficerRole = "secretary"
	RoleLLPMember         OfficerRole = "llp-member"
	RoleCorporateDirector OfficerRole = "corporate-director"
	RoleNomineeDirector   OfficerRole = "nominee-director"
)

// String returns the string representation of the role.
func (r OfficerRole) String() string {
	return string(r)
}

// IsValid reports whether the role is a non-empty string. Roles are
// extensible, so any non-empty value is accepted.
func (r OfficerRole) IsValid() bool {
	return r != ""
}

// Officer is one appointment row from a company's officer list. The
// CompanyNumber field records which company the row was fetched for.
type Officer struct {
	// OfficerID is derived from the appointments link and keys the officer
	// appointments endpoint. Empty when the registry returned no link.
	OfficerID          string      `json:"officer_id,omitempty"`
	Name               string      `json:"name"`
	Role               OfficerRole `json:"officer_role"`
	AppointedOn        string      `json:"appointed_on,omitempty"`
	ResignedOn         string      `json:"resigned_on,omitempty"`
	Nationality        string      `json:"nationality,omitempty"`
	Occupation         string      `json:"occupation,omitempty"`
	CountryOfResidence string      `json:"country_of_residence,omitempty"`
	CompanyNumber      string      `json:"company_number,omitempty"`
}

// Resigned reports whether the appointment has ended.
func (o *Officer) Resigned() bool {
	return o.ResignedOn != ""
}

// Appointment is one row from an officer's appointments list: a company the
// officer serves (or served) at.
type Appointment struct {
	CompanyNumber string      `json:"company_number"`
	CompanyName   string      `json:"company_name"`
	CompanyStatus string      `json:"company_status,omitempty"`
	Role          OfficerRole `json:"officer_role"`
	AppointedOn   string      `json:"appointed_on,omitempty"`
	ResignedOn    string      `json:"resigned_on,omitempty"`
}
