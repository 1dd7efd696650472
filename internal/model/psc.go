package model

// PSCKind distinguishes the entity types behind a person-with-significant-
// control notification.
type PSCKind string

const (
	PSCIndividual      PSCKind = "individual"
	PSCCorporateEntity PSCKind = "corporate-entity"
	PSCLegalPerson     PSCKind = "legal-person"
)

// String returns the string representation of the kind.
func (k PSCKind) String() string {
	return string(k)
}

// IsValid checks whether the kind is a known value.
func (k PSCKind) IsValid() bool {
	switch k {
	case PSCIndividual, PSCCorporateEntity, PSCLegalPerson:
		return true
	}
	return false
}

// PSC is a person (or corporate entity) with significant control over a
// company. NaturesOfControl carries the registry's control flags verbatim,
// e.g. "ownership-of-shares-75-to-100-percent".
type PSC struct {
	PSCID              string   `json:"psc_id,omitempty"`
	Name               string   `json:"name"`
	Kind               PSCKind  `json:"kind"`
	NaturesOfControl   []string `json:"natures_of_control,omitempty"`
	NotifiedOn         string   `json:"notified_on,omitempty"`
	CeasedOn           string   `json:"ceased_on,omitempty"`
	Nationality        string   `json:"nationality,omitempty"`
	CountryOfResidence string   `json:"country_of_residence,omitempty"`
	CompanyNumber      string   `json:"company_number,omitempty"`
}

// Ceased reports whether the control notification has ended.
func (p *PSC) Ceased() bool {
	return p.CeasedOn != ""
}
