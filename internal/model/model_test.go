package model

import (
	"testing"
	"time"
)

func TestCompanyStatusIsValid(t *testing.T) {
	valid := []CompanyStatus{
		StatusActive, StatusDissolved, StatusLiquidation, StatusReceivership,
		StatusAdministration, StatusVoluntaryArrangement, StatusConvertedClosed,
		StatusInsolvencyProceedings,
	}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("status %q should be valid", s)
		}
	}

	invalid := []CompanyStatus{"", "ACTIVE", "closed", "unknown"}
	for _, s := range invalid {
		if s.IsValid() {
			t.Errorf("status %q should be invalid", s)
		}
	}
}

func TestOfficerRoleIsValid(t *testing.T) {
	if !RoleDirector.IsValid() {
		t.Error("director should be valid")
	}
	// Roles are extensible; any non-empty string is accepted.
	if !OfficerRole("member-of-a-management-organ").IsValid() {
		t.Error("unknown non-empty role should be valid")
	}
	if OfficerRole("").IsValid() {
		t.Error("empty role should be invalid")
	}
}

func TestPSCKindIsValid(t *testing.T) {
	for _, k := range []PSCKind{PSCIndividual, PSCCorporateEntity, PSCLegalPerson} {
		if !k.IsValid() {
			t.Errorf("kind %q should be valid", k)
		}
	}
	if PSCKind("trust").IsValid() {
		t.Error("unknown kind should be invalid")
	}
}

func TestOfficerResigned(t *testing.T) {
	o := &Officer{Name: "JANE DOE"}
	if o.Resigned() {
		t.Error("officer without resigned_on should not be resigned")
	}
	o.ResignedOn = "2020-03-01"
	if !o.Resigned() {
		t.Error("officer with resigned_on should be resigned")
	}
}

func TestNodeIDs(t *testing.T) {
	if got, want := CompanyNodeID("00445790"), "company_00445790"; got != want {
		t.Errorf("CompanyNodeID = %q, want %q", got, want)
	}
	if got, want := PersonNodeID("  Jane DOE "), "person_jane_doe"; got != want {
		t.Errorf("PersonNodeID = %q, want %q", got, want)
	}
	if got, want := PSCNodeID("Acme Holdings Ltd"), "psc_acme_holdings_ltd"; got != want {
		t.Errorf("PSCNodeID = %q, want %q", got, want)
	}
}

func TestNetworkCounts(t *testing.T) {
	n := &Network{
		Nodes: []*Node{
			{ID: "company_1", Type: NodeCompany},
			{ID: "company_2", Type: NodeCompany},
			{ID: "person_a", Type: NodePerson},
			{ID: "psc_b", Type: NodePSC},
		},
		Meta: NetworkMeta{BuildID: "net-test", StartedAt: time.Now()},
	}

	if got := n.CompanyCount(); got != 2 {
		t.Errorf("CompanyCount() = %d, want 2", got)
	}
	if got := n.PersonCount(); got != 2 {
		t.Errorf("PersonCount() = %d, want 2", got)
	}
	if n.Partial() {
		t.Error("network without failures should not be partial")
	}

	n.Failures = append(n.Failures, ExpansionFailure{OfficerName: "JANE DOE", Error: "timeout"})
	if !n.Partial() {
		t.Error("network with failures should be partial")
	}
}
