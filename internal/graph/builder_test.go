package graph

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/alfredjeanlab/corpnet/internal/companieshouse"
	"github.com/alfredjeanlab/corpnet/internal/model"
)

// fakeClient is an in-memory companieshouse.Client for builder tests.
type fakeClient struct {
	searches     map[string][]*model.Company
	profiles     map[string]*model.Company
	officers     map[string][]*model.Officer
	pscs         map[string][]*model.PSC
	appointments map[string][]*model.Appointment

	officersErr error
	apptErr     map[string]error
}

func (f *fakeClient) SearchCompanies(_ context.Context, query string, _ int) ([]*model.Company, error) {
	matches := f.searches[query]
	if len(matches) == 0 {
		return nil, &companieshouse.NotFoundError{Resource: "companies matching " + query}
	}
	return matches, nil
}

func (f *fakeClient) GetCompanyProfile(_ context.Context, number string) (*model.Company, error) {
	c, ok := f.profiles[number]
	if !ok {
		return nil, &companieshouse.NotFoundError{Resource: "company " + number}
	}
	return c, nil
}

func (f *fakeClient) GetOfficers(_ context.Context, number string) ([]*model.Officer, error) {
	if f.officersErr != nil {
		return nil, f.officersErr
	}
	return f.officers[number], nil
}

func (f *fakeClient) GetPSCs(_ context.Context, number string) ([]*model.PSC, error) {
	return f.pscs[number], nil
}

func (f *fakeClient) GetAppointments(_ context.Context, officerID string) ([]*model.Appointment, error) {
	if err := f.apptErr[officerID]; err != nil {
		return nil, err
	}
	return f.appointments[officerID], nil
}

func (f *fakeClient) Close() error { return nil }

func seedFixture() *fakeClient {
	return &fakeClient{
		searches: map[string][]*model.Company{
			"Tesco PLC": {{CompanyNumber: "00445790", CompanyName: "TESCO PLC"}},
		},
		profiles: map[string]*model.Company{
			"00445790": {
				CompanyNumber: "00445790",
				CompanyName:   "TESCO PLC",
				CompanyStatus: model.StatusActive,
			},
		},
		officers:     map[string][]*model.Officer{},
		pscs:         map[string][]*model.PSC{},
		appointments: map[string][]*model.Appointment{},
		apptErr:      map[string]error{},
	}
}

func nodeIDs(n *model.Network) []string {
	ids := make([]string, 0, len(n.Nodes))
	for _, node := range n.Nodes {
		ids = append(ids, node.ID)
	}
	return ids
}

func findEdge(n *model.Network, source, target string) *model.Edge {
	for _, e := range n.Edges {
		if e.Source == source && e.Target == target {
			return e
		}
	}
	return nil
}

func TestLooksLikeCompanyNumber(t *testing.T) {
	for _, tc := range []struct {
		query string
		want  bool
	}{
		{"00445790", true},
		{"SC123456", true},
		{"NI000123", true},
		{"Tesco PLC", false},
		{"1234567", false},
		{"123456789", false},
		{"", false},
	} {
		if got := LooksLikeCompanyNumber(tc.query); got != tc.want {
			t.Errorf("LooksLikeCompanyNumber(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestBuild_StarGraphWhenNoAppointmentLinks(t *testing.T) {
	fc := seedFixture()
	fc.officers["00445790"] = []*model.Officer{
		{Name: "DOE, Jane", Role: model.RoleDirector, AppointedOn: "2015-06-01"},
		{Name: "SMITH, John", Role: model.RoleSecretary, AppointedOn: "2010-01-15"},
	}

	b := NewBuilder(fc)
	network, err := b.Build(context.Background(), "Tesco PLC", Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := []string{"company_00445790", "person_doe,_jane", "person_smith,_john"}
	if got := nodeIDs(network); !reflect.DeepEqual(got, want) {
		t.Errorf("nodes = %v, want %v", got, want)
	}
	for _, e := range network.Edges {
		if e.Relationship != model.RelOfficerOf {
			t.Errorf("star graph should only have officer_of edges, got %q", e.Relationship)
		}
	}
	if network.Partial() {
		t.Errorf("unexpected failures: %v", network.Failures)
	}
	if network.Meta.SeedNumber != "00445790" {
		t.Errorf("seed number = %q, want 00445790", network.Meta.SeedNumber)
	}
	if network.Meta.BuildID == "" {
		t.Error("build ID should be set")
	}
}

func TestBuild_DirectNumberLookupSkipsSearch(t *testing.T) {
	fc := seedFixture()
	fc.searches = nil // any search attempt would come back not-found

	b := NewBuilder(fc)
	network, err := b.Build(context.Background(), "00445790", Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if network.Meta.SeedNumber != "00445790" {
		t.Errorf("seed number = %q, want 00445790", network.Meta.SeedNumber)
	}
	// Seed resolution via direct lookup costs one call; officers and PSCs one
	// more each.
	if network.Meta.APICalls != 3 {
		t.Errorf("api calls = %d, want 3", network.Meta.APICalls)
	}
}

func TestBuild_SeedResolutionFailureIsFatal(t *testing.T) {
	fc := seedFixture()
	b := NewBuilder(fc)

	_, err := b.Build(context.Background(), "No Such Company Ltd", Options{})
	if err == nil {
		t.Fatal("Build() should fail when the seed cannot be resolved")
	}
	if !companieshouse.IsNotFound(err) {
		t.Errorf("error = %v, want NotFoundError", err)
	}
}

func TestBuild_ExpandsSharedOfficers(t *testing.T) {
	fc := seedFixture()
	fc.officers["00445790"] = []*model.Officer{
		{OfficerID: "off1", Name: "DOE, Jane", Role: model.RoleDirector, AppointedOn: "2015-06-01"},
		{OfficerID: "off2", Name: "SMITH, John", Role: model.RoleDirector, AppointedOn: "2012-02-01"},
	}
	fc.appointments["off1"] = []*model.Appointment{
		{CompanyNumber: "00445790", CompanyName: "TESCO PLC"}, // seed itself, skipped
		{CompanyNumber: "11111111", CompanyName: "ALPHA LTD", CompanyStatus: "active"},
		{CompanyNumber: "22222222", CompanyName: "BETA LTD"},
	}
	fc.appointments["off2"] = []*model.Appointment{
		{CompanyNumber: "11111111", CompanyName: "ALPHA LTD"},
	}

	b := NewBuilder(fc)
	network, err := b.Build(context.Background(), "00445790", Options{Workers: 2})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// Companies sort first: seed, then discoveries by number.
	want := []string{
		"company_00445790", "company_11111111", "company_22222222",
		"person_doe,_jane", "person_smith,_john",
	}
	if got := nodeIDs(network); !reflect.DeepEqual(got, want) {
		t.Errorf("nodes = %v, want %v", got, want)
	}

	alpha := findEdge(network, "company_00445790", "company_11111111")
	if alpha == nil {
		t.Fatal("missing shared-officer edge to ALPHA LTD")
	}
	if !reflect.DeepEqual(alpha.SharedOfficers, []string{"DOE, Jane", "SMITH, John"}) {
		t.Errorf("shared officers = %v, want both, sorted", alpha.SharedOfficers)
	}

	beta := findEdge(network, "company_00445790", "company_22222222")
	if beta == nil {
		t.Fatal("missing shared-officer edge to BETA LTD")
	}
	if !reflect.DeepEqual(beta.SharedOfficers, []string{"DOE, Jane"}) {
		t.Errorf("shared officers = %v, want [DOE, Jane]", beta.SharedOfficers)
	}

	if network.Meta.Truncated {
		t.Error("network should not be truncated")
	}
	if network.Partial() {
		t.Errorf("unexpected failures: %v", network.Failures)
	}
}

func TestBuild_TruncatesAtCeiling(t *testing.T) {
	fc := seedFixture()
	fc.officers["00445790"] = []*model.Officer{
		{OfficerID: "off1", Name: "DOE, Jane", Role: model.RoleDirector},
	}
	// Five discoveries with a ceiling of three. Numbers are deliberately out
	// of order to prove truncation happens after sorting.
	fc.appointments["off1"] = []*model.Appointment{
		{CompanyNumber: "55555555", CompanyName: "E LTD"},
		{CompanyNumber: "11111111", CompanyName: "A LTD"},
		{CompanyNumber: "44444444", CompanyName: "D LTD"},
		{CompanyNumber: "22222222", CompanyName: "B LTD"},
		{CompanyNumber: "33333333", CompanyName: "C LTD"},
	}

	b := NewBuilder(fc)
	network, err := b.Build(context.Background(), "00445790", Options{MaxCompanies: 3})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if !network.Meta.Truncated {
		t.Error("truncated flag should be set")
	}
	// Exactly K expanded companies plus the seed.
	if got := network.CompanyCount(); got != 4 {
		t.Errorf("company count = %d, want 4 (seed + ceiling of 3)", got)
	}
	// The kept companies are the first three by company number.
	for _, number := range []string{"11111111", "22222222", "33333333"} {
		if findEdge(network, "company_00445790", "company_"+number) == nil {
			t.Errorf("expected company %s to survive truncation", number)
		}
	}
	for _, number := range []string{"44444444", "55555555"} {
		if findEdge(network, "company_00445790", "company_"+number) != nil {
			t.Errorf("company %s should have been truncated", number)
		}
	}
}

func TestBuild_DuplicateOfficerRowsSortDeterministically(t *testing.T) {
	fc := seedFixture()
	// The same person holds two appointments at the seed; the node dedupes
	// but both edges survive, ordered by role.
	fc.officers["00445790"] = []*model.Officer{
		{Name: "DOE, Jane", Role: model.RoleSecretary, AppointedOn: "2019-01-01"},
		{Name: "DOE, Jane", Role: model.RoleDirector, AppointedOn: "2021-03-01"},
	}

	b := NewBuilder(fc)
	network, err := b.Build(context.Background(), "00445790", Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got := nodeIDs(network); !reflect.DeepEqual(got, []string{"company_00445790", "person_doe,_jane"}) {
		t.Errorf("nodes = %v, want deduplicated person node", got)
	}
	if len(network.Edges) != 2 {
		t.Fatalf("got %d edges, want 2", len(network.Edges))
	}
	if network.Edges[0].Role != "director" || network.Edges[1].Role != "secretary" {
		t.Errorf("edge roles = [%s, %s], want [director, secretary]",
			network.Edges[0].Role, network.Edges[1].Role)
	}
}

func TestBuild_ExpansionFailureIsPartial(t *testing.T) {
	fc := seedFixture()
	fc.officers["00445790"] = []*model.Officer{
		{OfficerID: "off1", Name: "DOE, Jane", Role: model.RoleDirector},
		{OfficerID: "off2", Name: "SMITH, John", Role: model.RoleDirector},
	}
	fc.appointments["off1"] = []*model.Appointment{
		{CompanyNumber: "11111111", CompanyName: "ALPHA LTD"},
	}
	fc.apptErr["off2"] = &companieshouse.TransportError{Op: "GET", Err: errors.New("timeout")}

	b := NewBuilder(fc)
	network, err := b.Build(context.Background(), "00445790", Options{})
	if err != nil {
		t.Fatalf("Build() error = %v; expansion failures must not abort the build", err)
	}

	if !network.Partial() {
		t.Fatal("network should be marked partial")
	}
	if len(network.Failures) != 1 {
		t.Fatalf("got %d failures, want 1", len(network.Failures))
	}
	if network.Failures[0].OfficerName != "SMITH, John" {
		t.Errorf("failure officer = %q, want SMITH, John", network.Failures[0].OfficerName)
	}
	// The successful officer's discovery is still present.
	if findEdge(network, "company_00445790", "company_11111111") == nil {
		t.Error("edge from the successful expansion should survive")
	}
}

func TestBuild_OfficerListFailureDegradesToSeedOnly(t *testing.T) {
	fc := seedFixture()
	fc.officersErr = &companieshouse.TransportError{Op: "GET", Err: errors.New("timeout")}

	b := NewBuilder(fc)
	network, err := b.Build(context.Background(), "00445790", Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := nodeIDs(network); !reflect.DeepEqual(got, []string{"company_00445790"}) {
		t.Errorf("nodes = %v, want seed only", got)
	}
	if !network.Partial() {
		t.Error("network should be marked partial")
	}
}

func TestBuild_DissolvedSeedWithNoOfficers(t *testing.T) {
	fc := seedFixture()
	fc.profiles["00445790"].CompanyStatus = model.StatusDissolved

	b := NewBuilder(fc)
	network, err := b.Build(context.Background(), "00445790", Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(network.Nodes) != 1 {
		t.Errorf("got %d nodes, want 1", len(network.Nodes))
	}
	if network.Nodes[0].Company.CompanyStatus != model.StatusDissolved {
		t.Errorf("seed status = %q, want dissolved", network.Nodes[0].Company.CompanyStatus)
	}
	if network.Partial() {
		t.Errorf("unexpected failures: %v", network.Failures)
	}
}

func TestBuild_BoundsOfficerExpansion(t *testing.T) {
	fc := seedFixture()
	// Three officers, newest first after sorting; MaxOfficers keeps two.
	fc.officers["00445790"] = []*model.Officer{
		{OfficerID: "old", Name: "OLD, Olive", AppointedOn: "2001-01-01", Role: model.RoleDirector},
		{OfficerID: "new", Name: "NEW, Nora", AppointedOn: "2022-05-01", Role: model.RoleDirector},
		{OfficerID: "mid", Name: "MID, Mark", AppointedOn: "2015-03-01", Role: model.RoleDirector},
	}
	fc.appointments["old"] = []*model.Appointment{{CompanyNumber: "99999999", CompanyName: "OLDCO"}}

	b := NewBuilder(fc)
	network, err := b.Build(context.Background(), "00445790", Options{MaxOfficers: 2})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// OLD, Olive fell outside the recency bound, so neither her node nor her
	// appointments appear.
	for _, id := range nodeIDs(network) {
		if id == "person_old,_olive" || id == "company_99999999" {
			t.Errorf("node %s should have been excluded by MaxOfficers", id)
		}
	}
	if network.PersonCount() != 2 {
		t.Errorf("person count = %d, want 2", network.PersonCount())
	}
}

func TestBuild_IncludesPSCs(t *testing.T) {
	fc := seedFixture()
	fc.pscs["00445790"] = []*model.PSC{
		{Name: "ACME HOLDINGS LIMITED", Kind: model.PSCCorporateEntity,
			NaturesOfControl: []string{"ownership-of-shares-75-to-100-percent"}},
	}

	b := NewBuilder(fc)
	network, err := b.Build(context.Background(), "00445790", Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	edge := findEdge(network, "psc_acme_holdings_limited", "company_00445790")
	if edge == nil {
		t.Fatal("missing controls edge from PSC to seed")
	}
	if edge.Relationship != model.RelControls {
		t.Errorf("relationship = %q, want controls", edge.Relationship)
	}
}
