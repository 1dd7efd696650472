package model

import (
	"strings"
	"time"
)

// NodeType classifies a network node.
type NodeType string

const (
	NodeCompany NodeType = "company"
	NodePerson  NodeType = "person"
	NodePSC     NodeType = "psc"
)

// Node is a single vertex in a company network. Company nodes are identified
// by company number; person and PSC nodes by a normalized name key.
type Node struct {
	ID      string   `json:"id"`
	Type    NodeType `json:"type"`
	Label   string   `json:"label"`
	Company *Company `json:"company,omitempty"`
	Officer *Officer `json:"officer,omitempty"`
	PSC     *PSC     `json:"psc,omitempty"`
}

// Edge relationship kinds.
const (
	RelOfficerOf     = "officer_of"     // person -> company
	RelControls      = "controls"       // psc -> company
	RelSharedOfficer = "shared_officer" // company -> company
)

// Edge connects two nodes. Company-to-company edges are collapsed: a single
// edge per company pair, with SharedOfficers listing every officer the pair
// has in common, sorted by name.
type Edge struct {
	Source         string   `json:"source"`
	Target         string   `json:"target"`
	Relationship   string   `json:"relationship"`
	Role           string   `json:"role,omitempty"`
	SharedOfficers []string `json:"shared_officers,omitempty"`
}

// ExpansionFailure records one lookup that failed during network expansion.
// Failures never abort a build; they are attached to the result so callers
// can surface a partial-data notice.
type ExpansionFailure struct {
	OfficerID     string `json:"officer_id,omitempty"`
	OfficerName   string `json:"officer_name,omitempty"`
	CompanyNumber string `json:"company_number,omitempty"`
	Error         string `json:"error"`
}

// NetworkMeta describes how a network was built.
type NetworkMeta struct {
	BuildID    string    `json:"build_id"`
	Query      string    `json:"query"`
	SeedNumber string    `json:"seed_company_number"`
	Truncated  bool      `json:"truncated"`
	APICalls   int       `json:"api_calls"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Network is the finalized graph produced by a build. Nodes are unique by ID
// and sorted deterministically before the build returns. PartialData mirrors
// Partial() so JSON consumers see the flag without inspecting failures.
type Network struct {
	Nodes       []*Node            `json:"nodes"`
	Edges       []*Edge            `json:"edges"`
	Meta        NetworkMeta        `json:"metadata"`
	PartialData bool               `json:"partial"`
	Failures    []ExpansionFailure `json:"failures,omitempty"`
}

// Partial reports whether any expansion lookups failed during the build.
func (n *Network) Partial() bool {
	return len(n.Failures) > 0
}

// CompanyCount returns the number of company nodes.
func (n *Network) CompanyCount() int {
	count := 0
	for _, node := range n.Nodes {
		if node.Type == NodeCompany {
			count++
		}
	}
	return count
}

// PersonCount returns the number of person and PSC nodes.
func (n *Network) PersonCount() int {
	count := 0
	for _, node := range n.Nodes {
		if node.Type == NodePerson || node.Type == NodePSC {
			count++
		}
	}
	return count
}

// PersonNodeID builds a stable node ID for a person from their display name.
func PersonNodeID(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, " ", "_")
	return "person_" + key
}

// PSCNodeID builds a stable node ID for a PSC from its display name.
func PSCNodeID(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, " ", "_")
	return "psc_" + key
}

// CompanyNodeID builds the node ID for a company. Node identity for
// companies is the company number itself.
func CompanyNodeID(number string) string {
	return "company_" + number
}
