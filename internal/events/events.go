// Package events defines the corpnet event bus: topic names, event payloads,
// and NATS-backed publisher/subscriber implementations.
package events

import (
	"context"

	"github.com/alfredjeanlab/corpnet/internal/model"
)

// Event topic constants
const (
	TopicSearchPerformed  = "corpnet.search.performed"
	TopicCompanyViewed    = "corpnet.company.viewed"
	TopicNetworkStarted   = "corpnet.network.started"
	TopicNetworkCompleted = "corpnet.network.completed"
	TopicNetworkPartial   = "corpnet.network.partial"
	TopicExportCompleted  = "corpnet.export.completed"
)

// Event types

type SearchPerformed struct {
	Query   string `json:"query"`
	Matches int    `json:"matches"`
}

type CompanyViewed struct {
	CompanyNumber string `json:"company_number"`
	CompanyName   string `json:"company_name,omitempty"`
}

// NetworkStarted is emitted when a build begins, before a build ID exists.
type NetworkStarted struct {
	Query string `json:"query"`
}

type NetworkCompleted struct {
	BuildID    string `json:"build_id"`
	SeedNumber string `json:"seed_company_number"`
	Nodes      int    `json:"nodes"`
	Edges      int    `json:"edges"`
	Truncated  bool   `json:"truncated"`
	APICalls   int    `json:"api_calls"`
}

type NetworkPartial struct {
	BuildID  string                   `json:"build_id"`
	Failures []model.ExpansionFailure `json:"failures"`
}

type ExportCompleted struct {
	BuildID     string `json:"build_id"`
	Destination string `json:"destination"`
	Bytes       int    `json:"bytes"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
