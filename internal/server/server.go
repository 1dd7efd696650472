// Package server exposes the Companies House lookups and the network builder
// over HTTP, with server-sent events for build progress.
package server

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/alfredjeanlab/corpnet/internal/companieshouse"
	"github.com/alfredjeanlab/corpnet/internal/events"
	"github.com/alfredjeanlab/corpnet/internal/graph"
)

// Server handles API requests by delegating to the Companies House client and
// the network builder. Every request hits the upstream API directly; nothing
// is cached or persisted.
type Server struct {
	client    companieshouse.Client
	builder   *graph.Builder
	publisher events.Publisher
	sseHub    *sseHub
	buildOpts graph.Options
}

// NewServer returns a Server backed by the given client and publisher.
// buildOpts provides the default bounds for network builds; requests may
// tighten them per call but never exceed them.
func NewServer(client companieshouse.Client, publisher events.Publisher, buildOpts graph.Options) *Server {
	return &Server{
		client:    client,
		builder:   graph.NewBuilder(client),
		publisher: publisher,
		sseHub:    newSSEHub(),
		buildOpts: buildOpts,
	}
}

// publish sends an event to NATS and to connected SSE clients. Both are
// best-effort; failures are logged but do not block the caller.
func (s *Server) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "error", err)
	}
	s.broadcastEvent(topic, event)
}

// broadcastEvent fans an event out to SSE clients.
func (s *Server) broadcastEvent(topic string, event any) {
	if s.sseHub == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Warn("failed to marshal event for SSE broadcast", "topic", topic, "error", err)
		return
	}
	s.sseHub.broadcast(topic, payload)
}

// inputError indicates invalid user input. The HTTP layer maps this to 400.
type inputError string

func (e inputError) Error() string { return string(e) }
