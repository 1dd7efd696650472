package server

import (
	"net/http"
	"strconv"

	"github.com/alfredjeanlab/corpnet/internal/events"
	"github.com/alfredjeanlab/corpnet/internal/graph"
)

// handleBuildNetwork handles GET /v1/network?q=...&max_companies=N&max_officers=N.
// Requests may tighten the configured bounds but never exceed them.
func (s *Server) handleBuildNetwork(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeLookupError(w, inputError("q is required"))
		return
	}

	opts, err := s.requestOptions(r)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicNetworkStarted, events.NetworkStarted{Query: q})

	network, err := s.builder.Build(r.Context(), q, opts)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicNetworkCompleted, events.NetworkCompleted{
		BuildID:    network.Meta.BuildID,
		SeedNumber: network.Meta.SeedNumber,
		Nodes:      len(network.Nodes),
		Edges:      len(network.Edges),
		Truncated:  network.Meta.Truncated,
		APICalls:   network.Meta.APICalls,
	})
	if network.Partial() {
		s.publish(r.Context(), events.TopicNetworkPartial, events.NetworkPartial{
			BuildID:  network.Meta.BuildID,
			Failures: network.Failures,
		})
	}

	writeJSON(w, http.StatusOK, network)
}

// requestOptions derives build options from query parameters, clamped to the
// server's configured bounds. Defaults are resolved first so a server built
// with zero options still enforces the standard ceilings.
func (s *Server) requestOptions(r *http.Request) (graph.Options, error) {
	opts := s.buildOpts.WithDefaults()
	q := r.URL.Query()

	if v := q.Get("max_companies"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return opts, inputError("max_companies must be a positive integer")
		}
		if n < opts.MaxCompanies {
			opts.MaxCompanies = n
		}
	}
	if v := q.Get("max_officers"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return opts, inputError("max_officers must be a positive integer")
		}
		if n < opts.MaxOfficers {
			opts.MaxOfficers = n
		}
	}

	return opts, nil
}
