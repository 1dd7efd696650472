// Package export renders built networks as JSON artifacts and writes them to
// pluggable destinations (local files, S3-compatible buckets). Exports are
// one-shot, on-demand snapshots for external rendering tools; nothing is ever
// read back.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/alfredjeanlab/corpnet/internal/model"
)

// Destination is the interface for an export target.
type Destination interface {
	// Write stores the JSON payload under the given key.
	Write(ctx context.Context, key string, data []byte) error

	// Describe returns a human-readable location for the key, e.g.
	// "s3://bucket/networks/net-abc.json".
	Describe(key string) string
}

// WriteNetworkJSON renders a network as indented JSON. The builder already
// orders nodes and edges deterministically, so equal networks produce
// byte-identical output.
func WriteNetworkJSON(network *model.Network, buf *bytes.Buffer) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(network); err != nil {
		return fmt.Errorf("encoding network: %w", err)
	}
	return nil
}

// Key returns the object key for a network artifact, derived from the build ID.
func Key(network *model.Network) string {
	return network.Meta.BuildID + ".json"
}

// Network renders the network and writes it to the destination. It returns
// the object key and payload size.
func Network(ctx context.Context, dest Destination, network *model.Network) (string, int, error) {
	var buf bytes.Buffer
	if err := WriteNetworkJSON(network, &buf); err != nil {
		return "", 0, err
	}
	key := Key(network)
	if err := dest.Write(ctx, key, buf.Bytes()); err != nil {
		return "", 0, err
	}
	return key, buf.Len(), nil
}
