package sign

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/silopkg/silo/internal/core/ports"
)

// NodeID is the unique identifier for the verifier Graft node.
const NodeID graft.ID = "adapter.sign"

func init() {
	graft.Register(graft.Node[ports.ArtifactVerifier]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ArtifactVerifier, error) {
			return New(), nil
		},
	})
}
