package app

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/silopkg/silo/internal/adapters/console"            //nolint:depguard // Wired in app layer
	"github.com/silopkg/silo/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"github.com/silopkg/silo/internal/adapters/sign"               //nolint:depguard // Wired in app layer
	"github.com/silopkg/silo/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"github.com/silopkg/silo/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			progrock.NodeID,
			sign.NodeID,
			console.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			verifier, err := graft.Dep[ports.ArtifactVerifier](ctx)
			if err != nil {
				return nil, err
			}

			reporter, err := graft.Dep[ports.Reporter](ctx)
			if err != nil {
				return nil, err
			}

			return New(log, tel, verifier, reporter), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}
