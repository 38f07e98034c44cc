// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/silopkg/silo/internal/adapters/console"
	_ "github.com/silopkg/silo/internal/adapters/logger"
	_ "github.com/silopkg/silo/internal/adapters/sign"
	_ "github.com/silopkg/silo/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "github.com/silopkg/silo/internal/app"
)
