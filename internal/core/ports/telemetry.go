package ports

import (
	"context"
	"io"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records per-artifact progress. Each expansion item gets one
// vertex for the lifetime of its fetch+verify step.
type Telemetry interface {
	// Record starts recording a new vertex.
	Record(ctx context.Context, name string) (context.Context, Vertex)

	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one unit of work on the progress display.
type Vertex interface {
	// Stdout returns a writer for byte-level progress output.
	Stdout() io.Writer

	// Cached marks the vertex as served from the local cache.
	Cached()

	// Complete marks the vertex as finished, successfully or with an error.
	Complete(err error)
}
