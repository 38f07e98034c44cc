// Package download implements the depot download pipeline: directory
// preparation, dependency expansion, cached artifact fetch with bounded
// retry, and key fetch plus optional signature verification.
package download

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/silopkg/silo/internal/core/domain"
	"github.com/silopkg/silo/internal/core/ports"
)

// Task executes one download run. It is created per invocation, owns the
// depot client for that invocation, and holds no state beyond the run
// configuration and result tallies.
type Task struct {
	depot     ports.DepotClient
	verifier  ports.ArtifactVerifier
	reporter  ports.Reporter
	telemetry ports.Telemetry
	logger    ports.Logger

	req    domain.DownloadRequest
	layout domain.Layout
}

// NewTask creates a Task for the given request. An empty request root falls
// back to the process-standard cache root.
func NewTask(
	req domain.DownloadRequest,
	depot ports.DepotClient,
	verifier ports.ArtifactVerifier,
	reporter ports.Reporter,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Task {
	root := req.Root
	if root == "" {
		root = domain.DefaultRoot()
	}
	return &Task{
		depot:     depot,
		verifier:  verifier,
		reporter:  reporter,
		telemetry: telemetry,
		logger:    logger,
		req:       req,
		layout:    domain.NewLayout(root),
	}
}

// Run executes the full pipeline and returns the number of artifacts present
// in the download set (downloaded or already cached; unsupported-target
// skips are excluded). The first fatal error anywhere in the pipeline aborts
// the whole run.
func (t *Task) Run(ctx context.Context) (int, error) {
	if len(t.req.Idents) == 0 {
		return 0, domain.ErrNoInputIdents
	}

	t.reporter.Begin(fmt.Sprintf("Resolving dependencies for %d package idents", len(t.req.Idents)))
	t.reporter.Begin(fmt.Sprintf("Using channel %s from %s", t.req.Channel, t.req.Depot.URL))
	t.reporter.Begin(fmt.Sprintf("Using target %s", t.req.Target))
	t.reporter.Begin(fmt.Sprintf("Storing in download directory %s", t.layout.Root))

	if err := t.prepareDirectories(); err != nil {
		return 0, err
	}

	set, err := t.expand(ctx)
	if err != nil {
		return 0, err
	}

	results, err := t.fetchAll(ctx, set)
	if err != nil {
		return 0, err
	}

	var downloaded, cached, skipped int
	for _, res := range results {
		switch res.State {
		case StateDownloaded:
			downloaded++
		case StateCached:
			cached++
		case StateSkipped:
			skipped++
		}
	}
	t.logger.Debug("download run complete",
		"downloaded", downloaded, "cached", cached, "skipped", skipped)
	t.reporter.End(fmt.Sprintf("Downloaded %d artifacts (%d cached, %d skipped)",
		downloaded+cached, cached, skipped))

	return downloaded + cached, nil
}

// jobs returns the worker pool size for the parallel phases.
func (t *Task) jobs() int {
	if t.req.Jobs > 0 {
		return t.req.Jobs
	}
	return runtime.NumCPU()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
