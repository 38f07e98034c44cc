package ports

// Status labels a reporter line with the pipeline step it belongs to.
type Status string

const (
	// StatusResolving marks dependency resolution of one ident.
	StatusResolving Status = "Resolving"
	// StatusUsing marks the fully-qualified ident a resolution settled on.
	StatusUsing Status = "Using"
	// StatusFound marks the final expansion cardinality.
	StatusFound Status = "Found"
	// StatusDownloading marks an artifact or key download.
	StatusDownloading Status = "Downloading"
	// StatusCached marks an artifact served from the local cache.
	StatusCached Status = "Cached"
	// StatusVerifying marks signature verification of an artifact.
	StatusVerifying Status = "Verifying"
	// StatusSkipping marks an artifact skipped for an unsupported target.
	StatusSkipping Status = "Skipping"
	// StatusMissing marks an artifact the depot could not supply.
	StatusMissing Status = "Missing"
)

// Reporter is the human-facing progress surface of a run.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// Begin announces a new phase of the run.
	Begin(msg string)

	// Status reports one step within a phase.
	Status(status Status, msg string)

	// Warn reports a diagnostic that does not abort the run by itself.
	Warn(msg string)

	// End announces the run outcome.
	End(msg string)
}
