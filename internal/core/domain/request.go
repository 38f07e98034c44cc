package domain

import "time"

const (
	// DefaultRetryAttempts is the number of download attempts per artifact.
	DefaultRetryAttempts = 5

	// DefaultRetryDelay is the fixed wait between download attempts.
	DefaultRetryDelay = 3000 * time.Millisecond

	// DefaultChannel is the release stream queried when none is given.
	DefaultChannel = "stable"
)

// RetryPolicy bounds the artifact fetch retry loop. The delay is fixed, not
// exponential. Both fields are part of the run configuration so tests can
// run zero-delay, low-attempt variants.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetryPolicy returns the stock policy.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: DefaultRetryAttempts, Delay: DefaultRetryDelay}
}

// DepotConfig is the connection half of a run: where the depot lives and how
// to authenticate against it.
type DepotConfig struct {
	// URL is the depot base URL.
	URL string

	// AuthToken is the bearer token sent with every depot request. Empty
	// means anonymous.
	AuthToken string

	// Product and ProductVersion identify this client in the depot handshake.
	Product        string
	ProductVersion string
}

// DownloadRequest is the immutable configuration of one download run.
type DownloadRequest struct {
	// Idents are the user-supplied identifiers, possibly partial.
	Idents []PackageIdent

	// Target is the single platform/architecture pair for the whole run.
	Target Target

	// Channel is the release stream used to resolve partial idents.
	Channel string

	// Depot describes the remote depot.
	Depot DepotConfig

	// Root is the local download root. Empty means DefaultRoot().
	Root string

	// Verify enables signature verification of every artifact.
	Verify bool

	// Retry bounds the per-artifact fetch loop.
	Retry RetryPolicy

	// Jobs caps the worker pools of the expansion and fetch phases.
	// Zero means one worker per CPU.
	Jobs int
}
