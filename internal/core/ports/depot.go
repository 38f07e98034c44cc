// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/silopkg/silo/internal/core/domain"
)

// DepotClient is the capability surface consumed from the remote depot. A
// client is created once per download run and owned by that run.
//
//go:generate mockgen -source=depot.go -destination=mocks/mock_depot.go -package=mocks
type DepotClient interface {
	// ResolveLatest resolves one identifier to the latest matching release in
	// the channel for the target, together with its transitive dependency
	// closure. A fully-qualified ident is still queried (for its tdeps) but
	// the exact version/release is honored regardless of channel contents.
	//
	// Returns domain.ErrPackageNotFound when no release matches, or
	// domain.ErrDepotAPI for any other depot-side failure.
	ResolveLatest(ctx context.Context, ident domain.PackageIdent, target domain.Target, channel string) (domain.ResolvedPackage, error)

	// FetchArtifact downloads the artifact for (ident, target) into destDir
	// and returns the written path. Returns domain.ErrUnsupportedTarget when
	// the depot does not serve the target; callers treat that as a skip.
	FetchArtifact(ctx context.Context, ident domain.PackageIdent, target domain.Target, destDir string) (string, error)

	// FetchSignerKey downloads the signer's public key into destDir and
	// returns the written path.
	FetchSignerKey(ctx context.Context, signer domain.SignerID, destDir string) (string, error)
}
