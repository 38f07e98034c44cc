package download

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/silopkg/silo/internal/core/domain"
	"github.com/silopkg/silo/internal/core/ports"
)

// expand resolves every input ident against the depot, independently and in
// parallel, and unions the resolved idents plus their transitive dependency
// closures into one deduplicated set. The depot is always queried, even for
// fully-qualified idents; there is no local resolution fallback.
func (t *Task) expand(ctx context.Context) (*domain.ExpansionSet, error) {
	resolved := make([]domain.ResolvedPackage, len(t.req.Idents))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.jobs())

	for i, ident := range t.req.Idents {
		g.Go(func() error {
			pkg, err := t.resolveLatest(gctx, ident)
			if err != nil {
				return err
			}
			resolved[i] = pkg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := domain.NewExpansionSet()
	for _, pkg := range resolved {
		set.AddPackage(pkg, t.req.Target)
	}

	t.reporter.Status(ports.StatusFound, fmt.Sprintf("%d artifacts", set.Len()))
	return set, nil
}

// resolveLatest asks the depot for the latest release of one ident in the
// run's channel, along with its tdeps. A missing package is fatal for the
// whole run and is never retried.
func (t *Task) resolveLatest(ctx context.Context, ident domain.PackageIdent) (domain.ResolvedPackage, error) {
	t.reporter.Status(ports.StatusResolving, fmt.Sprintf("latest version of %s", ident))

	pkg, err := t.depot.ResolveLatest(ctx, ident, t.req.Target, t.req.Channel)
	switch {
	case err == nil:
		t.reporter.Status(ports.StatusUsing, pkg.Ident.String())
		return pkg, nil
	case errors.Is(err, domain.ErrPackageNotFound):
		t.reporter.Warn(fmt.Sprintf(
			"No packages matching ident %s for %s exist in the %q channel. Check the package ident, target, channel and depot url (%s) for correctness",
			ident, t.req.Target, t.req.Channel, t.req.Depot.URL))
		return domain.ResolvedPackage{}, err
	default:
		t.reporter.Warn(fmt.Sprintf("Error fetching ident %s for target %s", ident, t.req.Target))
		return domain.ResolvedPackage{}, err
	}
}
