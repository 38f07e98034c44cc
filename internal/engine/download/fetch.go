package download

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"github.com/silopkg/silo/internal/core/domain"
	"github.com/silopkg/silo/internal/core/ports"
	"github.com/silopkg/silo/internal/engine/retry"
)

// ItemState classifies the outcome of one expansion item.
type ItemState int

const (
	// StateDownloaded means the artifact was fetched from the depot.
	StateDownloaded ItemState = iota
	// StateCached means the artifact was already in the local cache.
	StateCached
	// StateSkipped means the depot does not serve the run's target for this
	// artifact. No file was written and the run continued.
	StateSkipped
	// StateFailed means the item hit a fatal error.
	StateFailed
)

// ItemResult is the tagged per-item outcome of the fetch phase. Items are
// logically independent; the orchestrator decides that the first fatal
// result aborts the batch.
type ItemResult struct {
	Item  domain.ExpansionItem
	State ItemState
	Err   error
}

// fetchAll runs fetch+verify for every expansion item on a bounded worker
// pool. Items never write the same path, so no locking is needed around
// file writes. The first fatal item cancels the rest of the batch.
func (t *Task) fetchAll(ctx context.Context, set *domain.ExpansionSet) ([]ItemResult, error) {
	items := set.Sorted()
	t.reporter.Status(ports.StatusDownloading,
		fmt.Sprintf("%d artifacts (and their signing keys)", len(items)))

	results := make([]ItemResult, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.jobs())

	for i, item := range items {
		g.Go(func() error {
			res := t.fetchOne(gctx, item)
			results[i] = res
			if res.Err != nil {
				t.reporter.Status(ports.StatusMissing,
					fmt.Sprintf("%s for %s", item.Ident, item.Target))
				return res.Err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// fetchOne ensures the item's artifact is in the local cache (or is a
// deliberate skip), then fetches its signer key and optionally verifies the
// signature.
func (t *Task) fetchOne(ctx context.Context, item domain.ExpansionItem) ItemResult {
	_, vtx := t.telemetry.Record(ctx, item.Ident.String())

	path, err := t.layout.ArtifactPath(item.Ident, item.Target)
	if err != nil {
		vtx.Complete(err)
		return ItemResult{Item: item, State: StateFailed, Err: err}
	}

	state := StateDownloaded
	if fileExists(path) {
		// Existence is trusted; no checksum re-validation at this stage.
		t.logger.Debug("found artifact in download directory, skipping remote download",
			"ident", item.Ident.String())
		t.reporter.Status(ports.StatusCached, item.Ident.String())
		vtx.Cached()
		state = StateCached
	} else {
		skipped, err := t.downloadArtifact(ctx, item)
		if err != nil {
			vtx.Complete(err)
			return ItemResult{Item: item, State: StateFailed, Err: err}
		}
		if skipped {
			t.reporter.Status(ports.StatusSkipping,
				fmt.Sprintf("%s: target %s not supported by the depot", item.Ident, item.Target))
			vtx.Complete(nil)
			return ItemResult{Item: item, State: StateSkipped}
		}
	}

	if err := t.fetchKeysAndVerify(ctx, item, path); err != nil {
		vtx.Complete(err)
		return ItemResult{Item: item, State: StateFailed, Err: err}
	}

	vtx.Complete(nil)
	return ItemResult{Item: item, State: state}
}

// downloadArtifact fetches one artifact with the run's bounded fixed-delay
// retry policy. An unsupported-target response reports skipped=true without
// an error and without consuming further attempts.
func (t *Task) downloadArtifact(ctx context.Context, item domain.ExpansionItem) (skipped bool, err error) {
	t.reporter.Status(ports.StatusDownloading, item.Ident.String())

	policy := retry.Policy{Attempts: t.req.Retry.Attempts, Delay: t.req.Retry.Delay}
	ferr := retry.Do(ctx, policy, func(ctx context.Context) error {
		_, err := t.depot.FetchArtifact(ctx, item.Ident, item.Target, t.layout.ArtifactsDir())
		if errors.Is(err, domain.ErrUnsupportedTarget) {
			skipped = true
			return nil
		}
		return err
	})
	if ferr != nil {
		derr := zerr.With(domain.ErrDownloadFailed, "ident", item.Ident.String())
		derr = zerr.With(derr, "target", item.Target.String())
		derr = zerr.With(derr, "attempts", policy.Attempts)
		return false, errors.Join(derr, ferr)
	}
	return skipped, nil
}

// fetchKeysAndVerify reads the artifact header to learn its signer, fetches
// the signer's public key when it is locally absent, and verifies the
// signature when the run asks for it. The key fetch is unconditional on the
// verify flag: key presence is a precondition of the download set.
func (t *Task) fetchKeysAndVerify(ctx context.Context, item domain.ExpansionItem, path string) error {
	signer, err := t.verifier.ReadSigner(path)
	if err != nil {
		return err
	}

	if !fileExists(t.layout.KeyPath(signer)) {
		t.reporter.Status(ports.StatusDownloading,
			fmt.Sprintf("public key for signer %s", signer))
		if _, err := t.depot.FetchSignerKey(ctx, signer, t.layout.KeysDir()); err != nil {
			return err
		}
	}

	if t.req.Verify {
		t.reporter.Status(ports.StatusVerifying, item.Ident.String())
		if err := t.verifier.Verify(path, t.layout.KeysDir()); err != nil {
			return err
		}
		t.logger.Debug("verified artifact",
			"ident", item.Ident.String(), "signer", signer.String())
	}
	return nil
}
