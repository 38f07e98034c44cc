package download_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/silopkg/silo/internal/core/domain"
	"github.com/silopkg/silo/internal/core/ports"
	"github.com/silopkg/silo/internal/core/ports/mocks"
	"github.com/silopkg/silo/internal/engine/download"
)

var testTarget = domain.Target{Arch: "x86_64", Platform: "linux"}

type taskMocks struct {
	depot     *mocks.MockDepotClient
	verifier  *mocks.MockArtifactVerifier
	reporter  *mocks.MockReporter
	telemetry *mocks.MockTelemetry
	logger    *mocks.MockLogger
	vertex    *mocks.MockVertex
}

// setupTask creates a Task plus permissive mocks for the surfaces most tests
// don't care about (reporting, telemetry, logging).
func setupTask(t *testing.T, req domain.DownloadRequest) (*download.Task, taskMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := taskMocks{
		depot:     mocks.NewMockDepotClient(ctrl),
		verifier:  mocks.NewMockArtifactVerifier(ctrl),
		reporter:  mocks.NewMockReporter(ctrl),
		telemetry: mocks.NewMockTelemetry(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		vertex:    mocks.NewMockVertex(ctrl),
	}

	m.reporter.EXPECT().Begin(gomock.Any()).AnyTimes()
	m.reporter.EXPECT().Status(gomock.Any(), gomock.Any()).AnyTimes()
	m.reporter.EXPECT().Warn(gomock.Any()).AnyTimes()
	m.reporter.EXPECT().End(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	m.vertex.EXPECT().Cached().AnyTimes()
	m.vertex.EXPECT().Complete(gomock.Any()).AnyTimes()
	m.telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, m.vertex
		},
	).AnyTimes()

	task := download.NewTask(req, m.depot, m.verifier, m.reporter, m.telemetry, m.logger)
	return task, m
}

func testRequest(root string, idents ...domain.PackageIdent) domain.DownloadRequest {
	return domain.DownloadRequest{
		Idents:  idents,
		Target:  testTarget,
		Channel: "stable",
		Depot:   domain.DepotConfig{URL: "https://depot.example.com"},
		Root:    root,
		Retry:   domain.RetryPolicy{Attempts: 1},
		Jobs:    1,
	}
}

func fqIdent(name string) domain.PackageIdent {
	return domain.PackageIdent{Origin: "core", Name: name, Version: "1.0.0", Release: "20240101120000"}
}

var testSigner = domain.SignerID{Name: "core", Revision: "20240101000000"}

// writeArtifact emulates the depot client writing the archive file into the
// destination directory.
func writeArtifact(t *testing.T) func(context.Context, domain.PackageIdent, domain.Target, string) (string, error) {
	t.Helper()
	return func(_ context.Context, ident domain.PackageIdent, target domain.Target, destDir string) (string, error) {
		name, err := ident.ArchiveName(target)
		require.NoError(t, err)
		path := filepath.Join(destDir, name)
		require.NoError(t, os.WriteFile(path, []byte("payload"), 0o644))
		return path, nil
	}
}

// writeKey emulates the depot client writing the signer's public key.
func writeKey(t *testing.T) func(context.Context, domain.SignerID, string) (string, error) {
	t.Helper()
	return func(_ context.Context, signer domain.SignerID, destDir string) (string, error) {
		path := filepath.Join(destDir, signer.KeyFileName())
		require.NoError(t, os.WriteFile(path, []byte("key"), 0o644))
		return path, nil
	}
}

func TestRun_NoInputIdents(t *testing.T) {
	root := filepath.Join(t.TempDir(), "download")
	task, _ := setupTask(t, testRequest(root))

	_, err := task.Run(context.Background())

	require.ErrorIs(t, err, domain.ErrNoInputIdents)
	// Fails before directory creation and before any depot contact (the
	// depot mock has no expectations).
	require.NoDirExists(t, root)
}

func TestRun_ExpandsWithoutDoubleCounting(t *testing.T) {
	root := t.TempDir()
	a, b := fqIdent("a"), fqIdent("b")

	// b depends on a; the union must contain each pair exactly once.
	task, m := setupTask(t, testRequest(root, a, b))
	m.depot.EXPECT().ResolveLatest(gomock.Any(), a, testTarget, "stable").
		Return(domain.ResolvedPackage{Ident: a}, nil)
	m.depot.EXPECT().ResolveLatest(gomock.Any(), b, testTarget, "stable").
		Return(domain.ResolvedPackage{Ident: b, TDeps: []domain.PackageIdent{a}}, nil)
	m.depot.EXPECT().FetchArtifact(gomock.Any(), gomock.Any(), testTarget, gomock.Any()).
		DoAndReturn(writeArtifact(t)).Times(2)
	m.verifier.EXPECT().ReadSigner(gomock.Any()).Return(testSigner, nil).Times(2)
	m.depot.EXPECT().FetchSignerKey(gomock.Any(), testSigner, gomock.Any()).
		DoAndReturn(writeKey(t)).Times(1)

	count, err := task.Run(context.Background())

	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestRun_SecondRunFetchesNothing(t *testing.T) {
	root := t.TempDir()
	a, b := fqIdent("a"), fqIdent("b")

	run := func() (int, error) {
		task, m := setupTask(t, testRequest(root, a, b))
		m.depot.EXPECT().ResolveLatest(gomock.Any(), a, testTarget, "stable").
			Return(domain.ResolvedPackage{Ident: a}, nil)
		m.depot.EXPECT().ResolveLatest(gomock.Any(), b, testTarget, "stable").
			Return(domain.ResolvedPackage{Ident: b, TDeps: []domain.PackageIdent{a}}, nil)
		m.depot.EXPECT().FetchArtifact(gomock.Any(), gomock.Any(), testTarget, gomock.Any()).
			DoAndReturn(writeArtifact(t)).MaxTimes(2)
		m.verifier.EXPECT().ReadSigner(gomock.Any()).Return(testSigner, nil).Times(2)
		m.depot.EXPECT().FetchSignerKey(gomock.Any(), testSigner, gomock.Any()).
			DoAndReturn(writeKey(t)).MaxTimes(1)
		return task.Run(context.Background())
	}

	count, err := run()
	require.NoError(t, err)
	require.Equal(t, 2, count)

	// Second run against the same root: resolution re-occurs, but no
	// artifact or key fetches happen.
	task, m := setupTask(t, testRequest(root, a, b))
	m.depot.EXPECT().ResolveLatest(gomock.Any(), a, testTarget, "stable").
		Return(domain.ResolvedPackage{Ident: a}, nil)
	m.depot.EXPECT().ResolveLatest(gomock.Any(), b, testTarget, "stable").
		Return(domain.ResolvedPackage{Ident: b, TDeps: []domain.PackageIdent{a}}, nil)
	m.verifier.EXPECT().ReadSigner(gomock.Any()).Return(testSigner, nil).Times(2)

	count, err = task.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestRun_RetryBound(t *testing.T) {
	root := t.TempDir()
	a := fqIdent("a")

	req := testRequest(root, a)
	req.Retry = domain.RetryPolicy{Attempts: 3, Delay: 0}

	task, m := setupTask(t, req)
	m.depot.EXPECT().ResolveLatest(gomock.Any(), a, testTarget, "stable").
		Return(domain.ResolvedPackage{Ident: a}, nil)
	lastErr := errors.New("connection reset")
	m.depot.EXPECT().FetchArtifact(gomock.Any(), a, testTarget, gomock.Any()).
		Return("", lastErr).Times(3)

	_, err := task.Run(context.Background())

	require.ErrorIs(t, err, domain.ErrDownloadFailed)
	require.ErrorIs(t, err, lastErr)
}

func TestRun_UnsupportedTargetSkips(t *testing.T) {
	root := t.TempDir()
	a, b := fqIdent("a"), fqIdent("b")

	req := testRequest(root, a, b)
	req.Retry = domain.RetryPolicy{Attempts: 5, Delay: 0}

	task, m := setupTask(t, req)
	m.depot.EXPECT().ResolveLatest(gomock.Any(), a, testTarget, "stable").
		Return(domain.ResolvedPackage{Ident: a}, nil)
	m.depot.EXPECT().ResolveLatest(gomock.Any(), b, testTarget, "stable").
		Return(domain.ResolvedPackage{Ident: b}, nil)
	// The unsupported response consumes a single attempt: it is a soft
	// skip, not a retried failure.
	m.depot.EXPECT().FetchArtifact(gomock.Any(), a, testTarget, gomock.Any()).
		Return("", domain.ErrUnsupportedTarget).Times(1)
	m.depot.EXPECT().FetchArtifact(gomock.Any(), b, testTarget, gomock.Any()).
		DoAndReturn(writeArtifact(t))
	m.verifier.EXPECT().ReadSigner(gomock.Any()).Return(testSigner, nil).Times(1)
	m.depot.EXPECT().FetchSignerKey(gomock.Any(), testSigner, gomock.Any()).
		DoAndReturn(writeKey(t))

	count, err := task.Run(context.Background())

	require.NoError(t, err)
	require.Equal(t, 1, count)

	// The skipped artifact left no file behind.
	path, perr := domain.NewLayout(root).ArtifactPath(a, testTarget)
	require.NoError(t, perr)
	require.NoFileExists(t, path)
}

func TestRun_PermissionFailedBeforeNetwork(t *testing.T) {
	root := t.TempDir()
	// A plain file where the artifacts directory should be makes the tree
	// unusable on every platform, regardless of euid.
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.ArtifactsDirName), nil, 0o644))

	a := fqIdent("a")
	task, _ := setupTask(t, testRequest(root, a))

	_, err := task.Run(context.Background())

	require.ErrorIs(t, err, domain.ErrPermissionFailed)
}

func TestRun_ReadOnlyDirPermissionFailed(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, domain.KeysDirName), 0o550))

	a := fqIdent("a")
	task, _ := setupTask(t, testRequest(root, a))

	_, err := task.Run(context.Background())

	require.ErrorIs(t, err, domain.ErrPermissionFailed)
}

func TestRun_ResolutionNotFoundAborts(t *testing.T) {
	root := t.TempDir()
	a := fqIdent("a")

	task, m := setupTask(t, testRequest(root, a))
	m.depot.EXPECT().ResolveLatest(gomock.Any(), a, testTarget, "stable").
		Return(domain.ResolvedPackage{}, domain.ErrPackageNotFound)

	_, err := task.Run(context.Background())

	require.ErrorIs(t, err, domain.ErrPackageNotFound)
}

func TestRun_KeyFetchedEvenWithoutVerify(t *testing.T) {
	root := t.TempDir()
	a := fqIdent("a")

	req := testRequest(root, a)
	req.Verify = false

	task, m := setupTask(t, req)
	m.depot.EXPECT().ResolveLatest(gomock.Any(), a, testTarget, "stable").
		Return(domain.ResolvedPackage{Ident: a}, nil)
	m.depot.EXPECT().FetchArtifact(gomock.Any(), a, testTarget, gomock.Any()).
		DoAndReturn(writeArtifact(t))
	m.verifier.EXPECT().ReadSigner(gomock.Any()).Return(testSigner, nil)
	// Key presence is a precondition independent of the verify flag.
	m.depot.EXPECT().FetchSignerKey(gomock.Any(), testSigner, gomock.Any()).
		DoAndReturn(writeKey(t)).Times(1)
	// Verify is never called.

	count, err := task.Run(context.Background())

	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestRun_VerificationFailureAborts(t *testing.T) {
	root := t.TempDir()
	a := fqIdent("a")

	req := testRequest(root, a)
	req.Verify = true

	task, m := setupTask(t, req)
	m.depot.EXPECT().ResolveLatest(gomock.Any(), a, testTarget, "stable").
		Return(domain.ResolvedPackage{Ident: a}, nil)
	m.depot.EXPECT().FetchArtifact(gomock.Any(), a, testTarget, gomock.Any()).
		DoAndReturn(writeArtifact(t))
	m.verifier.EXPECT().ReadSigner(gomock.Any()).Return(testSigner, nil)
	m.depot.EXPECT().FetchSignerKey(gomock.Any(), testSigner, gomock.Any()).
		DoAndReturn(writeKey(t))
	m.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).
		Return(domain.ErrVerificationFailed)

	_, err := task.Run(context.Background())

	require.ErrorIs(t, err, domain.ErrVerificationFailed)
}

func TestRun_CachedArtifactStillVerified(t *testing.T) {
	root := t.TempDir()
	a := fqIdent("a")

	layout := domain.NewLayout(root)
	require.NoError(t, os.MkdirAll(layout.ArtifactsDir(), 0o750))
	require.NoError(t, os.MkdirAll(layout.KeysDir(), 0o750))
	path, err := layout.ArtifactPath(a, testTarget)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("payload"), 0o644))
	require.NoError(t, os.WriteFile(layout.KeyPath(testSigner), []byte("key"), 0o644))

	req := testRequest(root, a)
	req.Verify = true

	task, m := setupTask(t, req)
	m.depot.EXPECT().ResolveLatest(gomock.Any(), a, testTarget, "stable").
		Return(domain.ResolvedPackage{Ident: a}, nil)
	m.verifier.EXPECT().ReadSigner(path).Return(testSigner, nil)
	m.verifier.EXPECT().Verify(path, layout.KeysDir()).Return(nil)

	count, err := task.Run(context.Background())

	require.NoError(t, err)
	require.Equal(t, 1, count)
}
