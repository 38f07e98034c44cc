package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/silopkg/silo/cmd/silo/commands"
	"github.com/silopkg/silo/internal/app"
	"github.com/silopkg/silo/internal/core/domain"
	"github.com/silopkg/silo/internal/core/ports"
	"github.com/silopkg/silo/internal/core/ports/mocks"
)

type cliFixture struct {
	cli     *commands.CLI
	depot   *mocks.MockDepotClient
	seenCfg *domain.DepotConfig
	out     *bytes.Buffer
}

// setupCLI builds a CLI whose app talks to a mock depot instead of HTTP.
func setupCLI(t *testing.T) cliFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	depot := mocks.NewMockDepotClient(ctrl)
	verifier := mocks.NewMockArtifactVerifier(ctrl)
	reporter := mocks.NewMockReporter(ctrl)
	telemetry := mocks.NewMockTelemetry(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	vertex := mocks.NewMockVertex(ctrl)

	reporter.EXPECT().Begin(gomock.Any()).AnyTimes()
	reporter.EXPECT().Status(gomock.Any(), gomock.Any()).AnyTimes()
	reporter.EXPECT().Warn(gomock.Any()).AnyTimes()
	reporter.EXPECT().End(gomock.Any()).AnyTimes()
	logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()
	vertex.EXPECT().Cached().AnyTimes()
	vertex.EXPECT().Complete(gomock.Any()).AnyTimes()
	telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, vertex
		},
	).AnyTimes()

	seenCfg := &domain.DepotConfig{}
	a := app.New(logger, telemetry, verifier, reporter,
		app.WithClientFactory(func(cfg domain.DepotConfig, _ ports.Logger) ports.DepotClient {
			*seenCfg = cfg
			return depot
		}),
	)

	cli := commands.New(a)
	out := &bytes.Buffer{}
	cli.SetOutput(out)
	return cliFixture{cli: cli, depot: depot, seenCfg: seenCfg, out: out}
}

func TestDownload_FlagsReachTheDepot(t *testing.T) {
	f := setupCLI(t)

	var seenChannel string
	var seenTarget domain.Target
	f.depot.EXPECT().
		ResolveLatest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.PackageIdent, target domain.Target, channel string) (domain.ResolvedPackage, error) {
			seenChannel = channel
			seenTarget = target
			return domain.ResolvedPackage{}, domain.ErrPackageNotFound
		})

	f.cli.SetArgs([]string{
		"download", "core/redis",
		"--url", "https://depot.internal.example.com",
		"--auth", "secret",
		"--channel", "unstable",
		"--target", "aarch64-linux",
		"--download-directory", t.TempDir(),
		"--retries", "1",
	})

	err := f.cli.Execute(context.Background())
	require.ErrorIs(t, err, domain.ErrPackageNotFound)
	require.Equal(t, "https://depot.internal.example.com", f.seenCfg.URL)
	require.Equal(t, "secret", f.seenCfg.AuthToken)
	require.Equal(t, "unstable", seenChannel)
	require.Equal(t, "aarch64-linux", seenTarget.String())
}

func TestDownload_EnvironmentFallback(t *testing.T) {
	t.Setenv("SILO_URL", "https://depot.env.example.com")
	t.Setenv("SILO_AUTH_TOKEN", "env-token")
	t.Setenv("SILO_CHANNEL", "lts-2024")

	f := setupCLI(t)

	var seenChannel string
	f.depot.EXPECT().
		ResolveLatest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.PackageIdent, _ domain.Target, channel string) (domain.ResolvedPackage, error) {
			seenChannel = channel
			return domain.ResolvedPackage{}, domain.ErrPackageNotFound
		})

	f.cli.SetArgs([]string{
		"download", "core/redis",
		"--download-directory", t.TempDir(),
		"--retries", "1",
	})

	err := f.cli.Execute(context.Background())
	require.ErrorIs(t, err, domain.ErrPackageNotFound)
	require.Equal(t, "https://depot.env.example.com", f.seenCfg.URL)
	require.Equal(t, "env-token", f.seenCfg.AuthToken)
	require.Equal(t, "lts-2024", seenChannel)
}

func TestDownload_FlagBeatsEnvironment(t *testing.T) {
	t.Setenv("SILO_URL", "https://depot.env.example.com")

	f := setupCLI(t)
	f.depot.EXPECT().
		ResolveLatest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.ResolvedPackage{}, domain.ErrPackageNotFound)

	f.cli.SetArgs([]string{
		"download", "core/redis",
		"--url", "https://depot.flag.example.com",
		"--download-directory", t.TempDir(),
		"--retries", "1",
	})

	_ = f.cli.Execute(context.Background())
	require.Equal(t, "https://depot.flag.example.com", f.seenCfg.URL)
}

func TestDownload_IdentFile(t *testing.T) {
	f := setupCLI(t)

	path := filepath.Join(t.TempDir(), "idents.txt")
	require.NoError(t, os.WriteFile(path, []byte("# base\ncore/glibc\n"), 0o644))

	var seenIdent domain.PackageIdent
	f.depot.EXPECT().
		ResolveLatest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ident domain.PackageIdent, _ domain.Target, _ string) (domain.ResolvedPackage, error) {
			seenIdent = ident
			return domain.ResolvedPackage{}, domain.ErrPackageNotFound
		})

	f.cli.SetArgs([]string{
		"download",
		"--file", path,
		"--download-directory", t.TempDir(),
		"--retries", "1",
	})

	_ = f.cli.Execute(context.Background())
	require.Equal(t, "core/glibc", seenIdent.String())
}

func TestDownload_ManifestSuppliesChannel(t *testing.T) {
	f := setupCLI(t)

	path := filepath.Join(t.TempDir(), "download.yaml")
	require.NoError(t, os.WriteFile(path, []byte("idents:\n  - core/redis\nchannel: unstable\n"), 0o644))

	var seenChannel string
	f.depot.EXPECT().
		ResolveLatest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.PackageIdent, _ domain.Target, channel string) (domain.ResolvedPackage, error) {
			seenChannel = channel
			return domain.ResolvedPackage{}, domain.ErrPackageNotFound
		})

	f.cli.SetArgs([]string{
		"download",
		"--manifest", path,
		"--download-directory", t.TempDir(),
		"--retries", "1",
	})

	_ = f.cli.Execute(context.Background())
	require.Equal(t, "unstable", seenChannel)
}

func TestDownload_InvalidIdent(t *testing.T) {
	f := setupCLI(t)

	f.cli.SetArgs([]string{"download", "not-an-ident"})
	err := f.cli.Execute(context.Background())
	require.ErrorIs(t, err, domain.ErrInvalidIdent)
}

func TestDownload_NoIdents(t *testing.T) {
	f := setupCLI(t)

	f.cli.SetArgs([]string{"download", "--download-directory", t.TempDir()})
	err := f.cli.Execute(context.Background())
	require.ErrorIs(t, err, domain.ErrNoInputIdents)
}

func TestVersionCmd(t *testing.T) {
	f := setupCLI(t)

	f.cli.SetArgs([]string{"version"})
	require.NoError(t, f.cli.Execute(context.Background()))
	require.Contains(t, f.out.String(), "silo version")
}
