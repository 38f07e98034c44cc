package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/silopkg/silo/internal/core/domain"
)

func TestParseTarget(t *testing.T) {
	target, err := domain.ParseTarget("x86_64-linux")
	require.NoError(t, err)
	require.Equal(t, domain.Target{Arch: "x86_64", Platform: "linux"}, target)
	require.Equal(t, "x86_64-linux", target.String())
}

func TestParseTarget_ArchKeepsUnderscore(t *testing.T) {
	// Only the first dash separates arch from platform.
	target, err := domain.ParseTarget("aarch64-linux")
	require.NoError(t, err)
	require.Equal(t, "aarch64", target.Arch)
	require.Equal(t, "linux", target.Platform)
}

func TestParseTarget_Invalid(t *testing.T) {
	for _, s := range []string{"", "x86_64", "-linux", "x86_64-"} {
		_, err := domain.ParseTarget(s)
		require.ErrorIs(t, err, domain.ErrInvalidTarget, "input %q", s)
	}
}

func TestDefaultTarget(t *testing.T) {
	target := domain.DefaultTarget()
	require.NotEmpty(t, target.Arch)
	require.NotEmpty(t, target.Platform)
	// Go arch names never leak through.
	require.NotEqual(t, "amd64", target.Arch)
	require.NotEqual(t, "arm64", target.Arch)
}
