package domain

import (
	"os"
	"path/filepath"
)

const (
	// ArtifactsDirName is the artifact cache directory under the download root.
	ArtifactsDirName = "artifacts"

	// KeysDirName is the public key directory under the download root.
	KeysDirName = "keys"

	// CacheDirName is the tool's directory under the user cache root.
	CacheDirName = "silo"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// Layout computes the deterministic on-disk locations of cached artifacts
// and keys under one download root. The filesystem itself is the cache;
// there is no separate index.
type Layout struct {
	Root string
}

// NewLayout creates a Layout rooted at the given directory.
func NewLayout(root string) Layout {
	return Layout{Root: filepath.Clean(root)}
}

// DefaultRoot returns the process-standard download root under the user
// cache directory.
func DefaultRoot() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, CacheDirName)
}

// ArtifactsDir returns the artifact cache directory.
func (l Layout) ArtifactsDir() string {
	return filepath.Join(l.Root, ArtifactsDirName)
}

// KeysDir returns the key cache directory.
func (l Layout) KeysDir() string {
	return filepath.Join(l.Root, KeysDirName)
}

// ArtifactPath returns the cache path for the artifact addressed by
// (ident, target). Distinct pairs never collide because the archive name
// embeds every ident field and both target fields.
func (l Layout) ArtifactPath(ident PackageIdent, target Target) (string, error) {
	name, err := ident.ArchiveName(target)
	if err != nil {
		return "", err
	}
	return filepath.Join(l.ArtifactsDir(), name), nil
}

// KeyPath returns the cache path for a signer's public key.
func (l Layout) KeyPath(signer SignerID) string {
	return filepath.Join(l.KeysDir(), signer.KeyFileName())
}
