package depot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"

	"github.com/silopkg/silo/internal/core/domain"
)

// FetchArtifact downloads the artifact for (ident, target) into destDir and
// returns the written path. The download lands in a temp file first and is
// renamed into place only when the body was read completely.
func (c *Client) FetchArtifact(ctx context.Context, ident domain.PackageIdent, target domain.Target, destDir string) (string, error) {
	name, err := ident.ArchiveName(target)
	if err != nil {
		return "", err
	}

	path := fmt.Sprintf("%s/pkgs/%s/%s/%s/%s/download",
		apiPrefix,
		url.PathEscape(ident.Origin),
		url.PathEscape(ident.Name),
		url.PathEscape(ident.Version),
		url.PathEscape(ident.Release),
	)

	resp, err := c.get(ctx, path, targetQuery(target))
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		serr := zerr.With(statusError(resp.StatusCode, domain.ErrPackageNotFound), "ident", ident.String())
		return "", zerr.With(serr, "target", target.String())
	}

	dest := filepath.Join(destDir, name)
	written, sum, err := writeAtomic(dest, resp.Body)
	if err != nil {
		return "", zerr.With(err, "ident", ident.String())
	}

	c.log.Debug("downloaded artifact",
		"ident", ident.String(),
		"bytes", written,
		"xxh64", fmt.Sprintf("%016x", sum),
	)
	return dest, nil
}

// FetchSignerKey downloads the signer's public key into destDir and returns
// the written path.
func (c *Client) FetchSignerKey(ctx context.Context, signer domain.SignerID, destDir string) (string, error) {
	path := fmt.Sprintf("%s/origins/%s/keys/%s",
		apiPrefix,
		url.PathEscape(signer.Name),
		url.PathEscape(signer.Revision),
	)

	resp, err := c.get(ctx, path, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", zerr.With(statusError(resp.StatusCode, domain.ErrKeyNotFound), "signer", signer.String())
	}

	dest := filepath.Join(destDir, signer.KeyFileName())
	written, _, err := writeAtomic(dest, resp.Body)
	if err != nil {
		return "", zerr.With(err, "signer", signer.String())
	}

	c.log.Debug("downloaded signer key", "signer", signer.String(), "bytes", written)
	return dest, nil
}

// writeAtomic streams r into a temp file beside dest and renames it into
// place. Returns the byte count and the xxh64 sum of the payload.
func writeAtomic(dest string, r io.Reader) (int64, uint64, error) {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, filepath.Base(dest)+".part-*")
	if err != nil {
		return 0, 0, zerr.Wrap(err, "failed to create temp file")
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	h := xxhash.New()
	written, err := io.Copy(io.MultiWriter(tmp, h), r)
	if err != nil {
		derr := zerr.With(domain.ErrDepotAPI, "path", dest)
		return 0, 0, errors.Join(derr, err)
	}

	if err := tmp.Close(); err != nil {
		return 0, 0, zerr.Wrap(err, "failed to close temp file")
	}
	if err := os.Chmod(tmp.Name(), domain.FilePerm); err != nil {
		return 0, 0, zerr.Wrap(err, "failed to set file mode")
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return 0, 0, zerr.Wrap(err, "failed to move file into place")
	}
	return written, h.Sum64(), nil
}
