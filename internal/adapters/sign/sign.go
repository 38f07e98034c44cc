package sign

import (
	"bytes"
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"os"

	"go.trai.ch/zerr"

	"github.com/silopkg/silo/internal/core/domain"
)

// SignArtifact writes payload to path wrapped in a signed artifact header.
// The signature covers the hex-encoded BLAKE2b-256 digest of the payload.
func SignArtifact(path string, kp KeyPair, payload []byte) error {
	digest, err := payloadDigest(bytes.NewReader(payload))
	if err != nil {
		return err
	}
	sig := ed25519.Sign(kp.Secret, digest)

	body := fmt.Sprintf("%s\n%s\n%s\n%s\n\n",
		ArtifactFormatVersion,
		kp.ID.String(),
		HashType,
		base64.StdEncoding.EncodeToString(sig),
	)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, domain.FilePerm)
	if err != nil {
		return zerr.Wrap(err, "failed to create artifact")
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(body); err != nil {
		return zerr.Wrap(err, "failed to write artifact header")
	}
	if _, err := f.Write(payload); err != nil {
		return zerr.Wrap(err, "failed to write artifact payload")
	}
	return nil
}
