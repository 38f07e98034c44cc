// Package sign implements the artifact verifier: header parsing and
// ed25519 signature checks over BLAKE2b content digests.
package sign

import (
	"bufio"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
	"golang.org/x/crypto/blake2b"

	"github.com/silopkg/silo/internal/core/domain"
	"github.com/silopkg/silo/internal/core/ports"
)

const (
	// ArtifactFormatVersion is the first header line of a signed artifact.
	ArtifactFormatVersion = "SILO-1"

	// PublicKeyFormatVersion is the first line of a public key file.
	PublicKeyFormatVersion = "SILO-PUB-1"

	// SecretKeyFormatVersion is the first line of a secret key file.
	SecretKeyFormatVersion = "SILO-SEC-1"

	// HashType names the digest algorithm recorded in the header.
	HashType = "BLAKE2b-256"
)

// Verifier implements ports.ArtifactVerifier for the silo artifact format:
// a four-line header (format version, signer, hash type, base64 signature)
// followed by a blank line and the payload. The signature covers the
// hex-encoded BLAKE2b-256 digest of the payload.
type Verifier struct{}

// New creates a Verifier.
func New() ports.ArtifactVerifier {
	return &Verifier{}
}

type header struct {
	signer    domain.SignerID
	signature []byte
}

// ReadSigner parses the artifact header and returns the signer identity.
// Only the header is read, never the payload.
func (v *Verifier) ReadSigner(artifactPath string) (domain.SignerID, error) {
	f, err := os.Open(artifactPath)
	if err != nil {
		return domain.SignerID{}, zerr.Wrap(err, "failed to open artifact")
	}
	defer func() { _ = f.Close() }()

	hdr, err := readHeader(bufio.NewReader(f))
	if err != nil {
		return domain.SignerID{}, zerr.With(err, "artifact", artifactPath)
	}
	return hdr.signer, nil
}

// Verify checks the artifact signature against the signer's public key in
// keysDir.
func (v *Verifier) Verify(artifactPath, keysDir string) error {
	f, err := os.Open(artifactPath)
	if err != nil {
		return zerr.Wrap(err, "failed to open artifact")
	}
	defer func() { _ = f.Close() }()

	r := bufio.NewReader(f)
	hdr, err := readHeader(r)
	if err != nil {
		return zerr.With(err, "artifact", artifactPath)
	}

	keyPath := filepath.Join(keysDir, hdr.signer.KeyFileName())
	_, pub, err := ReadPublicKey(keyPath)
	if err != nil {
		return err
	}

	digest, err := payloadDigest(r)
	if err != nil {
		return err
	}

	if !ed25519.Verify(pub, digest, hdr.signature) {
		verr := zerr.With(domain.ErrVerificationFailed, "artifact", artifactPath)
		return zerr.With(verr, "signer", hdr.signer.String())
	}
	return nil
}

// readHeader consumes the artifact header up to and including the blank
// separator line, leaving r positioned at the payload.
func readHeader(r *bufio.Reader) (header, error) {
	lines := make([]string, 4)
	for i := range lines {
		line, err := r.ReadString('\n')
		if err != nil {
			return header{}, domain.ErrMalformedArtifact
		}
		lines[i] = strings.TrimRight(line, "\n")
	}

	if lines[0] != ArtifactFormatVersion {
		return header{}, zerr.With(domain.ErrMalformedArtifact, "format", lines[0])
	}
	if lines[2] != HashType {
		return header{}, zerr.With(domain.ErrMalformedArtifact, "hash_type", lines[2])
	}

	signer, err := domain.ParseSignerID(lines[1])
	if err != nil {
		return header{}, err
	}

	sig, err := base64.StdEncoding.DecodeString(lines[3])
	if err != nil {
		return header{}, zerr.With(domain.ErrMalformedArtifact, "signature", lines[3])
	}

	// Blank separator between header and payload.
	sep, err := r.ReadString('\n')
	if err != nil || strings.TrimRight(sep, "\n") != "" {
		return header{}, domain.ErrMalformedArtifact
	}

	return header{signer: signer, signature: sig}, nil
}

// payloadDigest returns the signed message: the hex-encoded BLAKE2b-256
// digest of the payload bytes.
func payloadDigest(r io.Reader) ([]byte, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to initialize digest")
	}
	if _, err := io.Copy(h, r); err != nil {
		return nil, zerr.Wrap(err, "failed to hash artifact payload")
	}
	return []byte(hex.EncodeToString(h.Sum(nil))), nil
}
