package ports

import "github.com/silopkg/silo/internal/core/domain"

// ArtifactVerifier is the capability surface consumed from the artifact
// format. Only the header is read to learn the signer; verification checks
// the payload signature against the local key store.
//
//go:generate mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type ArtifactVerifier interface {
	// ReadSigner parses the artifact header and returns the identity whose
	// key produced the signature. It does not read the payload.
	ReadSigner(artifactPath string) (domain.SignerID, error)

	// Verify checks the artifact's signature against the signer's public key
	// in keysDir. Returns domain.ErrVerificationFailed when the signature
	// does not match, or domain.ErrKeyNotFound when the key is absent.
	Verify(artifactPath, keysDir string) error
}
