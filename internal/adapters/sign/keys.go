package sign

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/zerr"

	"github.com/silopkg/silo/internal/core/domain"
)

// KeyPair is an ed25519 signing key with its revision identity.
type KeyPair struct {
	ID     domain.SignerID
	Public ed25519.PublicKey
	Secret ed25519.PrivateKey
}

// GenerateKeyPair creates a new signing key for name, with the revision set
// to the current UTC timestamp.
func GenerateKeyPair(name string) (KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return KeyPair{}, zerr.Wrap(err, "failed to generate key pair")
	}
	return KeyPair{
		ID:     domain.SignerID{Name: name, Revision: time.Now().UTC().Format("20060102150405")},
		Public: pub,
		Secret: priv,
	}, nil
}

// WritePublicKey writes the public half to dir using the standard key file
// name and returns the written path.
func (kp KeyPair) WritePublicKey(dir string) (string, error) {
	path := filepath.Join(dir, kp.ID.KeyFileName())
	body := fmt.Sprintf("%s\n%s\n\n%s\n",
		PublicKeyFormatVersion,
		kp.ID.String(),
		base64.StdEncoding.EncodeToString(kp.Public),
	)
	if err := os.WriteFile(path, []byte(body), domain.FilePerm); err != nil {
		return "", zerr.Wrap(err, "failed to write public key")
	}
	return path, nil
}

// ReadPublicKey parses a public key file. A missing file maps to
// domain.ErrKeyNotFound.
func ReadPublicKey(path string) (domain.SignerID, ed25519.PublicKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.SignerID{}, nil, zerr.With(domain.ErrKeyNotFound, "path", path)
		}
		return domain.SignerID{}, nil, zerr.Wrap(err, "failed to read public key")
	}

	lines := strings.SplitN(string(raw), "\n", 4)
	if len(lines) < 4 || lines[0] != PublicKeyFormatVersion || lines[2] != "" {
		return domain.SignerID{}, nil, zerr.With(domain.ErrInvalidSigner, "path", path)
	}

	signer, err := domain.ParseSignerID(lines[1])
	if err != nil {
		return domain.SignerID{}, nil, err
	}

	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(lines[3]))
	if err != nil || len(key) != ed25519.PublicKeySize {
		return domain.SignerID{}, nil, zerr.With(domain.ErrInvalidSigner, "path", path)
	}
	return signer, ed25519.PublicKey(key), nil
}
