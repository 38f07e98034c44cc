package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// SignerID is the origin key identity that signed an artifact: a name plus a
// key revision (a timestamp string on the depot side).
type SignerID struct {
	Name     string
	Revision string
}

// ParseSignerID parses a signer identity of the form name-revision. The
// revision is everything after the last dash, so names may themselves
// contain dashes.
func ParseSignerID(s string) (SignerID, error) {
	idx := strings.LastIndex(s, "-")
	if idx <= 0 || idx == len(s)-1 {
		return SignerID{}, zerr.With(ErrInvalidSigner, "signer", s)
	}
	return SignerID{Name: s[:idx], Revision: s[idx+1:]}, nil
}

// String renders the identity in its canonical name-revision form.
func (s SignerID) String() string {
	return s.Name + "-" + s.Revision
}

// KeyFileName returns the public key file name for this signer.
func (s SignerID) KeyFileName() string {
	return s.String() + ".pub"
}
