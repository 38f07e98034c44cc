// Package domain holds the core value objects for the download pipeline.
package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

// PackageIdent identifies a package in a depot. Version and Release are
// optional; an ident carrying both is fully qualified and addresses exactly
// one immutable artifact.
type PackageIdent struct {
	Origin  string
	Name    string
	Version string
	Release string
}

// ParseIdent parses an identifier of the form
// origin/name[/version[/release]].
func ParseIdent(s string) (PackageIdent, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) < 2 || len(parts) > 4 {
		return PackageIdent{}, zerr.With(ErrInvalidIdent, "ident", s)
	}
	for _, p := range parts {
		if p == "" {
			return PackageIdent{}, zerr.With(ErrInvalidIdent, "ident", s)
		}
	}

	ident := PackageIdent{Origin: parts[0], Name: parts[1]}
	if len(parts) > 2 {
		ident.Version = parts[2]
	}
	if len(parts) > 3 {
		ident.Release = parts[3]
	}
	return ident, nil
}

// String renders the ident in its canonical slash-separated form.
func (i PackageIdent) String() string {
	b := strings.Builder{}
	b.WriteString(i.Origin)
	b.WriteByte('/')
	b.WriteString(i.Name)
	if i.Version != "" {
		b.WriteByte('/')
		b.WriteString(i.Version)
		if i.Release != "" {
			b.WriteByte('/')
			b.WriteString(i.Release)
		}
	}
	return b.String()
}

// FullyQualified reports whether the ident carries both a version and a
// release.
func (i PackageIdent) FullyQualified() bool {
	return i.Version != "" && i.Release != ""
}

// ArchiveName returns the artifact file name for this ident on the given
// target. The ident must be fully qualified; the name is what makes cached
// artifact paths deterministic and collision-free.
func (i PackageIdent) ArchiveName(t Target) (string, error) {
	if !i.FullyQualified() {
		return "", zerr.With(ErrInvalidIdent, "ident", i.String())
	}
	return fmt.Sprintf("%s-%s-%s-%s-%s-%s.silo",
		i.Origin, i.Name, i.Version, i.Release, t.Arch, t.Platform), nil
}
