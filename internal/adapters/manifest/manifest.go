// Package manifest loads download run inputs from files: yaml manifests and
// plain ident lists.
package manifest

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/silopkg/silo/internal/core/domain"
)

// Manifest is a declarative description of a download run. Channel and
// Target are optional and fall back to the CLI values when empty.
type Manifest struct {
	Idents  []domain.PackageIdent
	Channel string
	Target  domain.Target
}

type manifestYAML struct {
	Idents  []string `yaml:"idents"`
	Channel string   `yaml:"channel"`
	Target  string   `yaml:"target"`
}

// Load reads a yaml manifest from path.
func Load(path string) (Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, zerr.Wrap(err, "failed to read manifest")
	}

	var doc manifestYAML
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		merr := zerr.With(domain.ErrManifestParse, "path", path)
		return Manifest{}, errors.Join(merr, err)
	}

	m := Manifest{Channel: doc.Channel}
	for _, raw := range doc.Idents {
		ident, err := domain.ParseIdent(raw)
		if err != nil {
			merr := zerr.With(domain.ErrManifestParse, "path", path)
			return Manifest{}, errors.Join(merr, err)
		}
		m.Idents = append(m.Idents, ident)
	}

	if doc.Target != "" {
		target, err := domain.ParseTarget(doc.Target)
		if err != nil {
			merr := zerr.With(domain.ErrManifestParse, "path", path)
			return Manifest{}, errors.Join(merr, err)
		}
		m.Target = target
	}
	return m, nil
}

// ReadIdentFile parses a plain text file with one ident per line. Blank
// lines and lines starting with # are ignored.
func ReadIdentFile(path string) ([]domain.PackageIdent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open ident file")
	}
	defer func() { _ = f.Close() }()

	var idents []domain.PackageIdent
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ident, err := domain.ParseIdent(line)
		if err != nil {
			merr := zerr.With(domain.ErrManifestParse, "path", path)
			return nil, errors.Join(merr, err)
		}
		idents = append(idents, ident)
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, "failed to read ident file")
	}
	return idents, nil
}
