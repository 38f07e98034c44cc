package domain

import (
	"runtime"
	"strings"

	"go.trai.ch/zerr"
)

// Target is the platform/architecture pair an artifact is built for.
// Idents are always addressed together with a target.
type Target struct {
	Arch     string
	Platform string
}

// ParseTarget parses a target of the form arch-platform, e.g. "x86_64-linux".
func ParseTarget(s string) (Target, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Target{}, zerr.With(ErrInvalidTarget, "target", s)
	}
	return Target{Arch: parts[0], Platform: parts[1]}, nil
}

// String renders the target in its canonical arch-platform form.
func (t Target) String() string {
	return t.Arch + "-" + t.Platform
}

// DefaultTarget derives the target for the running process.
func DefaultTarget() Target {
	arch := runtime.GOARCH
	switch arch {
	case "amd64":
		arch = "x86_64"
	case "arm64":
		arch = "aarch64"
	}
	return Target{Arch: arch, Platform: runtime.GOOS}
}
