package download

import (
	"errors"
	"fmt"
	"os"

	"go.trai.ch/zerr"

	"github.com/silopkg/silo/internal/core/domain"
	"github.com/silopkg/silo/internal/core/ports"
)

// prepareDirectories creates the download root and its artifacts and keys
// subdirectories, then re-checks all three. A failure here aborts the run
// before any network activity.
func (t *Task) prepareDirectories() error {
	t.reporter.Status(ports.StatusVerifying,
		fmt.Sprintf("the download directory %q", t.layout.Root))

	dirs := []string{t.layout.Root, t.layout.ArtifactsDir(), t.layout.KeysDir()}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
			return permError(dir, "cannot create", err)
		}
	}

	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil {
			return permError(dir, "cannot stat", err)
		}
		if !info.IsDir() {
			return permError(dir, "not a directory", nil)
		}
		if err := probeWritable(dir); err != nil {
			return permError(dir, "not writable", err)
		}
	}
	return nil
}

func permError(dir, reason string, cause error) error {
	err := zerr.With(domain.ErrPermissionFailed, "dir", dir)
	err = zerr.With(err, "reason", reason)
	if cause != nil {
		return errors.Join(err, cause)
	}
	return err
}

// probeWritable checks write permission by creating and removing a temp
// file. Mode bits alone are not reliable across platforms and mounts.
func probeWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".silo-probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
