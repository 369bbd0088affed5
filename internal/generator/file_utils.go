package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	pmerrors "github.com/carlosnayan/protomodel/internal/errors"
)

// ensureDir creates a directory and its parents.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return pmerrors.Wrap(pmerrors.ErrWriteFailed, err)
	}
	return nil
}

// writeFileAtomic writes data through a uniquely named temp file in the
// target directory and renames it into place, so a crashed run never
// leaves a half-written generated file behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return pmerrors.Wrap(pmerrors.ErrWriteFailed, err)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return pmerrors.Wrap(pmerrors.ErrWriteFailed, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return pmerrors.Wrap(pmerrors.ErrWriteFailed, err)
	}
	return nil
}
