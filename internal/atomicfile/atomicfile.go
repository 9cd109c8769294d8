// Package atomicfile provides the write-temp-then-rename primitive the pool
// uses to commit snapshots. A reader either sees the previous file content
// in full or the new content in full, never a truncated mix. The pool's
// loader has no corruption-recovery path, so this guarantee is a hard
// contract.
package atomicfile

import (
	"os"
	"path/filepath"
)

// WriteFile writes data to path atomically. The temp file is created in the
// target directory so the final rename stays on one filesystem. On any
// failure the temp file is removed and the prior content of path, if any,
// is left untouched.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmpName, perm)
	}
	if err == nil {
		err = os.Rename(tmpName, path)
	}
	if err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
