package sync

import (
	"os"
	"path/filepath"

	"github.com/placesync/placesync/internal/logging"
)

// writeFileAtomic writes data to path via a temporary file in the same
// directory followed by a rename, so an interrupted run never leaves the
// target half-written. The temporary file is removed on every failure
// path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(name)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Chmod(perm); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(name, path); err != nil {
		return err
	}

	logging.Debug("wrote store file", logging.Path(path), logging.Count(len(data)))
	return nil
}
