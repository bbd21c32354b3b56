package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// TempFilePrefix names the scratch files a save writes next to the store.
const TempFilePrefix = ".notebook-tmp-"

// writeFileAtomic replaces filename with data through a scratch file and a
// rename in the same directory, so readers see either the old store or the
// new one. An existing store keeps its permission bits; perm applies only on
// creation.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(filename)

	mode := perm
	if info, statErr := os.Stat(filename); statErr == nil {
		mode = info.Mode().Perm()
	}

	scratch, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("create scratch file in %s: %w", dir, err)
	}
	name := scratch.Name()
	defer func() {
		if err != nil {
			os.Remove(name)
		}
	}()

	_, err = scratch.Write(data)
	if err == nil {
		err = scratch.Sync()
	}
	if closeErr := scratch.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write scratch file %s: %w", name, err)
	}

	if err = os.Chmod(name, mode); err != nil {
		return fmt.Errorf("chmod scratch file %s: %w", name, err)
	}
	if err = os.Rename(name, filename); err != nil {
		return fmt.Errorf("replace %s: %w", filename, err)
	}
	syncDir(dir)
	return nil
}

// syncDir flushes the directory entry of a rename. It is best effort:
// some platforms cannot open or sync a directory.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	d.Close()
}
