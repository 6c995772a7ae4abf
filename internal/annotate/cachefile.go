package annotate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrCacheExists is returned when the annotation cache file is already
// present. The cache is never overwritten.
var ErrCacheExists = errors.New("annotation cache already exists")

// CacheExists reports whether a file is present at path.
func CacheExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat annotation cache: %w", err)
}

// WriteCacheIfAbsent creates path exclusively and writes data to it.
// If the file already exists it is left untouched and ErrCacheExists is
// returned. A failed write removes the partial file.
func WriteCacheIfAbsent(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrCacheExists
		}
		return fmt.Errorf("create annotation cache: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write annotation cache: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close annotation cache: %w", err)
	}
	return nil
}
