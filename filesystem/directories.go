// Package filesystem resolves data directory paths and guards them against
// concurrent use.
package filesystem

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// OwnerReadWriteExec is the mode of created directories.
const OwnerReadWriteExec = 0o700

// ErrLocked is returned when the directory is locked by another process.
var ErrLocked = errors.New("directory is locked by another process")

// GetUserHomeDirectory returns the user home directory if one is set.
func GetUserHomeDirectory() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// GetCanonicalPath returns an os-specific full path:
// ~ is replaced with user's home dir path, env variables are expanded
// and the result is cleaned.
func GetCanonicalPath(p string) string {
	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, "~\\") {
		if home := GetUserHomeDirectory(); home != "" {
			p = home + p[1:]
		}
	}
	return filepath.Clean(os.ExpandEnv(p))
}

// PathExists returns true iff file exists and is accessible.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ExistOrCreate creates the directory with all parents if it doesn't exist.
func ExistOrCreate(path string) error {
	if err := os.MkdirAll(path, OwnerReadWriteExec); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// Lock takes an exclusive lock of the file at path without blocking.
// The caller releases it with Unlock.
func Lock(path string) (*flock.Flock, error) {
	if err := ExistOrCreate(filepath.Dir(path)); err != nil {
		return nil, err
	}
	fl := flock.New(path)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("flock %s: %w", path, err)
	} else if !locked {
		return nil, fmt.Errorf("%w (locking file %s)", ErrLocked, fl.Path())
	}
	return fl, nil
}
