package transform

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ironsheep/image-transform-mcp/internal/canvas"
)

var (
	tempMu  sync.RWMutex
	tempDir string
)

// SetTempDir sets the process-wide directory for scratch files.
//
// The directory is created with mode 0777 when missing and made writable
// when it is not. It is meant to be called once at startup; images already
// holding scratch files keep their paths.
func SetTempDir(path string) error {
	if path == "" {
		return fmt.Errorf("%w: temp dir path is empty", canvas.ErrInvalidArgument)
	}
	dir, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to resolve temp dir %s: %w", path, err)
	}
	if err := os.MkdirAll(dir, 0o777); err != nil {
		return fmt.Errorf("failed to create temp dir %s: %w", dir, err)
	}
	if !writable(dir) {
		if err := os.Chmod(dir, 0o777); err != nil || !writable(dir) {
			return fmt.Errorf("temp dir %s is not writable", dir)
		}
	}

	tempMu.Lock()
	tempDir = dir
	tempMu.Unlock()
	return nil
}

// TempDir returns the scratch directory, defaulting to os.TempDir().
func TempDir() string {
	tempMu.RLock()
	defer tempMu.RUnlock()
	if tempDir == "" {
		return os.TempDir()
	}
	return tempDir
}

func writable(dir string) bool {
	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
