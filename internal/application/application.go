package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "repofinder"

	// DatabaseFile is the name of the preferences database inside the data directory
	DatabaseFile = "repofinder.bolt"
)

// Version is the release reported by --version and sent in the User-Agent.
// It lives here rather than in cmd so internal packages can read it.
// Set it at build time:
//
//	go build -ldflags "-X github.com/inovacc/repofinder/internal/application.Version=v1.2.0"
var Version = "dev"

// UserAgent identifies repofinder to the GitHub API.
func UserAgent() string {
	return AppName + "/" + Version
}

// dataDir resolves the default data directory once per process. A failure is
// cached too, so every caller sees the same error.
var dataDir = sync.OnceValues(func() (string, error) {
	// Windows keeps per-user app data under AppData\Local, which
	// os.UserCacheDir returns; elsewhere ~/.config is the convention.
	base, err := os.UserConfigDir()
	if runtime.GOOS == "windows" {
		base, err = os.UserCacheDir()
	}

	if err != nil {
		return "", fmt.Errorf("failed to resolve data directory: %w", err)
	}

	return filepath.Join(base, AppName), nil
})

// GetApplicationDirectory returns the default repofinder data directory.
// Linux: ~/.config/repofinder
// Windows: C:\Users\{username}\AppData\Local\repofinder
//
// REPOFINDER_DATA_DIR overrides it; see config.Load.
func GetApplicationDirectory() (string, error) {
	return dataDir()
}

// EnsureDirectory creates dir (with parents) if it does not exist yet.
func EnsureDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	return nil
}
