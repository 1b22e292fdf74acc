// Package where resolves the application's directories and files on each platform.
package where

import (
	"os"
	"path/filepath"

	"github.com/aceplay/aceplay/constant"
	"github.com/aceplay/aceplay/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "ACEPLAY_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config returns the configuration directory, honoring ACEPLAY_CONFIG_PATH.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Aceplay))
}

// Cache returns the cache directory, falling back to ./cache when the user cache dir is unknown.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Aceplay))
}

// Logs returns the directory holding dated log files.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Location returns the file that remembers the last stream location between runs.
func Location() string {
	return filepath.Join(Cache(), "location.json")
}

// Temp returns a scratch directory, used for the mpv IPC socket.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Aceplay))
}
