// cache.go - Cache-Pfade im Layout von huggingface_hub
// Enthaelt: GetCacheDir, snapshotDir, writeAtomic
package huggingface

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/grolp/grolp/envconfig"
)

// Cache-Konstanten
const (
	DefaultCacheSubdir = "huggingface/hub"
	CacheSnapshotDir   = "snapshots"
	CacheModelPrefix   = "models--"
)

// GetCacheDir gibt das Cache-Verzeichnis zurueck (HF_HUB_CACHE, HF_HOME, ~/.cache)
func GetCacheDir() string {
	if cacheDir := envconfig.Var("HF_HUB_CACHE"); cacheDir != "" {
		return cacheDir
	}
	if hfHome := envconfig.Var("HF_HOME"); hfHome != "" {
		return filepath.Join(hfHome, "hub")
	}

	var baseDir string
	switch {
	case runtime.GOOS == "windows" && os.Getenv("USERPROFILE") != "":
		baseDir = filepath.Join(os.Getenv("USERPROFILE"), ".cache")
	case envconfig.Var("XDG_CACHE_HOME") != "":
		baseDir = envconfig.Var("XDG_CACHE_HOME")
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "huggingface_cache", "hub")
		}
		baseDir = filepath.Join(home, ".cache")
	}
	return filepath.Join(baseDir, DefaultCacheSubdir)
}

// snapshotDir: <cache>/models--owner--name/snapshots/<revision>
func snapshotDir(cacheDir, repo, revision string) string {
	return filepath.Join(cacheDir, CacheModelPrefix+strings.ReplaceAll(repo, "/", "--"), CacheSnapshotDir, revision)
}

// writeAtomic schreibt r ueber eine Temp-Datei nach path
func writeAtomic(path string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".download-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
