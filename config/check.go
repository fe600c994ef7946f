// check.go - Paralleles Pruefen mehrerer Checkpoint-Verzeichnisse
package config

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// CheckResult ist das Ergebnis fuer ein Verzeichnis
type CheckResult struct {
	Dir      string
	Config   Config
	Warnings []string
	Err      error
}

// CheckDirs laedt jedes Verzeichnis als kind und prueft es gegen layout.
// Hoechstens parallel Verzeichnisse werden gleichzeitig gelesen. Ladefehler
// stehen im jeweiligen Ergebnis; zurueckgegeben wird nur ein Kontext-Fehler.
func CheckDirs(ctx context.Context, kind string, layout VisualLayout, dirs []string, parallel int) ([]CheckResult, error) {
	if parallel < 1 {
		parallel = 1
	}

	results := make([]CheckResult, len(dirs))
	sem := semaphore.NewWeighted(int64(parallel))
	g, gctx := errgroup.WithContext(ctx)

	for i, dir := range dirs {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}

		g.Go(func() error {
			defer sem.Release(1)

			r := CheckResult{Dir: dir}
			r.Config, r.Err = Load(kind, dir)
			if r.Err == nil {
				r.Warnings = Warnings(r.Config.CheckVisualLayout(layout))
			}

			slog.Debug("checked config", "dir", dir, "kind", kind, "warnings", len(r.Warnings), "error", r.Err)
			results[i] = r
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	return results, ctx.Err()
}
