package export

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/retroenv/retrogolib/log"
)

const outputPerm = 0o644

// publish stages every file next to its destination and renames them into
// place only once all of them were written. A failure while staging removes
// the staged files and the directories created for them, and leaves the
// destinations untouched. The renames themselves are not undone: a failing
// rename k leaves outputs before k replaced.
func publish(ctx context.Context, logger *log.Logger, files []rendered, linkDir string) (err error) {
	var (
		pending = make([]*renameio.PendingFile, 0, len(files))
		created []string
	)
	defer func() {
		if err == nil {
			return
		}
		for _, p := range pending {
			if cerr := p.Cleanup(); cerr != nil {
				logger.Warn("Removing staged output failed", log.String("path", p.Name()), log.Err(cerr))
			}
		}
		// Deepest first; directories that received published files stay.
		for i := len(created) - 1; i >= 0; i-- {
			_ = os.Remove(created[i])
		}
	}()

	for _, f := range files {
		dir := filepath.Dir(f.path)
		dirs, err := mkdirAll(dir)
		created = append(created, dirs...)
		if err != nil {
			return fmt.Errorf("could not create output directory: %w", err)
		}
		pf, err := renameio.NewPendingFile(f.path,
			renameio.WithTempDir(dir),
			renameio.WithStaticPermissions(outputPerm))
		if err != nil {
			return fmt.Errorf("could not stage: %v: %w", f.path, err)
		}
		pending = append(pending, pf)
		if _, err := pf.Write(f.data); err != nil {
			return fmt.Errorf("could not write: %v: %w", f.path, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	for i, pf := range pending {
		if err := pf.CloseAtomicallyReplace(); err != nil {
			return fmt.Errorf("could not publish: %v: %w", files[i].path, err)
		}
		logger.Info("Wrote output", log.String("path", files[i].path))
	}

	if linkDir == "" {
		return nil
	}
	return linkOutputs(files, linkDir)
}

// mkdirAll creates dir and its missing parents and returns the directories it
// created, outermost first.
func mkdirAll(dir string) ([]string, error) {
	var missing []string
	for d := dir; ; d = filepath.Dir(d) {
		if _, err := os.Stat(d); !errors.Is(err, fs.ErrNotExist) {
			break
		}
		missing = append([]string{d}, missing...)
		if filepath.Dir(d) == d {
			break
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return missing, nil
}

// linkOutputs points a symlink named after each output in linkDir at the
// published file, replacing stale links.
func linkOutputs(files []rendered, linkDir string) error {
	if err := os.MkdirAll(linkDir, 0o755); err != nil {
		return fmt.Errorf("could not create link directory: %w", err)
	}
	for _, f := range files {
		target, err := filepath.Abs(f.path)
		if err != nil {
			return fmt.Errorf("could not resolve: %v: %w", f.path, err)
		}
		link := filepath.Join(linkDir, filepath.Base(f.path))
		if err := renameio.Symlink(target, link); err != nil {
			return fmt.Errorf("could not link: %v: %w", link, err)
		}
	}
	return nil
}
