package loader

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/docpress/internal/config"
	derrors "git.home.luguber.info/inful/docpress/internal/errors"
	"git.home.luguber.info/inful/docpress/internal/logfields"
)

// ResolveSource materializes the configured source as a local docs root.
//
// For a dir source the configured path is returned as-is. For a git source
// the repository is cloned into a temporary workspace; cleanup removes it.
func ResolveSource(ctx context.Context, src config.SourceConfig) (root string, cleanup func(), err error) {
	cleanup = func() {}

	switch src.Type {
	case config.SourceGit:
		dir, err := cloneRepository(ctx, src.URL, src.Branch)
		if err != nil {
			return "", cleanup, err
		}
		cleanup = func() {
			if rmErr := os.RemoveAll(dir); rmErr != nil {
				slog.Warn("Failed to remove clone workspace", logfields.Path(dir), logfields.Error(rmErr))
			}
		}
		return filepath.Join(dir, src.DocsDir), cleanup, nil
	default:
		abs, err := filepath.Abs(src.Path)
		if err != nil {
			return "", cleanup, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to resolve docs path")
		}
		return abs, cleanup, nil
	}
}

// cloneRepository performs a shallow clone into a temp directory.
func cloneRepository(ctx context.Context, url, branch string) (string, error) {
	dir, err := os.MkdirTemp("", "docpress-src-*")
	if err != nil {
		return "", derrors.WrapError(err, derrors.CategoryFileSystem, "failed to create clone workspace")
	}

	opts := &git.CloneOptions{
		URL:          url,
		Depth:        1,
		SingleBranch: true,
	}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
	}

	slog.Info("Cloning documentation source", logfields.URL(url), logfields.Path(dir))
	if _, err := git.PlainCloneContext(ctx, dir, false, opts); err != nil {
		_ = os.RemoveAll(dir)
		return "", derrors.WrapError(err, derrors.CategoryGit, "failed to clone documentation source").
			WithContext("url", url)
	}
	return dir, nil
}
