// Package build orchestrates the load -> render -> write pipeline.
package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docpress/internal/config"
	derrors "git.home.luguber.info/inful/docpress/internal/errors"
	"git.home.luguber.info/inful/docpress/internal/loader"
	"git.home.luguber.info/inful/docpress/internal/logfields"
	"git.home.luguber.info/inful/docpress/internal/manifest"
	"git.home.luguber.info/inful/docpress/internal/metrics"
	"git.home.luguber.info/inful/docpress/internal/render"
)

// Builder runs full builds for a configuration.
type Builder struct {
	cfg      *config.Config
	recorder metrics.Recorder
}

// NewBuilder creates a Builder. Metrics default to the no-op recorder.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{cfg: cfg, recorder: metrics.NoopRecorder{}}
}

// WithRecorder injects a metrics recorder (serve mode, tests).
func (b *Builder) WithRecorder(rec metrics.Recorder) *Builder {
	if rec != nil {
		b.recorder = rec
	}
	return b
}

// Run performs one full build into outputDir.
//
// Per-document load and render problems are isolated into the Result; Run
// only returns an error when the whole input set is unusable or the output
// directory cannot be written.
func (b *Builder) Run(ctx context.Context, outputDir string) (*Result, error) {
	b.recorder.BuildStarted()
	started := time.Now()

	result := &Result{
		BuildID:   uuid.NewString(),
		Started:   started,
		OutputDir: outputDir,
	}
	slog.Info("Starting build", logfields.BuildID(result.BuildID), logfields.Path(outputDir))

	root, cleanup, err := loader.ResolveSource(ctx, b.cfg.Source)
	if err != nil {
		b.recorder.BuildFailed()
		return nil, err
	}
	defer cleanup()

	loadRes, err := loader.New(root).Load()
	if err != nil {
		b.recorder.BuildFailed()
		return nil, err
	}
	result.Failures = append(result.Failures, loadRes.Failures...)

	if err := b.prepareOutputDir(outputDir); err != nil {
		b.recorder.BuildFailed()
		return nil, err
	}

	renderer, err := render.New(b.cfg.Site)
	if err != nil {
		b.recorder.BuildFailed()
		return nil, err
	}

	set := loadRes.Set
	for _, doc := range set.Documents() {
		if err := ctx.Err(); err != nil {
			b.recorder.BuildFailed()
			return nil, derrors.WrapError(err, derrors.CategoryRender, "build canceled")
		}

		page, err := renderer.RenderDocument(doc, set)
		if err != nil {
			slog.Warn("Document failed to render", logfields.Slug(doc.Slug), logfields.Error(err))
			result.Failures = append(result.Failures, loader.Failure{Path: doc.SourcePath, Err: err})
			continue
		}
		if err := writePage(outputDir, page.OutputFile, page.HTML); err != nil {
			b.recorder.BuildFailed()
			return nil, err
		}

		for _, bl := range page.BrokenLinks {
			slog.Warn("Broken internal link",
				logfields.Slug(doc.Slug),
				logfields.Target(bl.Destination))
			result.BrokenLinks = append(result.BrokenLinks, BrokenLinkReport{
				Slug:        doc.Slug,
				Destination: bl.Destination,
			})
		}
		result.Documents++
	}

	indexPage, err := renderer.RenderIndex(set)
	if err != nil {
		b.recorder.BuildFailed()
		return nil, err
	}
	if err := writePage(outputDir, indexPage.OutputFile, indexPage.HTML); err != nil {
		b.recorder.BuildFailed()
		return nil, err
	}

	m := manifest.FromSet(result.BuildID, set, started)
	if err := m.Write(outputDir); err != nil {
		b.recorder.BuildFailed()
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write manifest")
	}
	result.SetHash = m.SetHash

	result.Finished = time.Now()
	b.recorder.BuildCompleted(result.Finished.Sub(started), result.Documents, len(result.Failures), len(result.BrokenLinks))

	slog.Info("Build finished",
		logfields.BuildID(result.BuildID),
		logfields.Count(result.Documents),
		logfields.Failures(len(result.Failures)),
		logfields.Warnings(len(result.BrokenLinks)),
		logfields.DurationMS(float64(result.Finished.Sub(started).Milliseconds())))

	return result, nil
}

// prepareOutputDir creates (and optionally cleans) the output directory.
func (b *Builder) prepareOutputDir(outputDir string) error {
	if b.cfg.Output.Clean {
		if err := os.RemoveAll(outputDir); err != nil {
			return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to clean output directory")
		}
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to create output directory")
	}
	return nil
}

func writePage(outputDir, relFile string, html []byte) error {
	target := filepath.Join(outputDir, filepath.FromSlash(relFile))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to create page directory")
	}
	if err := os.WriteFile(target, html, 0o644); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem,
			fmt.Sprintf("failed to write page %s", relFile))
	}
	return nil
}
