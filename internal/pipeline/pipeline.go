// Package pipeline runs one block file through analysis, composition, rendering and
// injection, and writes the result back atomically.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"blockmeta/internal/analyzer"
	"blockmeta/internal/compose"
	"blockmeta/internal/config"
	blockerrors "blockmeta/internal/errors"
	"blockmeta/internal/metadata"
	"blockmeta/internal/paths"
	"blockmeta/internal/slogutil"
)

// SourceAnalyzer derives facts from block source.
type SourceAnalyzer interface {
	Analyze(ctx context.Context, code []byte) (*analyzer.Facts, error)
}

// Options configures an Annotator.
type Options struct {
	// Root makes block names relative to this directory; empty keeps the argument as given.
	Root string
	// Now overrides the clock used for created/updated.
	Now func() time.Time
	// Analyzer replaces the tree-sitter analyzer built from the config.
	Analyzer SourceAnalyzer
	Logger   *slog.Logger
}

// Annotator is not safe for concurrent use.
type Annotator struct {
	root     string
	analyzer SourceAnalyzer
	reader   *metadata.Reader
	composer *compose.Composer
	logger   *slog.Logger
}

// New builds an Annotator from cfg. A nil cfg means config.DefaultConfig.
func New(cfg *config.Config, opts Options) *Annotator {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}

	src := opts.Analyzer
	if src == nil {
		rules := make([]analyzer.TypeRule, 0, len(cfg.Analysis.ArgTypeRules))
		for _, r := range cfg.Analysis.ArgTypeRules {
			rules = append(rules, analyzer.TypeRule{Contains: r.Contains, Type: metadata.ArgType(r.Type)})
		}
		src = analyzer.New(analyzer.Options{
			ExtraStdlib: cfg.Analysis.Stdlib,
			ExtraRules:  rules,
		})
	}

	return &Annotator{
		root:     opts.Root,
		analyzer: src,
		reader:   metadata.NewReader(logger),
		composer: compose.New(compose.Options{Now: opts.Now, Platforms: cfg.Compose.Platforms}),
		logger:   logger,
	}
}

// Result is the outcome of processing one file.
type Result struct {
	Path     string
	Name     string
	Record   *metadata.Record
	Block    string
	Original string
	Text     string
	// HadPrior is true when an existing declaration was decoded.
	HadPrior bool
	Warnings []compose.Warning
}

// Prepare reads path and computes its updated text without writing anything.
func (a *Annotator) Prepare(ctx context.Context, path string) (*Result, error) {
	logger := a.logger.With("run", uuid.NewString(), "file", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, blockerrors.NewBlockError(blockerrors.FileAccess, "failed to read block file", err).WithPath(path)
	}

	name, err := paths.BlockName(path, a.root)
	if err != nil {
		return nil, blockerrors.NewBlockError(blockerrors.FileAccess, "failed to resolve block name", err).WithPath(path)
	}
	if a.root != "" && !paths.IsWithinRoot(path, a.root) {
		logger.Warn("File is outside the root directory", "root", a.root, "name", name)
	}

	text := string(data)
	prior, hadPrior := a.reader.ReadExisting(ctx, text)

	facts, err := a.analyzer.Analyze(ctx, data)
	if err != nil {
		var be *blockerrors.BlockError
		if errors.As(err, &be) {
			return nil, be.WithPath(path)
		}
		return nil, blockerrors.NewBlockError(blockerrors.InternalError, "analysis failed", err).WithPath(path)
	}
	logger.Debug("Analyzed source",
		"imports", len(facts.Imports),
		"dependencies", len(facts.Dependencies),
		"args", len(facts.Args),
		"blockType", string(facts.BlockType),
	)

	rec, warnings := a.composer.Compose(name, facts, prior)
	for _, w := range warnings {
		logger.Warn("Discarded prior metadata value", "field", w.Field, "reason", w.Reason)
	}

	block := metadata.Render(rec)
	res := &Result{
		Path:     path,
		Name:     name,
		Record:   rec,
		Block:    block,
		Original: text,
		Text:     metadata.Inject(text, block),
		HadPrior: hadPrior,
		Warnings: warnings,
	}
	logger.Info("Composed metadata", "name", name, "version", rec.Version, "hadPrior", hadPrior)
	return res, nil
}

// Annotate prepares path and replaces its contents with the annotated text.
func (a *Annotator) Annotate(ctx context.Context, path string) (*Result, error) {
	res, err := a.Prepare(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := WriteFileAtomic(path, []byte(res.Text)); err != nil {
		return nil, blockerrors.NewBlockError(blockerrors.FileAccess, "failed to write block file", err).WithPath(path)
	}
	return res, nil
}

// WriteFileAtomic writes data next to path and renames it into place, keeping the
// permissions of an existing file.
func WriteFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, mode); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	// WriteFile does not change the mode of a pre-existing temp file.
	if err := os.Chmod(tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to set mode on %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename %s: %w", tmpPath, err)
	}
	return nil
}
