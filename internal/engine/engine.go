// Package engine runs the discovery pipeline: walk, classify, parse, score,
// aggregate. Files are independent of each other, so they are processed by a
// small worker pool; the only shared state is the inventory builder, which
// is the single synchronization point for partial results.
package engine

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"jdisco/internal/classify"
	"jdisco/internal/errors"
	"jdisco/internal/fingerprint"
	"jdisco/internal/inventory"
	"jdisco/internal/javaparse"
	"jdisco/internal/paths"
	"jdisco/internal/rules"
	"jdisco/internal/walker"
)

// Options configures a scan.
type Options struct {
	// Workers sizes the file-level worker pool. Zero means NumCPU;
	// one gives strictly sequential processing.
	Workers int
	// Threshold overrides the scorer's statement threshold when positive.
	Threshold int
	// MaxFileSizeBytes skips content reads for larger files. Zero means the
	// default of 1 MiB.
	MaxFileSizeBytes int64
	// Vocabulary overrides the builtin classification vocabulary.
	Vocabulary *classify.Vocabulary
	// SkipDirs overrides the walker's skip list.
	SkipDirs []string
}

const defaultMaxFileSize = 1 << 20

// Engine executes scans. It is stateless across scans and safe to reuse.
type Engine struct {
	opts       Options
	logger     *slog.Logger
	classifier *classify.Classifier
	scorer     *rules.Scorer

	// newParser builds one structural parser per worker; tree-sitter
	// parsers are not safe for concurrent use.
	newParser func() javaparse.StructuralParser
}

// New creates an engine with the given options.
func New(opts Options, logger *slog.Logger) *Engine {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.MaxFileSizeBytes <= 0 {
		opts.MaxFileSizeBytes = defaultMaxFileSize
	}

	scorer := rules.NewScorer()
	if opts.Threshold > 0 {
		scorer = rules.NewScorerWithThreshold(opts.Threshold)
	}

	return &Engine{
		opts:       opts,
		logger:     logger,
		classifier: classify.NewClassifier(opts.Vocabulary, logger),
		scorer:     scorer,
		newParser:  func() javaparse.StructuralParser { return javaparse.NewParser() },
	}
}

// SetParserFactory swaps the structural parser implementation. The factory
// is called once per worker.
func (e *Engine) SetParserFactory(f func() javaparse.StructuralParser) {
	e.newParser = f
}

// Scan walks root and returns the aggregated inventory. It fails fast with
// PATH_NOT_FOUND when root is missing or not a directory; every per-file
// condition is absorbed into the model's execution log instead.
func (e *Engine) Scan(ctx context.Context, root string) (*inventory.Model, error) {
	absRoot, err := paths.EnsureRoot(root)
	if err != nil {
		return nil, err
	}

	e.logger.Info("Starting discovery scan", "root", absRoot, "workers", e.opts.Workers)

	builder := inventory.NewBuilder(absRoot, paths.ProjectName(absRoot))
	fp := fingerprint.NewAccumulator()

	records := make(chan walker.FileRecord, 64)

	var wg sync.WaitGroup
	for i := 0; i < e.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			parser := e.newParser()
			for rec := range records {
				e.processFile(ctx, parser, rec, builder, fp)
			}
		}()
	}

	w := walker.New(absRoot, e.logger, e.opts.SkipDirs)
	walkErr := w.Walk(ctx, func(rec walker.FileRecord) error {
		select {
		case records <- rec:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	close(records)
	wg.Wait()

	if walkErr != nil {
		return nil, walkErr
	}

	model := builder.Build(fp.Sum())
	e.logger.Info("Discovery scan complete",
		"files", model.Summary.FilesScanned,
		"entities", model.Summary.Entities,
		"businessComponents", model.Summary.BusinessComponents,
		"jsfPages", model.Summary.JSFPages,
		"logEntries", len(model.Log),
	)
	return model, nil
}

// processFile handles one file to completion: read, classify, parse, score.
func (e *Engine) processFile(ctx context.Context, parser javaparse.StructuralParser, rec walker.FileRecord, builder *inventory.Builder, fp *fingerprint.Accumulator) {
	builder.FileVisited()
	fp.Add(rec)

	var content []byte
	if e.classifier.NeedsContent(rec) {
		if rec.Size > e.opts.MaxFileSizeBytes {
			e.logger.Debug("Skipping oversized file", "file", rec.RelativePath, "size", rec.Size)
			builder.AddLog(errors.FileSkipped, rec.RelativePath,
				fmt.Sprintf("file exceeds size limit (%d > %d bytes)", rec.Size, e.opts.MaxFileSizeBytes))
			return
		}
		var err error
		content, err = os.ReadFile(rec.AbsolutePath)
		if err != nil {
			builder.AddLog(errors.FileReadError, rec.RelativePath, "failed to read file: "+err.Error())
			return
		}
	}

	matches := e.classifier.Classify(rec, content)
	isBusiness := false
	for _, m := range matches {
		builder.AddMatch(rec, m)
		if m.Category == classify.CategoryBusinessComponent {
			isBusiness = true
		}
	}

	if !isBusiness {
		return
	}

	units, err := parser.Parse(ctx, rec.RelativePath, content)
	if err != nil {
		if stderrors.Is(err, javaparse.ErrInvalidSource) {
			builder.AddLog(errors.ParseFailure, rec.RelativePath, "file does not parse as Java")
		} else {
			builder.AddLog(errors.ParseFailure, rec.RelativePath, "parse error: "+err.Error())
		}
		return
	}

	for i := range units {
		e.scorer.Score(&units[i])
		builder.AddUnit(units[i])
	}
}
