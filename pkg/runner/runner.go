package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/bukvar/bukvar/pkg/binenc"
	"github.com/bukvar/bukvar/pkg/config"
	"github.com/bukvar/bukvar/pkg/document"
	"github.com/bukvar/bukvar/pkg/fsutil"
	"github.com/bukvar/bukvar/pkg/streaming"
)

// outputPerm is the file mode used for written .dast/.json output files.
const outputPerm = 0o644

// Runner orchestrates multi-file parsing and output writing.
type Runner struct{}

// New creates a new Runner.
func New() *Runner {
	return &Runner{}
}

// Run discovers files under opts.Paths, parses each one, and writes the
// parsed result under opts.OutputDir (spec.md §6's mirrored output tree).
// It returns a deterministic collection of FileOutcome values and aggregate
// stats.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Processes files concurrently using a worker pool, one
//     Scanner/Parser/Validator/Encoder set per worker (no shared state)
//   - Aggregates results into a single Result with statistics
//   - Respects context cancellation
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh. Each
// worker reads, parses, encodes, and writes a file entirely on its own —
// no state is shared with other workers beyond the channels themselves.
func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, opts Options) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.processFile(ctx, path, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

func (r *Runner) processFile(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}

	content, err := r.readInput(ctx, path, cfg)
	if err != nil {
		outcome.Error = fmt.Errorf("read %s: %w", path, err)
		return outcome
	}

	res, err := document.ParseFile(ctx, path, content, document.Options{Validate: cfg.Validate})
	if err != nil {
		outcome.Error = fmt.Errorf("parse %s: %w", path, err)
		return outcome
	}
	outcome.Diagnostics = res.Diagnostics

	data, outExt, err := r.encode(res, cfg)
	if err != nil {
		outcome.Error = fmt.Errorf("encode %s: %w", path, err)
		return outcome
	}

	outPath, err := r.outputPath(path, opts, outExt)
	if err != nil {
		outcome.Error = fmt.Errorf("resolve output path for %s: %w", path, err)
		return outcome
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		outcome.Error = fmt.Errorf("create output directory for %s: %w", outPath, err)
		return outcome
	}

	if err := fsutil.WriteAtomic(ctx, outPath, data, outputPerm); err != nil {
		outcome.Error = fmt.Errorf("write %s: %w", outPath, err)
		return outcome
	}
	outcome.OutputPath = outPath

	return outcome
}

// readInput reads a file's bytes, going through pkg/streaming when
// cfg.Streaming is set (spec.md §4.9's chunked-reader mode) instead of a
// single os.ReadFile.
func (r *Runner) readInput(ctx context.Context, path string, cfg *config.Config) ([]byte, error) {
	if !cfg.Streaming {
		content, _, err := fsutil.ReadFile(ctx, path)
		return content, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	const maxLineLength = 1 << 20
	src := streaming.NewReaderSource(f, maxLineLength)
	return streaming.CollectAll(src)
}

// encode renders a parsed Result per cfg.Format, returning the bytes to
// write and the output file extension to use.
func (r *Runner) encode(res *document.Result, cfg *config.Config) ([]byte, string, error) {
	switch cfg.Format {
	case config.FormatJSON:
		data, err := document.ToJSON(res, document.JSONOptions{
			Pretty:       cfg.Pretty,
			IncludeSpans: cfg.Sourcemap,
		})
		return data, ".json", err
	case config.FormatDAST, "":
		data, err := binenc.Encode(res.Document, binenc.Options{IncludeSpans: cfg.Sourcemap})
		return data, ".dast", err
	default:
		return nil, "", fmt.Errorf("unrecognized output format %q", cfg.Format)
	}
}

// outputPath resolves the mirrored output location for an input file
// (spec.md §6): the path relative to opts.WorkingDir, re-rooted under
// opts.OutputDir, with its extension replaced.
func (r *Runner) outputPath(path string, opts Options, outExt string) (string, error) {
	base := opts.WorkingDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		base = wd
	}

	rel, err := filepath.Rel(base, path)
	if err != nil {
		rel = filepath.Base(path)
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = base
	}

	relOut := rel[:len(rel)-len(filepath.Ext(rel))] + outExt
	return filepath.Join(outDir, relOut), nil
}
