// Package driver runs the decoding pipeline: load the binary, assemble the
// DIE tree, collect variables, flatten them into report blocks.
//
// Фатальные ошибки (нет файла, не ELF, битый DWARF) оформляются как
// диагностики уровня error и одновременно возвращаются как error.
// Всё остальное копится предупреждениями в Result.Diags, разбор при этом
// доводится до конца.
package driver

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/forestaa/troll/internal/diag"
	"github.com/forestaa/troll/internal/die"
	"github.com/forestaa/troll/internal/elfio"
	"github.com/forestaa/troll/internal/extract"
	"github.com/forestaa/troll/internal/layout"
	"github.com/forestaa/troll/internal/observ"
	"github.com/forestaa/troll/internal/trace"
	"github.com/forestaa/troll/internal/typegraph"
)

const defaultBagLimit = 256

// Request describes one file to analyze.
type Request struct {
	Path     string
	Filter   string // подстрока имени переменной, пустая пропускает все
	UseCache bool
}

// Result is the outcome for one file. Diags is never nil; after a fatal
// error it holds the error diagnostic and Blocks stays empty.
type Result struct {
	Path      string
	Blocks    []layout.Block
	Diags     *diag.Bag
	Timing    observ.Report
	FromCache bool
}

// Options carries the machinery shared by all files of a run.
type Options struct {
	Cache    *ReportCache // nil отключает кэш
	Tracer   trace.Tracer
	Events   chan<- Event // nil отключает прогресс
	BagLimit int          // 0 берёт умолчание
}

// EventKind tags progress events.
type EventKind uint8

const (
	EventStarted EventKind = iota + 1
	EventFinished
	EventFailed
)

// Event reports per-file progress for interactive front ends.
type Event struct {
	Path      string
	Kind      EventKind
	Blocks    int
	FromCache bool
	Err       error
}

func emit(opts Options, ev Event) {
	if opts.Events != nil {
		opts.Events <- ev
	}
}

// Analyze runs the pipeline for one file. When Options.Tracer is nil the
// tracer attached to ctx is used (trace.Nop when there is none).
func Analyze(ctx context.Context, req Request, opts Options) (*Result, error) {
	if opts.Tracer == nil {
		opts.Tracer = trace.FromContext(ctx)
	}
	limit := opts.BagLimit
	if limit <= 0 {
		limit = defaultBagLimit
	}
	bag := diag.NewBag(limit)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	res := &Result{Path: req.Path, Diags: bag}
	timer := observ.NewTimer()
	defer func() { res.Timing = timer.Report() }()

	span := trace.Begin(opts.Tracer, trace.ScopeDriver, "analyze", 0)
	span.WithExtra("path", req.Path)
	defer span.End("")

	emit(opts, Event{Path: req.Path, Kind: EventStarted})
	fail := func(err error) (*Result, error) {
		emit(opts, Event{Path: req.Path, Kind: EventFailed, Err: err})
		return res, err
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	ph := timer.Begin("read")
	data, err := os.ReadFile(req.Path)
	if err != nil {
		timer.End(ph, "failed")
		le := &elfio.LoadError{Path: req.Path, Kind: elfio.LoadErrRead, Err: err}
		return fail(fatal(bag, loadErrorCode(le), req.Path, le))
	}
	timer.End(ph, fmt.Sprintf("%d bytes", len(data)))

	digest := FileDigest(data)
	if req.UseCache && opts.Cache != nil {
		ph = timer.Begin("cache")
		var payload CachedReport
		hit, cerr := opts.Cache.Get(digest, &payload)
		timer.End(ph, "probe")
		if cerr == nil && hit && payload.Schema == reportCacheSchema {
			for _, d := range payload.Diags {
				bag.Add(d)
			}
			res.Blocks = filterBlocks(payload.Blocks, req.Filter)
			res.FromCache = true
			emit(opts, Event{Path: req.Path, Kind: EventFinished, Blocks: len(res.Blocks), FromCache: true})
			return res, nil
		}
		// битая или устаревшая запись не мешает, просто пересчитываем
	}

	ph = timer.Begin("parse")
	img, err := elfio.Parse(req.Path, data)
	if err != nil {
		timer.End(ph, "failed")
		var le *elfio.LoadError
		if errors.As(err, &le) {
			return fail(fatal(bag, loadErrorCode(le), req.Path, err))
		}
		return fail(fatal(bag, diag.ElfInfo, req.Path, err))
	}
	timer.End(ph, "")

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	ph = timer.Begin("index")
	pspan := trace.Begin(opts.Tracer, trace.ScopePass, "index", span.ID())
	idx, err := die.Build(img.Dwarf)
	if err != nil {
		pspan.End("failed")
		timer.End(ph, "failed")
		return fail(fatal(bag, structureErrorCode(err), req.Path, err))
	}
	pspan.End(fmt.Sprintf("%d DIEs", idx.Len()))
	timer.End(ph, fmt.Sprintf("%d DIEs", idx.Len()))

	ph = timer.Begin("collect")
	pspan = trace.Begin(opts.Tracer, trace.ScopePass, "collect", span.ID())
	resolver := typegraph.NewResolver(idx, req.Path, reporter, opts.Tracer)
	collector := extract.NewCollector(idx, resolver, req.Path, reporter, opts.Tracer)
	vars := collector.Collect()
	pspan.End(fmt.Sprintf("%d variables", len(vars)))
	timer.End(ph, fmt.Sprintf("%d variables", len(vars)))

	ph = timer.Begin("flatten")
	pspan = trace.Begin(opts.Tracer, trace.ScopePass, "flatten", span.ID())
	blocks := layout.Flatten(vars)
	pspan.End(fmt.Sprintf("%d blocks", len(blocks)))
	timer.End(ph, fmt.Sprintf("%d blocks", len(blocks)))

	if req.UseCache && opts.Cache != nil {
		payload := CachedReport{
			Schema: reportCacheSchema,
			Path:   req.Path,
			Blocks: blocks,
			Diags:  bag.Items(),
		}
		if err := opts.Cache.Put(digest, &payload); err != nil {
			reporter.Report(diag.ObsInfo, diag.SevInfo, diag.Loc{File: req.Path},
				fmt.Sprintf("cache write failed: %v", err), nil)
		}
	}

	res.Blocks = filterBlocks(blocks, req.Filter)
	emit(opts, Event{Path: req.Path, Kind: EventFinished, Blocks: len(res.Blocks)})
	return res, nil
}

func fatal(bag *diag.Bag, code diag.Code, path string, err error) error {
	bag.Add(diag.NewError(code, diag.Loc{File: path}, err.Error()))
	return err
}

func loadErrorCode(le *elfio.LoadError) diag.Code {
	switch le.Kind {
	case elfio.LoadErrRead:
		if errors.Is(le.Err, os.ErrNotExist) {
			return diag.FileNotFound
		}
		return diag.FileRead
	case elfio.LoadErrFormat:
		return diag.FileNotElf
	case elfio.LoadErrNoDebug:
		return diag.FileNoDwarf
	default:
		return diag.ElfInfo
	}
}

func structureErrorCode(err error) diag.Code {
	var se *die.StructureError
	if !errors.As(err, &se) {
		return diag.DwarfMalformed
	}
	switch se.Kind {
	case die.StructureErrOffsetClash:
		return diag.DwarfOffsetClash
	case die.StructureErrTerminator:
		return diag.DwarfNoTerminator
	default:
		return diag.DwarfMalformed
	}
}
