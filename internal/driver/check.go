package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"formulang/internal/ast"
	"formulang/internal/diag"
	"formulang/internal/observ"
	"formulang/internal/parser"
	"formulang/internal/ruleset"
	"formulang/internal/source"
	"formulang/internal/trace"
)

// RuleSuffix marks single-formula files.
const RuleSuffix = ".rule"

// CheckOptions configures a parallel check run.
type CheckOptions struct {
	Jobs     int // <= 0 — GOMAXPROCS
	Cache    *DiskCache
	Progress ProgressSink
	Timer    *observ.Timer
}

// UnitResult is the outcome of one parsed source: a .rule file, one rule of
// a rule set, or a file that failed to load or decode.
type UnitResult struct {
	Path    string // путь файла или "<set>#<rule>"
	FileID  source.FileID
	Rule    string
	Program *ast.Program // nil, если восстановлено из кэша или не загрузилось
	Bag     *diag.Bag
	Stmts   int
	Halted  bool
	Cached  bool
}

// CheckResult holds every unit in deterministic order.
type CheckResult struct {
	FileSet *source.FileSet
	Units   []UnitResult
}

// ErrorCount sums error diagnostics across units.
func (r *CheckResult) ErrorCount() int {
	n := 0
	for i := range r.Units {
		n += r.Units[i].Bag.ErrorCount()
	}
	return n
}

// HasErrors reports whether any unit produced an error.
func (r *CheckResult) HasErrors() bool { return r.ErrorCount() > 0 }

// Diagnostics merges all unit bags in unit order.
func (r *CheckResult) Diagnostics() *diag.Bag {
	out := diag.NewBag(0)
	for i := range r.Units {
		out.Merge(r.Units[i].Bag)
	}
	return out
}

func isRuleSource(path string) bool {
	return strings.HasSuffix(path, RuleSuffix) || strings.HasSuffix(path, ruleset.Suffix)
}

// ListSources возвращает отсортированный список *.rule и *.rules.yaml под root.
// A root naming a file is returned as is, whatever its extension.
func ListSources(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isRuleSource(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CheckDir parses every rule source under dir.
func CheckDir(ctx context.Context, dir string, cfg Config, opts CheckOptions) (*CheckResult, error) {
	return Check(ctx, []string{dir}, cfg, opts)
}

type unit struct {
	path string
	file source.FileID
	rule string
	bag  *diag.Bag // готовые диагностики (ошибки загрузки), парсить не нужно
}

// Check parses every source reachable from roots concurrently. Loading and
// rule set decoding happen up front on the calling goroutine: FileSet is
// not safe for concurrent writes, workers only read it.
func Check(ctx context.Context, roots []string, cfg Config, opts CheckOptions) (*CheckResult, error) {
	parserOpts, err := cfg.parserOptions()
	if err != nil {
		return nil, err
	}

	ctx, runSpan := trace.Start(ctx, trace.ScopeDriver, "check")
	defer runSpan.End("")

	endList := opts.Timer.Track("list")
	var paths []string
	seen := make(map[string]bool)
	for _, root := range roots {
		found, err := ListSources(root)
		if err != nil {
			endList("")
			return nil, fmt.Errorf("list %s: %w", root, err)
		}
		for _, p := range found {
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}
	endList(strconv.Itoa(len(paths)) + " files")

	baseDir := ""
	if len(roots) == 1 {
		if info, err := os.Stat(roots[0]); err == nil && info.IsDir() {
			baseDir = roots[0]
		}
	}
	fileSet := source.NewFileSetWithBase(baseDir)

	endLoad := opts.Timer.Track("load")
	units := loadUnits(fileSet, paths, cfg.MaxDiagnostics, opts.Progress)
	endLoad(strconv.Itoa(len(units)) + " units")
	runSpan.WithExtra("units", strconv.Itoa(len(units)))

	results := make([]UnitResult, len(units))
	for _, u := range units {
		emit(opts.Progress, Event{Path: u.path, Stage: StageParse, Status: StatusQueued})
	}
	if len(units) == 0 {
		return &CheckResult{FileSet: fileSet}, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	endParse := opts.Timer.Track("parse")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(units)))

	// Результаты пишутся по уникальному индексу, мьютекс не нужен
	for i, u := range units {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = checkUnit(gctx, fileSet.Get(u.file), u, cfg, parserOpts, opts)
			return nil
		})
	}

	err = g.Wait()
	endParse("")
	emit(opts.Progress, Event{Stage: StageParse, Status: StatusDone})
	if err != nil {
		return &CheckResult{FileSet: fileSet, Units: results}, err
	}
	return &CheckResult{FileSet: fileSet, Units: results}, nil
}

func loadUnits(fileSet *source.FileSet, paths []string, maxDiagnostics int, sink ProgressSink) []unit {
	var units []unit
	for _, path := range paths {
		id, err := fileSet.Load(path)
		if err != nil {
			units = append(units, loadFailure(fileSet, path, err, maxDiagnostics))
			continue
		}
		file := fileSet.Get(id)
		if !strings.HasSuffix(path, ruleset.Suffix) {
			units = append(units, unit{path: path, file: id})
			continue
		}

		set, err := ruleset.Decode(file.Path, file.Content)
		if err != nil {
			units = append(units, unit{path: path, file: id, bag: ruleSetProblems(file, err, maxDiagnostics)})
			continue
		}
		emit(sink, Event{Path: path, Stage: StageLoad, Status: StatusDone})
		for _, e := range set.AddTo(fileSet) {
			units = append(units, unit{path: set.VirtualName(e.Rule), file: e.File, rule: e.Rule.Name})
		}
	}
	return units
}

func loadFailure(fileSet *source.FileSet, path string, err error, maxDiagnostics int) unit {
	// пустой виртуальный файл, чтобы span указывал на нужный путь
	id := fileSet.AddVirtual(path, nil)
	bag := diag.NewBag(maxDiagnostics)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: id}, "failed to load file: "+err.Error()))
	return unit{path: path, file: id, bag: bag}
}

func ruleSetProblems(file *source.File, err error, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	for _, p := range ruleset.Problems(err) {
		var sp source.Span
		sp.File = file.ID
		if p.Line > 0 {
			line := uint32(p.Line)
			sp.Start = file.LineStart(line)
			sp.End = sp.Start + uint32(len(file.GetLine(line)))
		}
		bag.Add(diag.NewError(diag.IORuleSetInvalid, sp, p.Message))
	}
	return bag
}

func checkUnit(ctx context.Context, file *source.File, u unit, cfg Config, parserOpts parser.Options, opts CheckOptions) UnitResult {
	res := UnitResult{Path: u.path, FileID: u.file, Rule: u.rule}
	if u.bag != nil {
		res.Bag = u.bag
		emit(opts.Progress, Event{Path: u.path, Stage: StageLoad, Status: StatusError})
		return res
	}

	started := time.Now()
	emit(opts.Progress, Event{Path: u.path, Stage: StageParse, Status: StatusWorking})

	tr := trace.FromContext(ctx)
	ctx, span := trace.Start(ctx, trace.ScopeFile, u.path)

	key := CacheKey(file.Content, cfg)
	var payload DiskPayload
	if hit, err := opts.Cache.Get(key, &payload); err == nil && hit {
		res.Bag = diag.NewBag(cfg.MaxDiagnostics)
		payload.restore(res.Bag, file)
		res.Stmts = payload.Stmts
		res.Halted = payload.Halted
		res.Cached = true
		span.End("cached")
		emit(opts.Progress, Event{Path: u.path, Stage: StageParse, Status: StatusCached, Elapsed: time.Since(started)})
		return res
	} else if err != nil {
		trace.Point(tr, trace.ScopeFile, "cache_read_failed", err.Error()).WithExtra("path", u.path).Emit()
	}

	parsed := parser.ParseFile(ctx, file, parserOpts)
	parsed.Bag.Sort()
	res.Program = parsed.Program
	res.Bag = parsed.Bag
	res.Stmts = len(parsed.Program.Stmts)
	res.Halted = parsed.Halted

	if p, ok := payloadFromBag(u.path, file, parsed.Bag, res.Stmts, res.Halted); ok {
		if err := opts.Cache.Put(key, p); err != nil {
			trace.Point(tr, trace.ScopeFile, "cache_write_failed", err.Error()).WithExtra("path", u.path).Emit()
		}
	}

	status := StatusDone
	var evErr error
	if parsed.Bag.HasErrors() {
		status = StatusError
		evErr = errors.New(strconv.Itoa(parsed.Bag.ErrorCount()) + " errors")
	}
	span.WithExtra("errors", strconv.Itoa(parsed.Bag.ErrorCount())).End("")
	emit(opts.Progress, Event{Path: u.path, Stage: StageParse, Status: status, Err: evErr, Elapsed: time.Since(started)})
	return res
}
