package driver

import (
	"context"

	"formulang/internal/ast"
	"formulang/internal/diag"
	"formulang/internal/parser"
	"formulang/internal/source"
	"formulang/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Program *ast.Program
	Bag     *diag.Bag
	Halted  bool
}

// Parse loads filePath and parses it.
func Parse(ctx context.Context, filePath string, cfg Config) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	return parseLoaded(ctx, fs, fs.Get(fileID), cfg)
}

// ParseSource parses text held in memory; name is used in diagnostics.
func ParseSource(ctx context.Context, name, text string, cfg Config) (*ParseResult, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(text))
	return parseLoaded(ctx, fs, fs.Get(id), cfg)
}

func parseLoaded(ctx context.Context, fs *source.FileSet, file *source.File, cfg Config) (*ParseResult, error) {
	opts, err := cfg.parserOptions()
	if err != nil {
		return nil, err
	}

	ctx, span := trace.Start(ctx, trace.ScopeFile, file.Path)
	res := parser.ParseFile(ctx, file, opts)
	span.End("")

	res.Bag.Sort()
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Program: res.Program,
		Bag:     res.Bag,
		Halted:  res.Halted,
	}, nil
}
