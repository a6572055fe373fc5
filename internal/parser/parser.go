package parser

import (
	"context"
	"strconv"

	"formulang/internal/ast"
	"formulang/internal/diag"
	"formulang/internal/lexer"
	"formulang/internal/source"
	"formulang/internal/token"
	"formulang/internal/trace"
)

// DefaultMaxDepth bounds expression nesting when Options.MaxDepth is zero.
const DefaultMaxDepth = 256

type Options struct {
	MaxErrors        uint // 0 — без лимита
	MaxDepth         int  // 0 — DefaultMaxDepth
	StrictSemicolons bool // требовать ';' и после последнего оператора
	Reporter         diag.Reporter
	CurrentErrors    uint
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

func (o *Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

type Result struct {
	Program *ast.Program
	Bag     *diag.Bag
	// Halted is set when parsing stopped early because nesting exceeded MaxDepth.
	Halted bool
}

// Parser — состояние парсера на один поток токенов
type Parser struct {
	toks   []token.Token
	pos    int
	opts   Options
	rep    diag.Reporter
	depth  int
	halted bool
	tr     trace.Tracer
}

// ParseFile lexes and parses a whole file. Lexer diagnostics land in the
// same bag as the parser's.
func ParseFile(ctx context.Context, file *source.File, opts Options) Result {
	bag := diag.NewBag(int(opts.MaxErrors))
	rep := reporterFor(bag, opts.Reporter)

	_, span := trace.Start(ctx, trace.ScopePass, "lex")
	toks := lexer.Tokenize(file, lexer.Options{Reporter: rep})
	span.WithExtra("tokens", strconv.Itoa(len(toks))).End("")

	opts.CurrentErrors = uint(bag.ErrorCount())
	return parse(ctx, toks, opts, bag)
}

// Parse builds a Program from tokens produced by the lexer. The slice is
// expected to end with EOF; a missing EOF is synthesised.
func Parse(ctx context.Context, toks []token.Token, opts Options) Result {
	return parse(ctx, toks, opts, diag.NewBag(int(opts.MaxErrors)))
}

func parse(ctx context.Context, toks []token.Token, opts Options, bag *diag.Bag) Result {
	ctx, span := trace.Start(ctx, trace.ScopePass, "parse")

	p := Parser{
		toks: ensureEOF(toks),
		opts: opts,
		rep:  reporterFor(bag, opts.Reporter),
		tr:   trace.FromContext(ctx),
	}
	prog := p.parseProgram()

	span.WithExtra("stmts", strconv.Itoa(len(prog.Stmts))).
		WithExtra("errors", strconv.Itoa(bag.ErrorCount()))
	detail := ""
	if p.halted {
		detail = "halted"
	}
	span.End(detail)

	return Result{Program: prog, Bag: bag, Halted: p.halted}
}

func reporterFor(bag *diag.Bag, extra diag.Reporter) diag.Reporter {
	if extra == nil {
		return diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	}
	return diag.NewDedupReporter(diag.MultiReporter{diag.BagReporter{Bag: bag}, extra})
}

func ensureEOF(toks []token.Token) []token.Token {
	if n := len(toks); n > 0 && toks[n-1].Kind == token.EOF {
		return toks
	}
	var sp source.Span
	if n := len(toks); n > 0 {
		last := toks[n-1].Span
		sp = source.Span{File: last.File, Start: last.End, End: last.End}
	}
	out := make([]token.Token, len(toks), len(toks)+1)
	copy(out, toks)
	return append(out, token.Token{Kind: token.EOF, Span: sp})
}

// parseProgram — основной цикл верхнего уровня: пока не EOF — parseStatement.
func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{Stmts: make([]ast.Stmt, 0, 4)}
	first := p.peek().Span
	for !p.at(token.EOF) && !p.halted {
		if st, ok := p.parseStatement(); ok {
			prog.Stmts = append(prog.Stmts, st)
		}
	}
	prog.Loc = first
	if len(prog.Stmts) > 0 {
		prog.Loc = prog.Stmts[0].Span().Cover(prog.Stmts[len(prog.Stmts)-1].Span())
	}
	return prog
}
