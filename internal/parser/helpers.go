package parser

import (
	"slices"
	"strconv"

	"formulang/internal/diag"
	"formulang/internal/source"
	"formulang/internal/token"
	"formulang/internal/trace"
)

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) at(k token.Kind) bool {
	return p.toks[p.pos].Kind == k
}

func (p *Parser) at_or(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.toks[p.pos].Kind)
}

// advance — съедает следующий токен; на EOF стоит на месте
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

// expect — ожидаем конкретный токен. Если нет — репортим и возвращаем (peek,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string, prod production) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.errAtPeek(code, msg, prod)
	return p.peek(), false
}

// production names the grammar rule being parsed and where it started.
type production struct {
	name  string
	start source.Span
}

// errAtPeek репортит ошибку на текущем токене, дописывая " got <token>".
// Invalid уже отрепорчен лексером — второй раз не шумим.
func (p *Parser) errAtPeek(code diag.Code, msg string, prod production) {
	tok := p.peek()
	if tok.Kind == token.Invalid {
		return
	}
	p.report(code, tok.Span, msg+", got "+tok.Describe(), prod)
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string, prod production) {
	if p.halted || p.opts.Enough() {
		return
	}
	p.opts.CurrentErrors++
	b := diag.ReportError(p.rep, code, sp, msg)
	if prod.name != "" {
		b = b.WithNote(prod.start, "while parsing "+prod.name)
	}
	b.Emit()
}

// resyncStatement — panic-mode: выбрасываем токены до ';' включительно или до EOF.
func (p *Parser) resyncStatement() {
	from := p.peek().Span
	skipped := 0
	for !p.at(token.EOF) {
		skipped++
		if p.advance().Kind == token.Semicolon {
			break
		}
	}
	if p.tr.Level().ShouldEmit(trace.ScopeNode) {
		trace.Point(p.tr, trace.ScopeNode, "resync", from.String()).
			WithExtra("skipped", strconv.Itoa(skipped)).Emit()
	}
}

// enter увеличивает глубину вложенности; при превышении лимита
// репортит SYN2300 один раз и останавливает разбор.
func (p *Parser) enter(at source.Span) bool {
	p.depth++
	if p.depth <= p.opts.maxDepth() {
		return true
	}
	if !p.halted {
		diag.ReportError(p.rep, diag.SynNestingTooDeep, at, "expression nesting exceeds the limit of "+strconv.Itoa(p.opts.maxDepth())).Emit()
		p.halted = true
	}
	return false
}

func (p *Parser) leave() {
	p.depth--
}
