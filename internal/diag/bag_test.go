package diag

import (
	"testing"

	"formulang/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		b.Add(NewError(SynUnexpectedToken, source.Span{Start: uint32(i), End: uint32(i + 1)}, "x"))
	}
	if b.Len() != 2 || !b.Full() {
		t.Fatalf("expected bag to stop at 2, got %d", b.Len())
	}

	unlimited := NewBag(0)
	for i := 0; i < 100; i++ {
		if !unlimited.Add(NewError(SynUnexpectedToken, source.Span{}, "x")) {
			t.Fatalf("unlimited bag rejected diagnostic %d", i)
		}
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	b.Add(NewError(SynExpectSemicolon, source.Span{Start: 5, End: 6}, "b"))
	b.Add(New(SevWarning, LexBadNumber, source.Span{Start: 0, End: 2}, "w"))
	b.Add(NewError(LexBadNumber, source.Span{Start: 0, End: 2}, "e"))
	b.Add(NewError(SynExpectSemicolon, source.Span{Start: 5, End: 6}, "dup"))

	b.Sort()
	got := b.Items()
	if got[0].Severity != SevError || got[1].Severity != SevWarning {
		t.Fatalf("errors must sort before warnings at the same span: %+v", got)
	}

	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("expected 2 after dedup, got %d", b.Len())
	}
	if b.ErrorCount() != 2 || !b.HasErrors() {
		t.Fatalf("unexpected error count %d", b.ErrorCount())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	rep := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 1, End: 2}

	rb := ReportError(rep, SynUnclosedParen, sp, "expected ')'").
		WithNote(source.Span{Start: 0, End: 1}, "'(' opened here")
	rb.Emit()
	rb.Emit()
	ReportError(rep, SynUnclosedParen, sp, "expected ')'").Emit()

	if bag.Len() != 1 {
		t.Fatalf("expected a single diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || d.Notes[0].Msg != "'(' opened here" {
		t.Fatalf("note lost: %+v", d.Notes)
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:     "LEX1001",
		SynExpectSemicolon: "SYN2012",
		SynNestingTooDeep:  "SYN2300",
		IOLoadFileError:    "IO4001",
		UnknownCode:        "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
}

func TestCodeRanges(t *testing.T) {
	if !LexUnterminatedString.IsLexical() || LexUnterminatedString.IsSyntax() {
		t.Fatalf("LEX code classified wrong")
	}
	if !SynChainedComparison.IsSyntax() || SynChainedComparison.IsLexical() {
		t.Fatalf("SYN code classified wrong")
	}
	if IORuleSetInvalid.IsLexical() || IORuleSetInvalid.IsSyntax() {
		t.Fatalf("IO code classified as lexer/parser")
	}
}

func TestSeverityString(t *testing.T) {
	for sev, want := range map[Severity]string{SevInfo: "INFO", SevWarning: "WARNING", SevError: "ERROR", Severity(9): "UNKNOWN"} {
		if got := sev.String(); got != want {
			t.Errorf("Severity(%d) = %q, want %q", sev, got, want)
		}
	}
}
