package fuzztests

import (
	"testing"

	"formulang/internal/diag"
	"formulang/internal/lexer"
	"formulang/internal/source"
	"formulang/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.rule", input))

		bag := diag.NewBag(64)
		toks := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

		// ровно один EOF, последним; лексемы и trivia покрывают вход без пропусков
		var rebuilt []byte
		var prevEnd uint32
		for i, tok := range toks {
			if (tok.Kind == token.EOF) != (i == len(toks)-1) {
				t.Fatalf("EOF at %d of %d", i, len(toks))
			}
			for _, tr := range tok.Leading {
				if tr.Span.Start != prevEnd {
					t.Fatalf("gap before trivia at %d (prev end %d)", tr.Span.Start, prevEnd)
				}
				rebuilt = append(rebuilt, tr.Text...)
				prevEnd = tr.Span.End
			}
			if tok.Span.Start != prevEnd {
				t.Fatalf("gap before token %s at %d (prev end %d)", tok.Kind, tok.Span.Start, prevEnd)
			}
			rebuilt = append(rebuilt, tok.Text...)
			prevEnd = tok.Span.End
		}
		if string(rebuilt) != string(file.Content) {
			t.Fatalf("tokens do not rebuild the input")
		}
	})
}
