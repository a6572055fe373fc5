package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerSummary(t *testing.T) {
	tm := NewTimer()
	done := tm.Track("lex")
	done("12 tokens")
	idx := tm.Begin("parse")
	tm.End(idx, "")
	tm.End(42, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 2 || rep.Phases[0].Note != "12 tokens" {
		t.Fatalf("unexpected report %+v", rep)
	}
	sum := tm.Summary()
	for _, want := range []string{"timings:", "lex", "// 12 tokens", "parse", "wall"} {
		if !strings.Contains(sum, want) {
			t.Errorf("summary lacks %q:\n%s", want, sum)
		}
	}
}

func TestTimerConcurrentUse(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Track("file")("")
		}()
	}
	wg.Wait()
	rep := tm.Report()
	if len(rep.Phases) != 1 || rep.Phases[0].Count != 16 {
		t.Fatalf("expected one group of 16 phases, got %+v", rep.Phases)
	}
	if !strings.Contains(tm.Summary(), "file ×16") {
		t.Fatalf("summary:\n%s", tm.Summary())
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Track("x")("")
	if len(tm.Report().Phases) != 0 {
		t.Fatal("nil timer records nothing")
	}
}

func TestTimerTotalIsWallTime(t *testing.T) {
	tm := NewTimer()
	start := time.Now()
	tm.mu.Lock()
	tm.phases = []Phase{
		{Name: "a", Start: start, Dur: 10 * time.Millisecond},
		{Name: "b", Start: start.Add(2 * time.Millisecond), Dur: 10 * time.Millisecond},
	}
	tm.mu.Unlock()
	rep := tm.Report()
	if rep.TotalMS != 12 {
		t.Fatalf("total = %v ms, want 12 (overlapping phases)", rep.TotalMS)
	}
}
