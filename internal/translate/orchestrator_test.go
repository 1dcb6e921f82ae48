package translate

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"csvlate/cli/internal/classify"
	"csvlate/cli/internal/deepl"
	apperrors "csvlate/cli/internal/errors"
	"csvlate/cli/internal/table"
)

// fakeTranslator scripts per-call behavior for the orchestrator.
type fakeTranslator struct {
	calls   int
	batches [][]string
	handle  func(call int, values []string) (deepl.Result, error)
}

func (f *fakeTranslator) Translate(_ context.Context, values []string, target string, markup bool) (deepl.Result, error) {
	f.calls++
	batch := make([]string, len(values))
	copy(batch, values)
	f.batches = append(f.batches, batch)
	return f.handle(f.calls, values)
}

// echo translates every value to "t:"+value with detected language EN.
func echo(_ int, values []string) (deepl.Result, error) {
	res := deepl.Result{}
	for _, v := range values {
		res.Translations = append(res.Translations, "t:"+v)
		res.DetectedLang = append(res.DetectedLang, "EN")
	}
	return res, nil
}

func newTestOrchestrator(f *fakeTranslator) (*Orchestrator, *[]time.Duration) {
	o := New(f)
	var slept []time.Duration
	o.sleep = func(d time.Duration) { slept = append(slept, d) }
	return o, &slept
}

func values(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("v%d", i)
	}
	return out
}

func TestTranslateColumnBatching(t *testing.T) {
	f := &fakeTranslator{handle: echo}
	o, _ := newTestOrchestrator(f)

	out, detected, err := o.TranslateColumn(context.Background(), "Name", values(120), false, "HU")
	if err != nil {
		t.Fatalf("TranslateColumn() error = %v", err)
	}

	if len(out) != 120 || len(detected) != 120 {
		t.Fatalf("lengths = %d/%d, want 120/120", len(out), len(detected))
	}
	if f.calls != 3 {
		t.Errorf("calls = %d, want 3 (50+50+20)", f.calls)
	}
	if len(f.batches[0]) != 50 || len(f.batches[1]) != 50 || len(f.batches[2]) != 20 {
		t.Errorf("batch sizes = %d/%d/%d", len(f.batches[0]), len(f.batches[1]), len(f.batches[2]))
	}
	// Order preserved across batch boundaries.
	if out[0] != "t:v0" || out[49] != "t:v49" || out[50] != "t:v50" || out[119] != "t:v119" {
		t.Errorf("ordering broken: %q %q %q %q", out[0], out[49], out[50], out[119])
	}
}

func TestTranslateColumnPadsShortBatch(t *testing.T) {
	f := &fakeTranslator{handle: func(call int, vals []string) (deepl.Result, error) {
		res, _ := echo(call, vals)
		// Drop the last two results of the batch.
		res.Translations = res.Translations[:len(vals)-2]
		res.DetectedLang = res.DetectedLang[:len(vals)-2]
		return res, nil
	}}
	o, _ := newTestOrchestrator(f)

	in := values(50)
	out, detected, err := o.TranslateColumn(context.Background(), "Name", in, false, "HU")
	if err != nil {
		t.Fatalf("TranslateColumn() error = %v", err)
	}

	if len(out) != 50 || len(detected) != 50 {
		t.Fatalf("lengths = %d/%d, want 50/50", len(out), len(detected))
	}
	if out[47] != "t:v47" {
		t.Errorf("out[47] = %q, want translated", out[47])
	}
	// Positions 48-49 keep the untranslated originals, with empty tags.
	if out[48] != "v48" || out[49] != "v49" {
		t.Errorf("padded tail = %q/%q, want originals", out[48], out[49])
	}
	if detected[48] != "" || detected[49] != "" {
		t.Errorf("padded detection tags = %q/%q, want empty", detected[48], detected[49])
	}
}

func TestTranslateColumnLengthInvariant(t *testing.T) {
	tests := []struct {
		name      string
		inputLen  int
		resultLen func(batchLen int) int
		wantCalls int
	}{
		{name: "empty column", inputLen: 0, resultLen: func(n int) int { return n }, wantCalls: 0},
		{name: "exact batch", inputLen: 50, resultLen: func(n int) int { return n }, wantCalls: 1},
		{name: "provider returns nothing", inputLen: 10, resultLen: func(n int) int { return 0 }, wantCalls: 1},
		{name: "provider returns extra", inputLen: 10, resultLen: func(n int) int { return n + 3 }, wantCalls: 1},
		{name: "two short batches", inputLen: 70, resultLen: func(n int) int { return n - 1 }, wantCalls: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeTranslator{handle: func(call int, vals []string) (deepl.Result, error) {
				n := tt.resultLen(len(vals))
				res := deepl.Result{}
				for i := 0; i < n; i++ {
					res.Translations = append(res.Translations, "x")
					res.DetectedLang = append(res.DetectedLang, "DE")
				}
				return res, nil
			}}
			o, _ := newTestOrchestrator(f)

			out, detected, err := o.TranslateColumn(context.Background(), "c", values(tt.inputLen), false, "HU")
			if err != nil {
				t.Fatalf("TranslateColumn() error = %v", err)
			}
			if len(out) != tt.inputLen || len(detected) != tt.inputLen {
				t.Errorf("lengths = %d/%d, want %d", len(out), len(detected), tt.inputLen)
			}
			if f.calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", f.calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryBackoffCurve(t *testing.T) {
	transportErr := errors.New("connection reset")
	f := &fakeTranslator{handle: func(call int, vals []string) (deepl.Result, error) {
		return deepl.Result{}, transportErr
	}}
	o, slept := newTestOrchestrator(f)

	_, _, err := o.TranslateColumn(context.Background(), "Name", values(1), false, "HU")
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if !apperrors.HasKind(err, apperrors.TranslationFailed) {
		t.Errorf("error kind = %v, want translation_failed", err)
	}
	if !errors.Is(err, transportErr) {
		t.Errorf("underlying error lost: %v", err)
	}

	if f.calls != 5 {
		t.Errorf("attempts = %d, want 5", f.calls)
	}
	// Four sleeps between five attempts: 1.5s, then x1.8 each.
	want := []time.Duration{
		1500 * time.Millisecond,
		2700 * time.Millisecond,
		4860 * time.Millisecond,
		8748 * time.Millisecond,
	}
	if len(*slept) != len(want) {
		t.Fatalf("sleeps = %v, want %v", *slept, want)
	}
	for i, d := range want {
		if (*slept)[i] != d {
			t.Errorf("sleep %d = %v, want %v", i, (*slept)[i], d)
		}
	}
}

func TestRetrySucceedsMidBudget(t *testing.T) {
	f := &fakeTranslator{handle: func(call int, vals []string) (deepl.Result, error) {
		if call < 3 {
			return deepl.Result{}, &deepl.StatusError{Code: 503}
		}
		return echo(call, vals)
	}}
	o, slept := newTestOrchestrator(f)

	out, _, err := o.TranslateColumn(context.Background(), "Name", values(2), false, "HU")
	if err != nil {
		t.Fatalf("TranslateColumn() error = %v", err)
	}
	if f.calls != 3 {
		t.Errorf("attempts = %d, want 3", f.calls)
	}
	if len(*slept) != 2 {
		t.Errorf("sleeps = %d, want 2", len(*slept))
	}
	if out[0] != "t:v0" {
		t.Errorf("out[0] = %q", out[0])
	}
}

func TestNonRetryableStatusFailsImmediately(t *testing.T) {
	f := &fakeTranslator{handle: func(call int, vals []string) (deepl.Result, error) {
		return deepl.Result{}, &deepl.StatusError{Code: 403, Body: "invalid auth key"}
	}}
	o, slept := newTestOrchestrator(f)

	_, _, err := o.TranslateColumn(context.Background(), "Name", values(1), false, "HU")
	if err == nil {
		t.Fatal("expected error")
	}
	if f.calls != 1 {
		t.Errorf("attempts = %d, want 1 (no retries for auth failures)", f.calls)
	}
	if len(*slept) != 0 {
		t.Errorf("slept %v, want no backoff", *slept)
	}
}

func TestRunTranslatesTableInPlace(t *testing.T) {
	tab := &table.Table{
		Columns: []string{"Name", "SKU", "Description"},
		Rows: []table.Row{
			{"Name": "Soap", "SKU": "S-1", "Description": "<p>mild</p>"},
			{"Name": "Shampoo", "SKU": "S-2", "Description": "<p>fresh</p>"},
		},
	}
	cls := classify.Classify(tab, false, nil)

	markupByCol := map[string]bool{}
	f := &fakeTranslator{handle: echo}
	o := New(&markupRecorder{inner: f, seen: markupByCol})
	o.sleep = func(time.Duration) {}

	sum := NewSummary()
	if err := o.Run(context.Background(), tab, cls, "HU", sum); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := tab.Rows[0]["Name"]; got != "t:Soap" {
		t.Errorf("Name cell = %q", got)
	}
	if got := tab.Rows[1]["Description"]; got != "t:<p>fresh</p>" {
		t.Errorf("Description cell = %q", got)
	}
	// Skip columns pass through untouched.
	if got := tab.Rows[0]["SKU"]; got != "S-1" {
		t.Errorf("SKU cell = %q, want untouched", got)
	}
	// Markup flag forwarded per column.
	if markupByCol["Name"] || !markupByCol["Description"] {
		t.Errorf("markup flags = %v", markupByCol)
	}
	// Four cells translated, all tagged EN.
	if sum.Total() != 4 || sum.Counts()["EN"] != 4 {
		t.Errorf("summary = %v", sum.Counts())
	}
}

// markupRecorder records the markup flag per batch by column content.
type markupRecorder struct {
	inner   *fakeTranslator
	seen    map[string]bool
	current string
}

func (m *markupRecorder) Translate(ctx context.Context, values []string, target string, markup bool) (deepl.Result, error) {
	switch values[0] {
	case "Soap":
		m.seen["Name"] = markup
	case "<p>mild</p>":
		m.seen["Description"] = markup
	}
	return m.inner.Translate(ctx, values, target, markup)
}

func TestRunAbortsOnFatalBatch(t *testing.T) {
	tab := &table.Table{
		Columns: []string{"Name", "Description"},
		Rows: []table.Row{
			{"Name": "Soap", "Description": "mild"},
		},
	}
	cls := classify.Classify(tab, false, nil)

	f := &fakeTranslator{handle: func(call int, vals []string) (deepl.Result, error) {
		if call == 1 {
			return echo(call, vals)
		}
		return deepl.Result{}, &deepl.StatusError{Code: 400}
	}}
	o, _ := newTestOrchestrator(f)

	err := o.Run(context.Background(), tab, cls, "HU", NewSummary())
	if err == nil {
		t.Fatal("expected error")
	}
	// The first column completed before the fatal batch and stays translated.
	if got := tab.Rows[0]["Name"]; got != "t:Soap" {
		t.Errorf("Name cell = %q, want completed translation kept", got)
	}
	if got := tab.Rows[0]["Description"]; got != "mild" {
		t.Errorf("Description cell = %q, want original", got)
	}
}

func TestTranslateColumnCancelledContext(t *testing.T) {
	f := &fakeTranslator{handle: echo}
	o, _ := newTestOrchestrator(f)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := o.TranslateColumn(ctx, "Name", values(10), false, "HU")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if f.calls != 0 {
		t.Errorf("calls = %d, want 0 after cancellation", f.calls)
	}
}

func TestSummary(t *testing.T) {
	s := NewSummary()
	s.AddAll([]string{"EN", "EN", "DE", "", "EN"})

	if s.Total() != 4 {
		t.Errorf("Total() = %d, want 4 (empty tags uncounted)", s.Total())
	}
	if s.Top() != "EN" {
		t.Errorf("Top() = %q, want EN", s.Top())
	}

	other := NewSummary()
	other.AddAll([]string{"DE", "DE", "DE"})
	s.Merge(other)

	if s.Counts()["DE"] != 4 || s.Total() != 7 {
		t.Errorf("after merge: %v", s.Counts())
	}
	if s.Top() != "DE" {
		t.Errorf("Top() after merge = %q, want DE", s.Top())
	}
}

func TestEstimate(t *testing.T) {
	tab := &table.Table{
		Columns: []string{"Name", "Description"},
		Rows: []table.Row{
			{"Name": "Soap", "Description": "mild"},
			{"Name": "Sző", "Description": ""},
		},
	}
	est, total := Estimate(tab, []string{"Name", "Description"})

	if len(est) != 2 {
		t.Fatalf("len(est) = %d", len(est))
	}
	// "Soap" + "Sző" = 4 + 3 runes, multibyte counted once.
	if est[0].Chars != 7 {
		t.Errorf("Name chars = %d, want 7", est[0].Chars)
	}
	if est[1].Chars != 4 {
		t.Errorf("Description chars = %d, want 4", est[1].Chars)
	}
	if total != 11 {
		t.Errorf("total = %d, want 11", total)
	}
}
