// Package translate orchestrates batched translation of table columns.
// Columns are processed one at a time and, within a column, batches of at
// most BatchSize values are submitted strictly in order. Each batch runs
// under a bounded retry/backoff loop; a batch answering with fewer results
// than submitted is padded with the original values so column length never
// changes and no row is ever dropped.
package translate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"csvlate/cli/internal/classify"
	"csvlate/cli/internal/deepl"
	apperrors "csvlate/cli/internal/errors"
	"csvlate/cli/internal/table"
)

// BatchSize is the maximum number of cell values submitted per remote call.
const BatchSize = 50

// Retry budget per batch: maxAttempts tries with exponential backoff
// starting at initialBackoff and growing by backoffFactor per attempt.
const (
	maxAttempts   = 5
	backoffFactor = 1.8
)

var initialBackoff = 1500 * time.Millisecond

// Translator is the external translation capability. *deepl.Client
// satisfies it; tests inject fakes.
type Translator interface {
	Translate(ctx context.Context, values []string, target string, markup bool) (deepl.Result, error)
}

// Orchestrator drives batched translation of table columns.
type Orchestrator struct {
	client Translator
	// sleep is swappable so retry/backoff is testable without waiting.
	sleep func(time.Duration)

	// OnBatch, when set, is called after every completed batch of a column.
	OnBatch func(col string, doneBatches, totalBatches int)
}

// New creates an orchestrator over the given translation capability.
func New(client Translator) *Orchestrator {
	return &Orchestrator{
		client: client,
		sleep:  time.Sleep,
	}
}

// Run translates every translate-column of the table in place, in column
// order, accumulating detected-source-language tags into sum. On failure
// the error surfaces immediately; columns already translated keep their
// translations (no rollback across columns).
func (o *Orchestrator) Run(ctx context.Context, t *table.Table, cls classify.Result, target string, sum *Summary) error {
	for _, col := range cls.Translate {
		out, detected, err := o.TranslateColumn(ctx, col, t.Column(col), cls.IsMarkup(col), target)
		if err != nil {
			return err
		}
		t.SetColumn(col, out)
		sum.AddAll(detected)
	}
	return nil
}

// TranslateColumn translates one column's values in contiguous batches.
// The returned slices always have exactly len(values) entries: short batch
// results are padded with the original inputs and empty detection tags.
// col is only used for progress reporting.
func (o *Orchestrator) TranslateColumn(ctx context.Context, col string, values []string, markup bool, target string) ([]string, []string, error) {
	out := make([]string, 0, len(values))
	detected := make([]string, 0, len(values))

	totalBatches := (len(values) + BatchSize - 1) / BatchSize
	for start := 0; start < len(values); start += BatchSize {
		// Coarse cancellation: do not start the next batch.
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		end := start + BatchSize
		if end > len(values) {
			end = len(values)
		}
		batch := values[start:end]

		res, err := o.translateBatch(ctx, batch, target, markup)
		if err != nil {
			return nil, nil, apperrors.Wrap(apperrors.TranslationFailed,
				fmt.Sprintf("column %q rows %d-%d failed after retries", col, start, end-1), err)
		}

		trs, det := reconcile(batch, res)
		out = append(out, trs...)
		detected = append(detected, det...)

		if o.OnBatch != nil {
			o.OnBatch(col, start/BatchSize+1, totalBatches)
		}
	}
	return out, detected, nil
}

// reconcile enforces the per-batch length contract. A short result keeps
// the original input values for the missing tail, with empty detection
// tags; an overlong result is truncated to the batch length.
func reconcile(batch []string, res deepl.Result) ([]string, []string) {
	trs := res.Translations
	det := res.DetectedLang

	if len(trs) > len(batch) {
		trs = trs[:len(batch)]
	}
	for i := len(trs); i < len(batch); i++ {
		trs = append(trs, batch[i])
	}

	if len(det) > len(batch) {
		det = det[:len(batch)]
	}
	for len(det) < len(batch) {
		det = append(det, "")
	}
	return trs, det
}

// translateBatch is the bounded retry state machine for one remote call:
// attempt, back off, attempt again, up to maxAttempts. Transport failures
// and retryable HTTP statuses consume attempts; any other HTTP failure is
// final on the spot.
func (o *Orchestrator) translateBatch(ctx context.Context, batch []string, target string, markup bool) (deepl.Result, error) {
	backoff := initialBackoff
	for attempt := 1; ; attempt++ {
		res, err := o.client.Translate(ctx, batch, target, markup)
		if err == nil {
			return res, nil
		}

		var se *deepl.StatusError
		if errors.As(err, &se) && !se.Retryable() {
			return deepl.Result{}, err
		}
		if attempt == maxAttempts {
			return deepl.Result{}, err
		}

		o.sleep(backoff)
		backoff = time.Duration(float64(backoff) * backoffFactor)
	}
}
