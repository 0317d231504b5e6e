package worker

import (
	"context"
	"sort"

	"github.com/pharmtools/pharmaclass/internal/model"
)

// Classifier classifies a single input row. Implemented by
// pipeline.Classifier; an interface here keeps the batch runner
// testable without a reference store.
type Classifier interface {
	Classify(row model.InputRow) model.ClassificationRecord
}

// ClassifyJob classifies one input row.
type ClassifyJob struct {
	Row        model.InputRow
	Classifier Classifier
}

// Execute runs the classification for the job's row.
func (j *ClassifyJob) Execute(ctx context.Context) Result {
	return &ClassifyResult{Record: j.Classifier.Classify(j.Row)}
}

// ClassifyResult wraps one output record.
type ClassifyResult struct {
	Record model.ClassificationRecord
}

// GetError always returns nil: per-row failures are carried in-band on
// the record, never as job errors, so one bad row cannot sink a batch.
func (r *ClassifyResult) GetError() error { return nil }

// BatchRunner classifies rows, optionally in parallel. Output always
// matches input length and order.
type BatchRunner struct {
	classifier Classifier
	workers    int
}

// NewBatchRunner creates a batch runner with the given parallelism.
func NewBatchRunner(classifier Classifier, workers int) *BatchRunner {
	if workers <= 0 {
		workers = 1
	}
	return &BatchRunner{classifier: classifier, workers: workers}
}

// Run classifies every row. With one worker rows are processed in
// place; with several the pool runs them concurrently and the results
// are re-sorted into input order afterwards. Cancelling ctx stops the
// run early; the returned records then cover only the rows classified
// before cancellation.
func (b *BatchRunner) Run(ctx context.Context, rows []model.InputRow) []model.ClassificationRecord {
	if len(rows) == 0 {
		return []model.ClassificationRecord{}
	}

	if b.workers == 1 {
		records := make([]model.ClassificationRecord, 0, len(rows))
		for _, row := range rows {
			if ctx.Err() != nil {
				break
			}
			records = append(records, b.classifier.Classify(row))
		}
		return records
	}

	// Queue capacity covers the whole batch: every row is submitted
	// before results are drained.
	pool := NewPoolQueue(ctx, b.workers, len(rows))
	pool.Start()

	for _, row := range rows {
		pool.Submit(&ClassifyJob{Row: row, Classifier: b.classifier})
	}

	results := pool.Wait()

	records := make([]model.ClassificationRecord, 0, len(results))
	for _, result := range results {
		records = append(records, result.(*ClassifyResult).Record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Row < records[j].Row
	})

	return records
}
