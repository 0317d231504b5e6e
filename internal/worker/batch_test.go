package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pharmtools/pharmaclass/internal/model"
)

// echoClassifier returns a record naming the input row; no store needed.
type echoClassifier struct{}

func (echoClassifier) Classify(row model.InputRow) model.ClassificationRecord {
	return model.ClassificationRecord{
		Row:              row.Row,
		Input:            row,
		TargetID:         fmt.Sprintf("T%d", row.Row),
		Matched:          true,
		ResolutionMethod: model.MethodUniProt,
	}
}

func makeRows(n int) []model.InputRow {
	rows := make([]model.InputRow, n)
	for i := range rows {
		rows[i] = model.InputRow{Row: i + 1, UniProtID: fmt.Sprintf("P%05d", i)}
	}
	return rows
}

func TestBatchRunner_RowParity(t *testing.T) {
	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			runner := NewBatchRunner(echoClassifier{}, workers)
			rows := makeRows(25)

			records := runner.Run(context.Background(), rows)

			if len(records) != len(rows) {
				t.Fatalf("expected %d records, got %d", len(rows), len(records))
			}
		})
	}
}

func TestBatchRunner_PreservesInputOrder(t *testing.T) {
	runner := NewBatchRunner(echoClassifier{}, 8)
	rows := makeRows(100)

	records := runner.Run(context.Background(), rows)

	for i, rec := range records {
		if rec.Row != i+1 {
			t.Fatalf("record %d out of order: got row %d", i, rec.Row)
		}
		if rec.TargetID != fmt.Sprintf("T%d", i+1) {
			t.Errorf("record %d: unexpected target id %s", i, rec.TargetID)
		}
	}
}

// stallingClassifier blocks every row until the context is cancelled.
type stallingClassifier struct {
	ctx     context.Context
	started chan struct{}
}

func (s stallingClassifier) Classify(row model.InputRow) model.ClassificationRecord {
	select {
	case s.started <- struct{}{}:
	default:
	}
	<-s.ctx.Done()
	return model.ClassificationRecord{Row: row.Row}
}

func TestBatchRunner_ContextCancellationStopsRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	classifier := stallingClassifier{ctx: ctx, started: make(chan struct{}, 1)}
	runner := NewBatchRunner(classifier, 2)
	rows := makeRows(50)

	done := make(chan []model.ClassificationRecord, 1)
	go func() {
		done <- runner.Run(ctx, rows)
	}()

	<-classifier.started
	cancel()

	select {
	case records := <-done:
		if len(records) >= len(rows) {
			t.Errorf("expected a partial batch after cancellation, got %d of %d", len(records), len(rows))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestBatchRunner_SequentialHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewBatchRunner(echoClassifier{}, 1)
	records := runner.Run(ctx, makeRows(10))

	if len(records) != 0 {
		t.Errorf("expected no records for a cancelled context, got %d", len(records))
	}
}

func TestBatchRunner_EmptyInput(t *testing.T) {
	runner := NewBatchRunner(echoClassifier{}, 4)

	records := runner.Run(context.Background(), nil)

	if len(records) != 0 {
		t.Errorf("expected no records for empty input, got %d", len(records))
	}
}
