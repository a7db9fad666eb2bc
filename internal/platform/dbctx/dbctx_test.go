package dbctx

import (
	"context"
	"testing"
)

func TestAfterCommitRunsInOrderAndDrains(t *testing.T) {
	var a AfterCommit
	var got []int
	for i := 1; i <= 3; i++ {
		i := i
		a.Add(func(context.Context) { got = append(got, i) })
	}
	if a.Len() != 3 {
		t.Fatalf("expected 3 queued, got %d", a.Len())
	}
	a.Run(context.Background())
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("unexpected run order: %v", got)
	}
	a.Run(context.Background())
	if len(got) != 3 {
		t.Fatalf("second run should be empty, got %v", got)
	}
}

func TestAfterCommitDiscard(t *testing.T) {
	var a AfterCommit
	ran := false
	a.Add(func(context.Context) { ran = true })
	a.Discard()
	a.Run(context.Background())
	if ran {
		t.Fatalf("discarded work ran")
	}
}

func TestWithTxKeepsAfterCommit(t *testing.T) {
	a := &AfterCommit{}
	dbc := Context{Ctx: context.Background(), AfterCommit: a}
	if got := dbc.WithTx(nil).AfterCommit; got != a {
		t.Fatalf("WithTx dropped the after-commit queue")
	}

	var nilQueue *AfterCommit
	nilQueue.Add(func(context.Context) {})
	nilQueue.Run(context.Background())
	if nilQueue.Len() != 0 {
		t.Fatalf("nil queue should stay empty")
	}
}
