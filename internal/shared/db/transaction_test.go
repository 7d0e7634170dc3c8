package db

import (
	"context"
	"testing"
)

func TestAfterCommitRunsImmediatelyOutsideTransaction(t *testing.T) {
	ran := false
	AfterCommit(context.Background(), func() { ran = true })
	if !ran {
		t.Error("AfterCommit() outside a transaction did not run the hook")
	}
}

func TestAfterCommitDefersInsideTransaction(t *testing.T) {
	hooks := &commitHooks{}
	ctx := context.WithValue(context.Background(), hooksKey{}, hooks)

	var order []int
	AfterCommit(ctx, func() { order = append(order, 1) })
	AfterCommit(ctx, func() { order = append(order, 2) })

	if len(order) != 0 {
		t.Fatalf("hooks ran before commit: %v", order)
	}

	hooks.run()
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("hooks after commit = %v, want [1 2]", order)
	}

	// run drains the hooks; a second run must not replay them.
	hooks.run()
	if len(order) != 2 {
		t.Errorf("hooks replayed on second run: %v", order)
	}
}
