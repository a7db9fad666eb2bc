package dbctx

import (
	"context"
	"sync"

	"gorm.io/gorm"
)

// Context bundles a request context with an optional GORM transaction.
// Repos fall back to their own handle when Tx is nil.
//
// A caller that owns Tx and wants the side effects of the work done inside
// it (event publishes) sets AfterCommit and runs it once Tx has committed.
type Context struct {
	Ctx         context.Context
	Tx          *gorm.DB
	AfterCommit *AfterCommit
}

// WithTx returns a copy of dbc bound to tx.
func (dbc Context) WithTx(tx *gorm.DB) Context {
	return Context{Ctx: dbc.Ctx, Tx: tx, AfterCommit: dbc.AfterCommit}
}

// Context returns the request context, defaulting to Background.
func (dbc Context) Context() context.Context {
	if dbc.Ctx == nil {
		return context.Background()
	}
	return dbc.Ctx
}

// AfterCommit queues work that may only run once the owning transaction has
// committed. The zero value is ready to use.
type AfterCommit struct {
	mu  sync.Mutex
	fns []func(context.Context)
}

func (a *AfterCommit) Add(fn func(context.Context)) {
	if a == nil || fn == nil {
		return
	}
	a.mu.Lock()
	a.fns = append(a.fns, fn)
	a.mu.Unlock()
}

// Run drains the queue in insertion order. Call it after Commit succeeds.
func (a *AfterCommit) Run(ctx context.Context) {
	if a == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	a.mu.Lock()
	fns := a.fns
	a.fns = nil
	a.mu.Unlock()
	for _, fn := range fns {
		fn(ctx)
	}
}

// Discard drops everything queued. Call it after Rollback.
func (a *AfterCommit) Discard() {
	if a == nil {
		return
	}
	a.mu.Lock()
	a.fns = nil
	a.mu.Unlock()
}

func (a *AfterCommit) Len() int {
	if a == nil {
		return 0
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.fns)
}
