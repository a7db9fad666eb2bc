package marketplace

import (
	"context"
	"testing"

	"github.com/yungbote/servicehub-backend/internal/data/repos/testutil"
	types "github.com/yungbote/servicehub-backend/internal/domain"
	"github.com/yungbote/servicehub-backend/internal/platform/dbctx"
)

func TestServiceRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewServiceRepo(db, testutil.Logger(t))

	p := testutil.SeedProvider(t, ctx, tx, "Pat Provider")
	created, err := repo.Create(dbc, []*types.Service{{
		ProviderID: p.ID,
		Title:      "Deep clean",
		Price:      80,
	}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	s := created[0]
	if s.ID == 0 {
		t.Fatalf("Create: expected generated id")
	}
	if s.Rating != 0 || s.ReviewCount != 0 {
		t.Fatalf("Create: expected zero aggregate, got %+v", s)
	}

	got, err := repo.GetByID(dbc, s.ID)
	if err != nil || got == nil || got.Title != "Deep clean" {
		t.Fatalf("GetByID: err=%v got=%+v", err, got)
	}
	if missing, err := repo.GetByID(dbc, s.ID+1000); err != nil || missing != nil {
		t.Fatalf("GetByID missing: err=%v got=%+v", err, missing)
	}
	if rows, err := repo.GetByProviderIDs(dbc, []int64{p.ID}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByProviderIDs: err=%v len=%d", err, len(rows))
	}
	if ids, err := repo.ListIDs(dbc); err != nil || len(ids) == 0 {
		t.Fatalf("ListIDs: err=%v ids=%v", err, ids)
	}

	locked, err := repo.LockByID(dbc, s.ID)
	if err != nil || locked == nil || locked.ID != s.ID {
		t.Fatalf("LockByID: err=%v got=%+v", err, locked)
	}

	if err := repo.UpdateListing(dbc, s.ID, map[string]interface{}{
		"title":        "Deeper clean",
		"rating":       4.9,
		"review_count": 99,
	}); err != nil {
		t.Fatalf("UpdateListing: %v", err)
	}
	got, _ = repo.GetByID(dbc, s.ID)
	if got.Title != "Deeper clean" {
		t.Fatalf("UpdateListing: title not written: %q", got.Title)
	}
	if got.Rating != 0 || got.ReviewCount != 0 {
		t.Fatalf("UpdateListing: derived fields must be untouched, got %+v", got)
	}

	if err := repo.UpdateAggregate(dbc, s.ID, types.RatingAggregate{Rating: 4.5, ReviewCount: 2}); err != nil {
		t.Fatalf("UpdateAggregate: %v", err)
	}
	got, _ = repo.GetByID(dbc, s.ID)
	if got.Rating != 4.5 || got.ReviewCount != 2 {
		t.Fatalf("UpdateAggregate: got %+v", got)
	}

	if err := repo.FullDeleteByIDs(dbc, []int64{s.ID}); err != nil {
		t.Fatalf("FullDeleteByIDs: %v", err)
	}
	if rows, err := repo.GetByIDs(dbc, []int64{s.ID}); err != nil || len(rows) != 0 {
		t.Fatalf("after FullDeleteByIDs GetByIDs: err=%v len=%d", err, len(rows))
	}
}
