package user

import (
	"context"
	"testing"

	"github.com/yungbote/servicehub-backend/internal/data/repos/testutil"
	types "github.com/yungbote/servicehub-backend/internal/domain"
	"github.com/yungbote/servicehub-backend/internal/platform/dbctx"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	created, err := repo.Create(dbc, []*types.User{
		{Name: "Ada", Email: "userrepo@example.com", Role: "USER"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 || created[0].ID == 0 {
		t.Fatalf("Create: unexpected result: %+v", created)
	}

	got, err := repo.GetByIDs(dbc, []int64{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Ada" {
		t.Fatalf("GetByIDs: unexpected result: %+v", got)
	}

	if err := repo.FullDeleteByIDs(dbc, []int64{created[0].ID}); err != nil {
		t.Fatalf("FullDeleteByIDs: %v", err)
	}
	if got, err := repo.GetByIDs(dbc, []int64{created[0].ID}); err != nil || len(got) != 0 {
		t.Fatalf("after FullDeleteByIDs: err=%v len=%d", err, len(got))
	}
}
