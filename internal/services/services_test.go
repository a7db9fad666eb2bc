package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/servicehub-backend/internal/data/repos"
	"github.com/yungbote/servicehub-backend/internal/data/repos/testutil"
	"github.com/yungbote/servicehub-backend/internal/platform/dbctx"
	"github.com/yungbote/servicehub-backend/internal/realtime/bus"
)

type fixture struct {
	db       *gorm.DB
	tx       *gorm.DB
	dbc      dbctx.Context
	events   *bus.Memory
	users    repos.UserRepo
	svcRepo  repos.ServiceRepo
	bookings BookingService
	ratings  RatingService
	catalog  CatalogService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	userRepo := repos.NewUserRepo(db, log)
	serviceRepo := repos.NewServiceRepo(db, log)
	bookingRepo := repos.NewBookingRepo(db, log)
	reviewRepo := repos.NewReviewRepo(db, log)
	events := bus.NewMemory()

	return &fixture{
		db:       db,
		tx:       tx,
		dbc:      dbctx.Context{Ctx: context.Background(), Tx: tx, AfterCommit: &dbctx.AfterCommit{}},
		events:   events,
		users:    userRepo,
		svcRepo:  serviceRepo,
		bookings: NewBookingService(db, log, bookingRepo, serviceRepo, userRepo, events),
		ratings:  NewRatingService(db, log, reviewRepo, serviceRepo, userRepo, events),
		catalog:  NewCatalogService(db, log, serviceRepo, userRepo),
	}
}

// commit flushes the publishes queued against the fixture's transaction, as
// a caller would after a successful Commit.
func (f *fixture) commit() {
	f.dbc.AfterCommit.Run(f.dbc.Ctx)
}
