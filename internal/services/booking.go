package services

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/yungbote/servicehub-backend/internal/data/repos"
	types "github.com/yungbote/servicehub-backend/internal/domain"
	perr "github.com/yungbote/servicehub-backend/internal/pkg/errors"
	"github.com/yungbote/servicehub-backend/internal/platform/dbctx"
	"github.com/yungbote/servicehub-backend/internal/platform/logger"
	"github.com/yungbote/servicehub-backend/internal/realtime"
	"github.com/yungbote/servicehub-backend/internal/realtime/bus"
)

type BookingService interface {
	Create(dbc dbctx.Context, serviceID, userID int64, bookingDate string) (*types.Booking, error)
	UpdateStatus(dbc dbctx.Context, bookingID int64, status string) (*BookingView, error)
	ListByUser(dbc dbctx.Context, userID int64) ([]BookingView, error)
	ListByProvider(dbc dbctx.Context, providerID int64) ([]BookingView, error)
}

type bookingService struct {
	db          *gorm.DB
	log         *logger.Logger
	bookingRepo repos.BookingRepo
	rel         relations
	events      bus.Bus
}

func NewBookingService(db *gorm.DB, baseLog *logger.Logger, bookingRepo repos.BookingRepo, serviceRepo repos.ServiceRepo, userRepo repos.UserRepo, events bus.Bus) BookingService {
	serviceLog := baseLog.With("service", "BookingService")
	if events == nil {
		events = bus.Nop{}
	}
	return &bookingService{
		db:          db,
		log:         serviceLog,
		bookingRepo: bookingRepo,
		rel:         relations{log: serviceLog, services: serviceRepo, users: userRepo},
		events:      events,
	}
}

// Create inserts a Pending booking. Whether the service and user exist is
// left to the store; a dangling reference surfaces as a storage error.
func (s *bookingService) Create(dbc dbctx.Context, serviceID, userID int64, bookingDate string) (_ *types.Booking, err error) {
	ctx, span := startSpan(dbc.Context(), "BookingService.Create",
		attribute.Int64("service.id", serviceID))
	defer func() { endSpan(span, err) }()
	dbc.Ctx = ctx

	booking := &types.Booking{
		ServiceID:   serviceID,
		UserID:      userID,
		BookingDate: bookingDate,
		Status:      string(types.BookingPending),
	}
	err = inTx(s.db, dbc, func(txc dbctx.Context) error {
		if _, err := s.bookingRepo.Create(txc, booking); err != nil {
			return storageErr("create booking", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("booking created", "booking_id", booking.ID, "service_id", serviceID, "user_id", userID)
	publishCommitted(dbc, s.log, s.events, realtime.NewEvent(realtime.EventBookingCreated, map[string]interface{}{
		"booking_id": booking.ID,
		"service_id": booking.ServiceID,
		"user_id":    booking.UserID,
		"status":     booking.Status,
	}))
	return booking, nil
}

// UpdateStatus reports NotFound before it looks at the requested status.
// Any whitelisted status may follow any other.
func (s *bookingService) UpdateStatus(dbc dbctx.Context, bookingID int64, status string) (_ *BookingView, err error) {
	ctx, span := startSpan(dbc.Context(), "BookingService.UpdateStatus",
		attribute.Int64("booking.id", bookingID), attribute.String("booking.status", status))
	defer func() { endSpan(span, err) }()
	dbc.Ctx = ctx

	var (
		updated  *types.Booking
		previous string
	)
	err = inTx(s.db, dbc, func(txc dbctx.Context) error {
		existing, err := s.bookingRepo.GetByID(txc, bookingID)
		if err != nil {
			return storageErr("load booking", err)
		}
		if existing == nil {
			return fmt.Errorf("%w: booking %d", perr.ErrNotFound, bookingID)
		}
		if !types.BookingStatus(status).Valid() {
			return fmt.Errorf("%w: %q", perr.ErrInvalidStatus, status)
		}
		previous = existing.Status
		if err := s.bookingRepo.UpdateStatus(txc, bookingID, status); err != nil {
			return storageErr("update booking status", err)
		}
		existing.Status = status
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("booking status updated", "booking_id", bookingID, "from", previous, "to", status)
	publishCommitted(dbc, s.log, s.events, realtime.NewEvent(realtime.EventBookingStatusChanged, map[string]interface{}{
		"booking_id": bookingID,
		"service_id": updated.ServiceID,
		"from":       previous,
		"to":         status,
	}))

	// Relations are resolved outside the write so a failed lookup only
	// degrades the view.
	view := s.rel.bookingViews(dbc, []*types.Booking{updated})[0]
	return &view, nil
}

func (s *bookingService) ListByUser(dbc dbctx.Context, userID int64) ([]BookingView, error) {
	rows, err := s.bookingRepo.GetByUserID(dbc, userID)
	if err != nil {
		return nil, storageErr("list bookings by user", err)
	}
	return s.rel.bookingViews(dbc, rows), nil
}

func (s *bookingService) ListByProvider(dbc dbctx.Context, providerID int64) ([]BookingView, error) {
	rows, err := s.bookingRepo.GetByProviderID(dbc, providerID)
	if err != nil {
		return nil, storageErr("list bookings by provider", err)
	}
	return s.rel.bookingViews(dbc, rows), nil
}
