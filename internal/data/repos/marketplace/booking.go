package marketplace

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/servicehub-backend/internal/domain"
	perr "github.com/yungbote/servicehub-backend/internal/pkg/errors"
	"github.com/yungbote/servicehub-backend/internal/platform/dbctx"
	"github.com/yungbote/servicehub-backend/internal/platform/logger"
)

type BookingRepo interface {
	Create(dbc dbctx.Context, booking *types.Booking) (*types.Booking, error)
	GetByID(dbc dbctx.Context, bookingID int64) (*types.Booking, error)
	GetByUserID(dbc dbctx.Context, userID int64) ([]*types.Booking, error)
	GetByProviderID(dbc dbctx.Context, providerID int64) ([]*types.Booking, error)
	UpdateStatus(dbc dbctx.Context, bookingID int64, status string) error
}

type bookingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBookingRepo(db *gorm.DB, baseLog *logger.Logger) BookingRepo {
	return &bookingRepo{db: db, log: baseLog.With("repo", "BookingRepo")}
}

func (r *bookingRepo) tx(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Context())
}

// Create enforces the booking's references the way a foreign key would:
// both the service and the user must exist when the row is inserted.
// Callers should pass a transaction so the check and insert are atomic.
func (r *bookingRepo) Create(dbc dbctx.Context, booking *types.Booking) (*types.Booking, error) {
	if booking == nil {
		return nil, fmt.Errorf("%w: nil booking", perr.ErrInvalidArgument)
	}
	t := r.tx(dbc)

	var n int64
	if err := t.Model(&types.Service{}).Where("id = ?", booking.ServiceID).Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: bookings.service_id references missing service %d", perr.ErrConstraint, booking.ServiceID)
	}
	if err := t.Model(&types.User{}).Where("id = ?", booking.UserID).Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: bookings.user_id references missing user %d", perr.ErrConstraint, booking.UserID)
	}

	if err := t.Create(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

// GetByID returns nil, nil when the booking does not exist.
func (r *bookingRepo) GetByID(dbc dbctx.Context, bookingID int64) (*types.Booking, error) {
	if bookingID <= 0 {
		return nil, nil
	}
	var rows []*types.Booking
	if err := r.tx(dbc).Where("id = ?", bookingID).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *bookingRepo) GetByUserID(dbc dbctx.Context, userID int64) ([]*types.Booking, error) {
	var results []*types.Booking
	if err := r.tx(dbc).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *bookingRepo) GetByProviderID(dbc dbctx.Context, providerID int64) ([]*types.Booking, error) {
	var results []*types.Booking
	if err := r.tx(dbc).
		Model(&types.Booking{}).
		Select("bookings.*").
		Joins("JOIN services ON services.id = bookings.service_id").
		Where("services.provider_id = ?", providerID).
		Order("bookings.id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *bookingRepo) UpdateStatus(dbc dbctx.Context, bookingID int64, status string) error {
	res := r.tx(dbc).
		Model(&types.Booking{}).
		Where("id = ?", bookingID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: booking %d", perr.ErrNotFound, bookingID)
	}
	return nil
}
