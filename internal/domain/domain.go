package domain

import (
	"github.com/yungbote/servicehub-backend/internal/domain/marketplace"
	"github.com/yungbote/servicehub-backend/internal/domain/user"
)

const (
	BookingPending   = marketplace.BookingPending
	BookingConfirmed = marketplace.BookingConfirmed
	BookingCompleted = marketplace.BookingCompleted
)

type User = user.User

type Service = marketplace.Service
type Booking = marketplace.Booking
type BookingStatus = marketplace.BookingStatus
type Review = marketplace.Review
type RatingAggregate = marketplace.RatingAggregate

// Models lists every table owned by the ledger, in migration order.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&Service{},
		&Booking{},
		&Review{},
	}
}
