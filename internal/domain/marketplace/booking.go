package marketplace

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCompleted BookingStatus = "Completed"
)

// allowedBookingStatuses is a whitelist, not a transition graph: any member
// may be written regardless of the booking's current status.
var allowedBookingStatuses = map[BookingStatus]struct{}{
	BookingPending:   {},
	BookingConfirmed: {},
	BookingCompleted: {},
}

func (s BookingStatus) Valid() bool {
	_, ok := allowedBookingStatuses[s]
	return ok
}

func (s BookingStatus) String() string { return string(s) }

type Booking struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ServiceID   int64  `gorm:"column:service_id;not null;index" json:"service_id"`
	UserID      int64  `gorm:"column:user_id;not null;index" json:"user_id"`
	BookingDate string `gorm:"column:booking_date" json:"booking_date"`
	Status      string `gorm:"column:status;not null;default:Pending;index" json:"status"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Booking) TableName() string { return "bookings" }
