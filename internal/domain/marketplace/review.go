package marketplace

import "time"

// Review is an append-only ledger row. ServiceID is deliberately not
// enforced as a foreign key: reviews for unknown services are kept.
type Review struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ServiceID int64      `gorm:"column:service_id;not null;index" json:"service_id"`
	UserID    int64      `gorm:"column:user_id;not null;index" json:"user_id"`
	Rating    int        `gorm:"column:rating" json:"rating"`
	Comment   string     `gorm:"column:comment" json:"comment"`
	CreatedAt *time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Review) TableName() string { return "reviews" }

// RatingAggregate is the derived pair stored on a Service.
type RatingAggregate struct {
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
}
