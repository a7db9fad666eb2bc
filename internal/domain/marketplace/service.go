package marketplace

import "time"

// Service is a provider's listing. Rating and ReviewCount are derived from
// the reviews ledger and only ever written by the rating aggregator.
type Service struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProviderID  int64   `gorm:"column:provider_id;not null;index" json:"provider_id"`
	Title       string  `gorm:"column:title" json:"title"`
	Description string  `gorm:"column:description" json:"description"`
	Category    string  `gorm:"column:category;index" json:"category"`
	Location    string  `gorm:"column:location" json:"location"`
	Price       float64 `gorm:"column:price" json:"price"`
	ImageURL    string  `gorm:"column:image_url" json:"image_url"`

	Rating      float64 `gorm:"column:rating;not null;default:0" json:"rating"`
	ReviewCount int     `gorm:"column:review_count;not null;default:0" json:"review_count"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Service) TableName() string { return "services" }
