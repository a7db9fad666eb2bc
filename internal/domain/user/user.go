package user

import "time"

// User rows are written by the auth collaborator; this service only reads
// the display fields.
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name" json:"name"`
	Email     string    `gorm:"column:email;uniqueIndex" json:"email"`
	Role      string    `gorm:"column:role" json:"role"`
	AvatarURL *string   `gorm:"column:avatar_url" json:"avatar_url,omitempty"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (User) TableName() string { return "users" }
