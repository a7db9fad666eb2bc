package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	types "github.com/yungbote/servicehub-backend/internal/domain"
)

var emailSeq atomic.Int64

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.User {
	tb.Helper()
	avatar := "https://ui-avatars.com/api/?name=" + name
	u := &types.User{
		Name:      name,
		Email:     fmt.Sprintf("user%d@example.com", emailSeq.Add(1)),
		Role:      "USER",
		AvatarURL: &avatar,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedProvider(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.User {
	tb.Helper()
	u := SeedUser(tb, ctx, tx, name)
	if err := tx.WithContext(ctx).Model(u).Update("role", "PROVIDER").Error; err != nil {
		tb.Fatalf("seed provider role: %v", err)
	}
	u.Role = "PROVIDER"
	return u
}

func SeedService(tb testing.TB, ctx context.Context, tx *gorm.DB, providerID int64, title string, price float64) *types.Service {
	tb.Helper()
	s := &types.Service{
		ProviderID:  providerID,
		Title:       title,
		Description: "description",
		Category:    "Cleaning",
		Location:    "Springfield",
		Price:       price,
		ImageURL:    "https://via.placeholder.com/400",
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed service: %v", err)
	}
	return s
}

func SeedBooking(tb testing.TB, ctx context.Context, tx *gorm.DB, serviceID, userID int64, date string) *types.Booking {
	tb.Helper()
	b := &types.Booking{
		ServiceID:   serviceID,
		UserID:      userID,
		BookingDate: date,
		Status:      string(types.BookingPending),
	}
	if err := tx.WithContext(ctx).Create(b).Error; err != nil {
		tb.Fatalf("seed booking: %v", err)
	}
	return b
}
