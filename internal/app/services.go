package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/servicehub-backend/internal/platform/logger"
	"github.com/yungbote/servicehub-backend/internal/realtime/bus"
	"github.com/yungbote/servicehub-backend/internal/services"
)

type Services struct {
	Bookings services.BookingService
	Ratings  services.RatingService
	Catalog  services.CatalogService
}

func wireServices(db *gorm.DB, log *logger.Logger, r Repos, events bus.Bus) Services {
	log.Info("Wiring services...")
	return Services{
		Bookings: services.NewBookingService(db, log, r.Booking, r.Service, r.User, events),
		Ratings:  services.NewRatingService(db, log, r.Review, r.Service, r.User, events),
		Catalog:  services.NewCatalogService(db, log, r.Service, r.User),
	}
}
