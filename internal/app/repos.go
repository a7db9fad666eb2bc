package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/servicehub-backend/internal/data/repos"
	"github.com/yungbote/servicehub-backend/internal/platform/logger"
)

type Repos struct {
	User    repos.UserRepo
	Service repos.ServiceRepo
	Booking repos.BookingRepo
	Review  repos.ReviewRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:    repos.NewUserRepo(db, log),
		Service: repos.NewServiceRepo(db, log),
		Booking: repos.NewBookingRepo(db, log),
		Review:  repos.NewReviewRepo(db, log),
	}
}
