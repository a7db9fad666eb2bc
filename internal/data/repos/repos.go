package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/servicehub-backend/internal/data/repos/marketplace"
	"github.com/yungbote/servicehub-backend/internal/data/repos/user"
	"github.com/yungbote/servicehub-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type ServiceRepo = marketplace.ServiceRepo
type BookingRepo = marketplace.BookingRepo
type ReviewRepo = marketplace.ReviewRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }

func NewServiceRepo(db *gorm.DB, baseLog *logger.Logger) ServiceRepo {
	return marketplace.NewServiceRepo(db, baseLog)
}
func NewBookingRepo(db *gorm.DB, baseLog *logger.Logger) BookingRepo {
	return marketplace.NewBookingRepo(db, baseLog)
}
func NewReviewRepo(db *gorm.DB, baseLog *logger.Logger) ReviewRepo {
	return marketplace.NewReviewRepo(db, baseLog)
}
