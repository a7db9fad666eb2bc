package services

import (
	"fmt"
	"iter"
	"strconv"
	"time"

	"github.com/im7mortal/kmutex"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/yungbote/servicehub-backend/internal/data/repos"
	types "github.com/yungbote/servicehub-backend/internal/domain"
	perr "github.com/yungbote/servicehub-backend/internal/pkg/errors"
	"github.com/yungbote/servicehub-backend/internal/platform/dbctx"
	"github.com/yungbote/servicehub-backend/internal/platform/logger"
	"github.com/yungbote/servicehub-backend/internal/realtime"
	"github.com/yungbote/servicehub-backend/internal/realtime/bus"
)

type RatingService interface {
	RecordReview(dbc dbctx.Context, serviceID, userID int64, rating int, comment string) (*types.Review, error)
	RecomputeService(dbc dbctx.Context, serviceID int64) (*types.RatingAggregate, error)
	ListReviews(dbc dbctx.Context, serviceID int64) (iter.Seq[ReviewView], error)
}

type ratingService struct {
	db          *gorm.DB
	log         *logger.Logger
	reviewRepo  repos.ReviewRepo
	serviceRepo repos.ServiceRepo
	rel         relations
	events      bus.Bus
	locks       *kmutex.Kmutex
	now         func() time.Time
}

func NewRatingService(db *gorm.DB, baseLog *logger.Logger, reviewRepo repos.ReviewRepo, serviceRepo repos.ServiceRepo, userRepo repos.UserRepo, events bus.Bus) RatingService {
	serviceLog := baseLog.With("service", "RatingService")
	if events == nil {
		events = bus.Nop{}
	}
	return &ratingService{
		db:          db,
		log:         serviceLog,
		reviewRepo:  reviewRepo,
		serviceRepo: serviceRepo,
		rel:         relations{log: serviceLog, services: serviceRepo, users: userRepo},
		events:      events,
		locks:       kmutex.New(),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ComputeAggregate derives a service's rating from its full review ledger.
// Zero ratings add nothing to the sum but still count toward the mean and
// the review count. The mean is rounded half-to-even to one decimal.
func ComputeAggregate(reviews []*types.Review) types.RatingAggregate {
	count := 0
	sum := 0
	for _, r := range reviews {
		if r == nil {
			continue
		}
		count++
		if r.Rating != 0 {
			sum += r.Rating
		}
	}
	if count == 0 {
		return types.RatingAggregate{}
	}
	return types.RatingAggregate{
		Rating:      roundTenth(float64(sum) / float64(count)),
		ReviewCount: count,
	}
}

// roundTenth rounds to one decimal using the exact binary value of x;
// exact ties go to the even digit.
func roundTenth(x float64) float64 {
	out, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 1, 64), 64)
	if err != nil {
		return x
	}
	return out
}

// RecordReview always persists the review. When the service exists its
// aggregate is rebuilt from the ledger in the same transaction; a review
// for an unknown service is stored without touching any aggregate.
func (s *ratingService) RecordReview(dbc dbctx.Context, serviceID, userID int64, rating int, comment string) (_ *types.Review, err error) {
	ctx, span := startSpan(dbc.Context(), "RatingService.RecordReview",
		attribute.Int64("service.id", serviceID), attribute.Int("review.rating", rating))
	defer func() { endSpan(span, err) }()
	dbc.Ctx = ctx

	s.locks.Lock(serviceID)
	defer s.locks.Unlock(serviceID)

	createdAt := s.now()
	review := &types.Review{
		ServiceID: serviceID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: &createdAt,
	}
	var agg *types.RatingAggregate
	err = inTx(s.db, dbc, func(txc dbctx.Context) error {
		svc, err := s.serviceRepo.LockByID(txc, serviceID)
		if err != nil {
			return storageErr("lock service", err)
		}
		if _, err := s.reviewRepo.Create(txc, review); err != nil {
			return storageErr("create review", err)
		}
		if svc == nil {
			return nil
		}
		agg, err = s.recompute(txc, serviceID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("review recorded", "review_id", review.ID, "service_id", serviceID, "orphan", agg == nil)
	publishCommitted(dbc, s.log, s.events, realtime.NewEvent(realtime.EventReviewCreated, map[string]interface{}{
		"review_id":  review.ID,
		"service_id": serviceID,
		"user_id":    userID,
		"rating":     rating,
	}))
	if agg != nil {
		s.publishAggregate(dbc, serviceID, *agg)
	}
	return review, nil
}

// RecomputeService rebuilds one aggregate without adding a review.
func (s *ratingService) RecomputeService(dbc dbctx.Context, serviceID int64) (_ *types.RatingAggregate, err error) {
	ctx, span := startSpan(dbc.Context(), "RatingService.RecomputeService",
		attribute.Int64("service.id", serviceID))
	defer func() { endSpan(span, err) }()
	dbc.Ctx = ctx

	s.locks.Lock(serviceID)
	defer s.locks.Unlock(serviceID)

	var agg *types.RatingAggregate
	err = inTx(s.db, dbc, func(txc dbctx.Context) error {
		svc, err := s.serviceRepo.LockByID(txc, serviceID)
		if err != nil {
			return storageErr("lock service", err)
		}
		if svc == nil {
			return fmt.Errorf("%w: service %d", perr.ErrNotFound, serviceID)
		}
		agg, err = s.recompute(txc, serviceID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publishAggregate(dbc, serviceID, *agg)
	return agg, nil
}

func (s *ratingService) recompute(txc dbctx.Context, serviceID int64) (*types.RatingAggregate, error) {
	reviews, err := s.reviewRepo.GetByServiceID(txc, serviceID)
	if err != nil {
		return nil, storageErr("scan reviews", err)
	}
	agg := ComputeAggregate(reviews)
	if err := s.serviceRepo.UpdateAggregate(txc, serviceID, agg); err != nil {
		return nil, storageErr("update aggregate", err)
	}
	return &agg, nil
}

func (s *ratingService) publishAggregate(dbc dbctx.Context, serviceID int64, agg types.RatingAggregate) {
	publishCommitted(dbc, s.log, s.events, realtime.NewEvent(realtime.EventServiceRatingUpdated, map[string]interface{}{
		"service_id":   serviceID,
		"rating":       agg.Rating,
		"review_count": agg.ReviewCount,
	}))
}

// ListReviews loads the service's reviews once and returns a sequence over
// them. Ranging the sequence again replays the same reviews.
func (s *ratingService) ListReviews(dbc dbctx.Context, serviceID int64) (iter.Seq[ReviewView], error) {
	rows, err := s.reviewRepo.GetByServiceID(dbc, serviceID)
	if err != nil {
		return nil, storageErr("list reviews", err)
	}
	userIDs := make([]int64, 0, len(rows))
	for _, r := range rows {
		if r != nil {
			userIDs = append(userIDs, r.UserID)
		}
	}
	users := s.rel.usersByID(dbc, uniqueIDs(userIDs))
	return reviewSeq(rows, users, s.now), nil
}
