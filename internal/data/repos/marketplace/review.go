package marketplace

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/servicehub-backend/internal/domain"
	perr "github.com/yungbote/servicehub-backend/internal/pkg/errors"
	"github.com/yungbote/servicehub-backend/internal/platform/dbctx"
	"github.com/yungbote/servicehub-backend/internal/platform/logger"
)

type ReviewRepo interface {
	Create(dbc dbctx.Context, review *types.Review) (*types.Review, error)
	GetByServiceID(dbc dbctx.Context, serviceID int64) ([]*types.Review, error)
}

type reviewRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReviewRepo(db *gorm.DB, baseLog *logger.Logger) ReviewRepo {
	return &reviewRepo{db: db, log: baseLog.With("repo", "ReviewRepo")}
}

func (r *reviewRepo) tx(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Context())
}

// Create appends to the ledger. The service reference is not checked.
func (r *reviewRepo) Create(dbc dbctx.Context, review *types.Review) (*types.Review, error) {
	if review == nil {
		return nil, fmt.Errorf("%w: nil review", perr.ErrInvalidArgument)
	}
	if review.CreatedAt == nil {
		now := time.Now().UTC()
		review.CreatedAt = &now
	}
	if err := r.tx(dbc).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

func (r *reviewRepo) GetByServiceID(dbc dbctx.Context, serviceID int64) ([]*types.Review, error) {
	var results []*types.Review
	if err := r.tx(dbc).
		Where("service_id = ?", serviceID).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
