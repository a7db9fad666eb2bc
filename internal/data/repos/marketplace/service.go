package marketplace

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/servicehub-backend/internal/domain"
	"github.com/yungbote/servicehub-backend/internal/platform/dbctx"
	"github.com/yungbote/servicehub-backend/internal/platform/logger"
)

type ServiceRepo interface {
	Create(dbc dbctx.Context, services []*types.Service) ([]*types.Service, error)
	GetByID(dbc dbctx.Context, serviceID int64) (*types.Service, error)
	GetByIDs(dbc dbctx.Context, serviceIDs []int64) ([]*types.Service, error)
	GetByProviderIDs(dbc dbctx.Context, providerIDs []int64) ([]*types.Service, error)
	ListAll(dbc dbctx.Context) ([]*types.Service, error)
	ListIDs(dbc dbctx.Context) ([]int64, error)
	LockByID(dbc dbctx.Context, serviceID int64) (*types.Service, error)
	UpdateListing(dbc dbctx.Context, serviceID int64, updates map[string]interface{}) error
	UpdateAggregate(dbc dbctx.Context, serviceID int64, agg types.RatingAggregate) error
	FullDeleteByIDs(dbc dbctx.Context, serviceIDs []int64) error
}

type serviceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewServiceRepo(db *gorm.DB, baseLog *logger.Logger) ServiceRepo {
	return &serviceRepo{db: db, log: baseLog.With("repo", "ServiceRepo")}
}

func (r *serviceRepo) tx(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Context())
}

func (r *serviceRepo) Create(dbc dbctx.Context, services []*types.Service) ([]*types.Service, error) {
	if len(services) == 0 {
		return []*types.Service{}, nil
	}
	if err := r.tx(dbc).Create(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// GetByID returns nil, nil when the service does not exist.
func (r *serviceRepo) GetByID(dbc dbctx.Context, serviceID int64) (*types.Service, error) {
	if serviceID <= 0 {
		return nil, nil
	}
	var rows []*types.Service
	if err := r.tx(dbc).Where("id = ?", serviceID).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *serviceRepo) GetByIDs(dbc dbctx.Context, serviceIDs []int64) ([]*types.Service, error) {
	var results []*types.Service
	if len(serviceIDs) == 0 {
		return results, nil
	}
	if err := r.tx(dbc).Where("id IN ?", serviceIDs).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *serviceRepo) GetByProviderIDs(dbc dbctx.Context, providerIDs []int64) ([]*types.Service, error) {
	var results []*types.Service
	if len(providerIDs) == 0 {
		return results, nil
	}
	if err := r.tx(dbc).
		Where("provider_id IN ?", providerIDs).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *serviceRepo) ListAll(dbc dbctx.Context) ([]*types.Service, error) {
	var results []*types.Service
	if err := r.tx(dbc).Order("id ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *serviceRepo) ListIDs(dbc dbctx.Context) ([]int64, error) {
	var ids []int64
	if err := r.tx(dbc).Model(&types.Service{}).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// LockByID reads the service row and, on Postgres, holds a row lock until
// the surrounding transaction ends. SQLite serializes writers on its own
// and has no FOR UPDATE. Returns nil, nil when the service does not exist.
func (r *serviceRepo) LockByID(dbc dbctx.Context, serviceID int64) (*types.Service, error) {
	if serviceID <= 0 {
		return nil, nil
	}
	q := r.tx(dbc)
	if q.Dialector != nil && q.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var rows []*types.Service
	if err := q.Where("id = ?", serviceID).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// UpdateListing writes descriptive columns only; the derived rating columns
// are filtered out so they stay owned by UpdateAggregate.
func (r *serviceRepo) UpdateListing(dbc dbctx.Context, serviceID int64, updates map[string]interface{}) error {
	if serviceID <= 0 || len(updates) == 0 {
		return nil
	}
	clean := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		if k == "rating" || k == "review_count" || k == "id" {
			continue
		}
		clean[k] = v
	}
	if len(clean) == 0 {
		return nil
	}
	return r.tx(dbc).Model(&types.Service{}).Where("id = ?", serviceID).Updates(clean).Error
}

func (r *serviceRepo) UpdateAggregate(dbc dbctx.Context, serviceID int64, agg types.RatingAggregate) error {
	if serviceID <= 0 {
		return nil
	}
	return r.tx(dbc).
		Model(&types.Service{}).
		Where("id = ?", serviceID).
		Updates(map[string]interface{}{
			"rating":       agg.Rating,
			"review_count": agg.ReviewCount,
		}).Error
}

func (r *serviceRepo) FullDeleteByIDs(dbc dbctx.Context, serviceIDs []int64) error {
	if len(serviceIDs) == 0 {
		return nil
	}
	return r.tx(dbc).Where("id IN ?", serviceIDs).Delete(&types.Service{}).Error
}
