package services

import (
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/yungbote/servicehub-backend/internal/data/repos"
	types "github.com/yungbote/servicehub-backend/internal/domain"
	perr "github.com/yungbote/servicehub-backend/internal/pkg/errors"
	"github.com/yungbote/servicehub-backend/internal/platform/dbctx"
	"github.com/yungbote/servicehub-backend/internal/platform/logger"
)

const DefaultServiceImageURL = "https://via.placeholder.com/400"

// ServiceInput carries the provider-editable columns of a listing.
type ServiceInput struct {
	ProviderID  int64
	Title       string
	Description string
	Category    string
	Location    string
	Price       float64
	ImageURL    string
}

func (in ServiceInput) validate(requireProvider bool) error {
	if requireProvider && in.ProviderID <= 0 {
		return fmt.Errorf("%w: provider_id required", perr.ErrInvalidArgument)
	}
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title required", perr.ErrInvalidArgument)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", perr.ErrInvalidArgument)
	}
	return nil
}

type CatalogService interface {
	Create(dbc dbctx.Context, in ServiceInput) (*ServiceView, error)
	Update(dbc dbctx.Context, serviceID int64, in ServiceInput) (*ServiceView, error)
	Get(dbc dbctx.Context, serviceID int64) (*ServiceView, error)
	ListAll(dbc dbctx.Context) ([]ServiceView, error)
	ListByProvider(dbc dbctx.Context, providerID int64) ([]ServiceView, error)
}

type catalogService struct {
	db          *gorm.DB
	log         *logger.Logger
	serviceRepo repos.ServiceRepo
	rel         relations
}

func NewCatalogService(db *gorm.DB, baseLog *logger.Logger, serviceRepo repos.ServiceRepo, userRepo repos.UserRepo) CatalogService {
	serviceLog := baseLog.With("service", "CatalogService")
	return &catalogService{
		db:          db,
		log:         serviceLog,
		serviceRepo: serviceRepo,
		rel:         relations{log: serviceLog, services: serviceRepo, users: userRepo},
	}
}

func (s *catalogService) Create(dbc dbctx.Context, in ServiceInput) (_ *ServiceView, err error) {
	ctx, span := startSpan(dbc.Context(), "CatalogService.Create",
		attribute.Int64("provider.id", in.ProviderID))
	defer func() { endSpan(span, err) }()
	dbc.Ctx = ctx

	if err = in.validate(true); err != nil {
		return nil, err
	}
	img := strings.TrimSpace(in.ImageURL)
	if img == "" {
		img = DefaultServiceImageURL
	}
	svc := &types.Service{
		ProviderID:  in.ProviderID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Category:    in.Category,
		Location:    in.Location,
		Price:       in.Price,
		ImageURL:    img,
	}
	err = inTx(s.db, dbc, func(txc dbctx.Context) error {
		if _, err := s.serviceRepo.Create(txc, []*types.Service{svc}); err != nil {
			return storageErr("create service", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("service created", "service_id", svc.ID, "provider_id", svc.ProviderID)

	views := s.rel.serviceViews(dbc, []*types.Service{svc})
	return &views[0], nil
}

// Update replaces the descriptive columns. The image is only replaced when
// a new URL is given; provider and rating columns never change here.
func (s *catalogService) Update(dbc dbctx.Context, serviceID int64, in ServiceInput) (_ *ServiceView, err error) {
	ctx, span := startSpan(dbc.Context(), "CatalogService.Update",
		attribute.Int64("service.id", serviceID))
	defer func() { endSpan(span, err) }()
	dbc.Ctx = ctx

	var svc *types.Service
	err = inTx(s.db, dbc, func(txc dbctx.Context) error {
		existing, err := s.serviceRepo.GetByID(txc, serviceID)
		if err != nil {
			return storageErr("load service", err)
		}
		if existing == nil {
			return fmt.Errorf("%w: service %d", perr.ErrNotFound, serviceID)
		}
		if err := in.validate(false); err != nil {
			return err
		}
		updates := map[string]interface{}{
			"title":       strings.TrimSpace(in.Title),
			"description": in.Description,
			"category":    in.Category,
			"location":    in.Location,
			"price":       in.Price,
		}
		if img := strings.TrimSpace(in.ImageURL); img != "" {
			updates["image_url"] = img
		}
		if err := s.serviceRepo.UpdateListing(txc, serviceID, updates); err != nil {
			return storageErr("update service", err)
		}
		svc, err = s.serviceRepo.GetByID(txc, serviceID)
		if err != nil {
			return storageErr("reload service", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, fmt.Errorf("%w: service %d", perr.ErrNotFound, serviceID)
	}
	views := s.rel.serviceViews(dbc, []*types.Service{svc})
	return &views[0], nil
}

func (s *catalogService) Get(dbc dbctx.Context, serviceID int64) (*ServiceView, error) {
	svc, err := s.serviceRepo.GetByID(dbc, serviceID)
	if err != nil {
		return nil, storageErr("get service", err)
	}
	if svc == nil {
		return nil, fmt.Errorf("%w: service %d", perr.ErrNotFound, serviceID)
	}
	views := s.rel.serviceViews(dbc, []*types.Service{svc})
	return &views[0], nil
}

func (s *catalogService) ListAll(dbc dbctx.Context) ([]ServiceView, error) {
	rows, err := s.serviceRepo.ListAll(dbc)
	if err != nil {
		return nil, storageErr("list services", err)
	}
	return s.rel.serviceViews(dbc, rows), nil
}

func (s *catalogService) ListByProvider(dbc dbctx.Context, providerID int64) ([]ServiceView, error) {
	rows, err := s.serviceRepo.GetByProviderIDs(dbc, []int64{providerID})
	if err != nil {
		return nil, storageErr("list provider services", err)
	}
	return s.rel.serviceViews(dbc, rows), nil
}
