package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/servicehub-backend/internal/http/response"
	"github.com/yungbote/servicehub-backend/internal/platform/dbctx"
	"github.com/yungbote/servicehub-backend/internal/platform/logger"
	"github.com/yungbote/servicehub-backend/internal/services"
)

type ServiceHandler struct {
	log     *logger.Logger
	catalog services.CatalogService
}

func NewServiceHandler(log *logger.Logger, catalog services.CatalogService) *ServiceHandler {
	return &ServiceHandler{log: log.With("handler", "ServiceHandler"), catalog: catalog}
}

type serviceRequest struct {
	ProviderID  FlexID  `json:"provider_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
}

func (r serviceRequest) input() services.ServiceInput {
	return services.ServiceInput{
		ProviderID:  r.ProviderID.Int64(),
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Location:    r.Location,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
	}
}

// GET /services
func (h *ServiceHandler) ListServices(c *gin.Context) {
	views, err := h.catalog.ListAll(dbctx.Context{Ctx: c.Request.Context()})
	if err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	response.RespondOK(c, views)
}

// GET /services/:id
func (h *ServiceHandler) GetService(c *gin.Context) {
	serviceID, err := pathID(c, "id")
	if err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	view, err := h.catalog.Get(dbctx.Context{Ctx: c.Request.Context()}, serviceID)
	if err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	response.RespondOK(c, view)
}

// GET /services/provider/:provider_id
func (h *ServiceHandler) ListByProvider(c *gin.Context) {
	providerID, err := pathID(c, "provider_id")
	if err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	views, err := h.catalog.ListByProvider(dbctx.Context{Ctx: c.Request.Context()}, providerID)
	if err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	response.RespondOK(c, views)
}

// POST /services
func (h *ServiceHandler) CreateService(c *gin.Context) {
	var req serviceRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	view, err := h.catalog.Create(dbctx.Context{Ctx: c.Request.Context()}, req.input())
	if err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	response.RespondCreated(c, view)
}

// PUT /services/:id
func (h *ServiceHandler) UpdateService(c *gin.Context) {
	serviceID, err := pathID(c, "id")
	if err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	var req serviceRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	view, err := h.catalog.Update(dbctx.Context{Ctx: c.Request.Context()}, serviceID, req.input())
	if err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	response.RespondOK(c, view)
}
