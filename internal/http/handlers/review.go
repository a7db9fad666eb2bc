package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/servicehub-backend/internal/http/response"
	"github.com/yungbote/servicehub-backend/internal/platform/dbctx"
	"github.com/yungbote/servicehub-backend/internal/platform/logger"
	"github.com/yungbote/servicehub-backend/internal/services"
)

type ReviewHandler struct {
	log     *logger.Logger
	ratings services.RatingService
}

func NewReviewHandler(log *logger.Logger, ratings services.RatingService) *ReviewHandler {
	return &ReviewHandler{log: log.With("handler", "ReviewHandler"), ratings: ratings}
}

type createReviewRequest struct {
	ServiceID FlexID `json:"service_id" binding:"required"`
	UserID    FlexID `json:"user_id" binding:"required"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// POST /reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req createReviewRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	_, err := h.ratings.RecordReview(dbctx.Context{Ctx: c.Request.Context()}, req.ServiceID.Int64(), req.UserID.Int64(), req.Rating, req.Comment)
	if err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{"accepted": true, "message": "Review added"})
}

// GET /reviews/service/:service_id
func (h *ReviewHandler) ListByService(c *gin.Context) {
	serviceID, err := pathID(c, "service_id")
	if err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	seq, err := h.ratings.ListReviews(dbctx.Context{Ctx: c.Request.Context()}, serviceID)
	if err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	out := make([]services.ReviewView, 0)
	for v := range seq {
		out = append(out, v)
	}
	response.RespondOK(c, out)
}
