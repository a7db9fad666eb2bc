package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/servicehub-backend/internal/http"
	httpH "github.com/yungbote/servicehub-backend/internal/http/handlers"
	"github.com/yungbote/servicehub-backend/internal/observability"
	"github.com/yungbote/servicehub-backend/internal/platform/logger"
)

type Handlers struct {
	Health  *httpH.HealthHandler
	Booking *httpH.BookingHandler
	Review  *httpH.ReviewHandler
	Service *httpH.ServiceHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:  httpH.NewHealthHandler(),
		Booking: httpH.NewBookingHandler(log, s.Bookings),
		Review:  httpH.NewReviewHandler(log, s.Ratings),
		Service: httpH.NewServiceHandler(log, s.Catalog),
	}
}

func wireRouter(log *logger.Logger, cfg Config, h Handlers, metrics *observability.Metrics) *gin.Engine {
	serviceName := ""
	if cfg.OtelEnabled {
		serviceName = cfg.ServiceName
	}
	return http.NewRouter(http.RouterConfig{
		Log:            log,
		ServiceName:    serviceName,
		CORSOrigins:    cfg.CORSOrigins,
		Metrics:        metrics,
		BookingHandler: h.Booking,
		ReviewHandler:  h.Review,
		ServiceHandler: h.Service,
		HealthHandler:  h.Health,
	})
}
