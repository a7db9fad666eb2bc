package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/servicehub-backend/internal/http/handlers"
	httpMW "github.com/yungbote/servicehub-backend/internal/http/middleware"
	"github.com/yungbote/servicehub-backend/internal/observability"
	"github.com/yungbote/servicehub-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string
	Metrics     *observability.Metrics

	BookingHandler *httpH.BookingHandler
	ReviewHandler  *httpH.ReviewHandler
	ServiceHandler *httpH.ServiceHandler
	HealthHandler  *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(httpMW.Recovery(cfg.Log))
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	// Catalog
	if cfg.ServiceHandler != nil {
		r.GET("/services", cfg.ServiceHandler.ListServices)
		r.GET("/services/:id", cfg.ServiceHandler.GetService)
		r.GET("/services/provider/:provider_id", cfg.ServiceHandler.ListByProvider)
		r.POST("/services", cfg.ServiceHandler.CreateService)
		r.PUT("/services/:id", cfg.ServiceHandler.UpdateService)
	}

	// Bookings
	if cfg.BookingHandler != nil {
		r.POST("/bookings", cfg.BookingHandler.CreateBooking)
		r.PUT("/bookings/:id/status", cfg.BookingHandler.UpdateStatus)
		r.GET("/bookings/user/:user_id", cfg.BookingHandler.ListByUser)
		r.GET("/bookings/provider/:provider_id", cfg.BookingHandler.ListByProvider)
	}

	// Reviews
	if cfg.ReviewHandler != nil {
		r.POST("/reviews", cfg.ReviewHandler.CreateReview)
		r.GET("/reviews/service/:service_id", cfg.ReviewHandler.ListByService)
	}

	return r
}
