package observability

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/servicehub-backend/internal/platform/logger"
	"github.com/yungbote/servicehub-backend/internal/realtime"
	"github.com/yungbote/servicehub-backend/internal/realtime/bus"
)

type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge
	apiReqError *Counter
	events      *CounterVec
	eventErrors *CounterVec
	dbStats     *GaugeVec
	redisUp     *Gauge
	redisPing   *Gauge
	interval    time.Duration
}

// NewMetrics returns nil when disabled; every method is nil-safe.
func NewMetrics(log *logger.Logger, enabled bool, scrapeInterval time.Duration) *Metrics {
	if !enabled {
		return nil
	}
	if scrapeInterval <= 0 {
		scrapeInterval = 10 * time.Second
	}
	m := &Metrics{
		apiRequests: NewCounterVec("sh_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"sh_api_request_duration_seconds",
			"API request latency in seconds by method/route/status.",
			[]string{"method", "route", "status"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		),
		apiInflight: NewGauge("sh_api_inflight_requests", "In-flight API requests."),
		apiReqError: NewCounter("sh_api_requests_error_total", "API requests answered with a 5xx status."),
		events:      NewCounterVec("sh_domain_events_total", "Domain events published by type.", []string{"type"}),
		eventErrors: NewCounterVec("sh_domain_event_publish_errors_total", "Domain event publish failures by type.", []string{"type"}),
		dbStats:     NewGaugeVec("sh_db_pool", "Database connection pool stats.", []string{"stat"}),
		redisUp:     NewGauge("sh_redis_up", "Whether the event bus redis answered the last ping."),
		redisPing:   NewGauge("sh_redis_ping_seconds", "Last redis ping latency in seconds."),
		interval:    scrapeInterval,
	}
	if log != nil {
		log.Info("Observability metrics enabled")
	}
	return m
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, write := range []func() error{
		func() error { return m.apiRequests.WritePrometheus(w) },
		func() error { return m.apiLatency.WritePrometheus(w) },
		func() error { return m.apiInflight.WritePrometheus(w) },
		func() error { return m.apiReqError.WritePrometheus(w) },
		func() error { return m.events.WritePrometheus(w) },
		func() error { return m.eventErrors.WritePrometheus(w) },
		func() error { return m.dbStats.WritePrometheus(w) },
		func() error { return m.redisUp.WritePrometheus(w) },
		func() error { return m.redisPing.WritePrometheus(w) },
	} {
		if err := write(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	code := strconv.Itoa(status)
	m.apiRequests.Inc(method, route, code)
	m.apiLatency.Observe(dur.Seconds(), method, route, code)
	if status >= 500 {
		m.apiReqError.Inc()
	}
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveEvent(t realtime.EventType, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.eventErrors.Inc(string(t))
		return
	}
	m.events.Inc(string(t))
}

// StartDBCollector samples the sql.DB pool until ctx is done.
func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					if log != nil {
						log.Warn("metrics: db stats unavailable", "error", err)
					}
					continue
				}
				stats := sqlDB.Stats()
				m.dbStats.Set(float64(stats.OpenConnections), "open_connections")
				m.dbStats.Set(float64(stats.InUse), "in_use")
				m.dbStats.Set(float64(stats.Idle), "idle")
				m.dbStats.Set(float64(stats.WaitCount), "wait_count")
				m.dbStats.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
				m.dbStats.Set(float64(stats.MaxOpenConnections), "max_open_connections")
			}
		}
	}()
}

func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				_ = rdb.Close()
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
}

type instrumentedBus struct {
	next bus.Bus
	m    *Metrics
}

// InstrumentBus counts every publish attempt on b.
func InstrumentBus(b bus.Bus, m *Metrics) bus.Bus {
	if m == nil || b == nil {
		return b
	}
	return &instrumentedBus{next: b, m: m}
}

func (b *instrumentedBus) Publish(ctx context.Context, evt realtime.Event) error {
	err := b.next.Publish(ctx, evt)
	b.m.ObserveEvent(evt.Type, err)
	return err
}

func (b *instrumentedBus) Close() error { return b.next.Close() }
