package app

import (
	"fmt"
	"strings"

	"github.com/yungbote/servicehub-backend/internal/observability"
	"github.com/yungbote/servicehub-backend/internal/platform/logger"
	"github.com/yungbote/servicehub-backend/internal/realtime/bus"
)

// wireEventBus connects to Redis when REDIS_ADDR is set; otherwise events
// are dropped.
func wireEventBus(log *logger.Logger, cfg Config, metrics *observability.Metrics) (bus.Bus, error) {
	log.Info("Wiring clients...")
	var b bus.Bus = bus.Nop{}
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		rb, err := bus.NewRedisBus(log, cfg.Redis())
		if err != nil {
			return nil, fmt.Errorf("init redis event bus: %w", err)
		}
		b = rb
	}
	return observability.InstrumentBus(b, metrics), nil
}
