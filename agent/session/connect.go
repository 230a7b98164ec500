package session

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Connect selects the session backend once at startup: Upstash when
// configured and reachable, otherwise the in-process fallback. A cache
// outage never fails chat; affected sessions simply restart empty.
func Connect(ctx context.Context, cfg UpstashRedisConfig, ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	if strings.TrimSpace(cfg.URL) == "" {
		log.Info().Msg("session cache not configured, using in-memory store")
		return NewMemoryStore(WithMemoryTTL(ttl))
	}

	store, err := NewUpstashRedisStore(cfg, WithTTL(ttl))
	if err == nil {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		err = store.Ping(pingCtx)
	}
	if err != nil {
		log.Warn().Err(err).Msg("session cache unreachable, falling back to in-memory store")
		return NewMemoryStore(WithMemoryTTL(ttl))
	}

	log.Info().Msg("session store connected to redis cache")
	return store
}
