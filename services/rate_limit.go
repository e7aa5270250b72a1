package services

import (
	"fmt"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/playgrove-labs/grove_api/shared"
	log "github.com/sirupsen/logrus"
)

// RateLimitService throttles command endpoints with Redis fixed windows,
// keyed per client IP and endpoint group.
type RateLimitService struct {
	context.DefaultService

	redisSvc *RedisService

	configs map[string]*RateLimitConfig
}

type RateLimitConfig struct {
	EndpointType string
	MaxRequests  int64
	WindowSize   time.Duration
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *context.Context) error {
	svc.configs = map[string]*RateLimitConfig{
		"auth":    {EndpointType: "auth", MaxRequests: 10, WindowSize: time.Minute},
		"command": {EndpointType: "command", MaxRequests: 60, WindowSize: time.Minute},
		"query":   {EndpointType: "query", MaxRequests: 240, WindowSize: time.Minute},
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

// Limit returns a middleware enforcing the named endpoint group's window.
// Redis failures let the request through; throttling is best effort.
func (svc *RateLimitService) Limit(endpointType string) fiber.Handler {
	cfg, ok := svc.configs[endpointType]
	if !ok {
		cfg = svc.configs["command"]
	}

	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("grove:ratelimit:%s:%s", cfg.EndpointType, c.IP())

		count, err := svc.redisSvc.IncrWindow(c.UserContext(), key, cfg.WindowSize)
		if err != nil {
			log.WithError(err).Warn("Rate limit check failed, allowing request")
			return c.Next()
		}

		if count > cfg.MaxRequests {
			return shared.ResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", nil)
		}

		return c.Next()
	}
}
