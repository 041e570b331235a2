package usecase

import (
	"context"

	"link1t-backend/internal/domain"
	redisclient "link1t-backend/pkg/redis"

	"github.com/redis/go-redis/v9"
)

type HealthUsecase interface {
	Check(ctx context.Context) (bool, map[string]string)
}

type healthUsecase struct {
	repo  domain.PortfolioRepository
	redis *redis.Client
}

// NewHealthUsecase checks the portfolio store and, when configured, Redis
func NewHealthUsecase(repo domain.PortfolioRepository, client *redis.Client) HealthUsecase {
	return &healthUsecase{repo: repo, redis: client}
}

// Check reports overall health plus one entry per dependency.
// Redis is optional so its failure never marks the service down.
func (u *healthUsecase) Check(ctx context.Context) (bool, map[string]string) {
	healthy := true
	checks := map[string]string{}

	if err := u.repo.Ping(ctx); err != nil {
		healthy = false
		checks["database"] = "down"
	} else {
		checks["database"] = "ok"
	}

	switch {
	case u.redis == nil:
		checks["redis"] = "disabled"
	case redisclient.HealthCheck(ctx, u.redis) != nil:
		checks["redis"] = "degraded"
	default:
		checks["redis"] = "ok"
	}

	return healthy, checks
}
