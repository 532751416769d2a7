package usecase

import (
	"github.com/gavelhouse/goapi/base/ctx"
	hcdomain "github.com/gavelhouse/goapi/domain/healthcheck"
)

type impl struct {
	repo hcdomain.HealthCheckRepo
}

// New creates new healthCheckUsecase object representation of HealthCheckUsecase interface
func New(repo hcdomain.HealthCheckRepo) hcdomain.HealthCheckUsecase {
	return &impl{
		repo: repo,
	}
}

// Check probes every dependency, a single failure marks the whole report
// unhealthy
func (im *impl) Check(context ctx.Ctx) *hcdomain.Report {
	report := &hcdomain.Report{
		Healthy: true,
		Deps:    map[string]string{},
	}

	probes := []struct {
		name string
		ping func(ctx.Ctx) error
	}{
		{"mongo", im.repo.PingMongo},
		{"redis", im.repo.PingRedis},
	}

	for _, p := range probes {
		if err := p.ping(context); err != nil {
			report.Healthy = false
			report.Deps[p.name] = err.Error()
		} else {
			report.Deps[p.name] = "ok"
		}
	}

	return report
}
