package healthcheck

import (
	"github.com/gavelhouse/goapi/base/ctx"
)

// Report lists the state of every probed dependency
type Report struct {
	Healthy bool              `json:"healthy"`
	Deps    map[string]string `json:"deps"`
}

// HealthCheckUsecase represents the healthCheck's usecases
type HealthCheckUsecase interface {
	Check(context ctx.Ctx) *Report
}

// HealthCheckRepo is repository layer of healthCheck
type HealthCheckRepo interface {
	PingMongo(context ctx.Ctx) error
	PingRedis(context ctx.Ctx) error
}
