package env

import (
	"os"
)

// PodName example: k8sprod-gavelhouse-api-6868d88fbd-bz8zv
func PodName() string {
	return os.Getenv("PODNAME")
}

// EnvName example: k8sprod
func EnvName() string {
	return os.Getenv("ENV_NAME")
}

// AppName example: settler
func AppName() string {
	return os.Getenv("APP_NAME")
}
