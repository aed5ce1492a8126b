package services

import (
	"github.com/kelsos/makerspace-demo/internal/config"
)

// Services bundles everything the HTTP surface needs
type Services struct {
	Users    *UserDirectory
	Tasks    *TaskService
	Fixtures *FixtureService
}

// NewServices creates all services from the configuration
func NewServices(cfg *config.Config) *Services {
	return &Services{
		Users:    NewUserDirectory(cfg.Tenant),
		Tasks:    NewTaskService(cfg.DataDir),
		Fixtures: NewFixtureService(cfg.ResponsesDir),
	}
}
