package services

import (
	"fmt"

	"github.com/kelsos/makerspace-demo/internal/storage"
)

// FixtureService serves pre-computed responses from the responses directory
type FixtureService struct {
	dir string
}

func NewFixtureService(dir string) *FixtureService {
	return &FixtureService{dir: dir}
}

// Machines returns the canned machine status document
func (s *FixtureService) Machines() (interface{}, error) {
	machines, err := storage.LoadResponse(s.dir, storage.MachinesResource)
	if err != nil {
		return nil, fmt.Errorf("failed to load machines: %w", err)
	}
	return machines, nil
}

// Visitors returns the canned visits document
func (s *FixtureService) Visitors() (interface{}, error) {
	visits, err := storage.LoadResponse(s.dir, storage.VisitsResource)
	if err != nil {
		return nil, fmt.Errorf("failed to load visitors: %w", err)
	}
	return visits, nil
}
