package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kelsos/makerspace-demo/internal/logger"
	"github.com/kelsos/makerspace-demo/internal/models"
)

const (
	TasksResource    = "tasks"
	MachinesResource = "machines"
	VisitsResource   = "visits"
)

// seedFile is the shape of data/tasks.yaml
type seedFile struct {
	Tasks *[]models.Task `yaml:"tasks"`
}

// ResourcePath returns the path of the YAML document for a resource
func ResourcePath(dir, resource string) string {
	return filepath.Join(dir, fmt.Sprintf("%s.yaml", resource))
}

// LoadTasks reads the task seed from dataDir. Every call returns a freshly
// decoded list.
func LoadTasks(dataDir string) ([]models.Task, error) {
	path := ResourcePath(dataDir, TasksResource)

	fileData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read task seed: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(fileData, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse task seed %s: %w", path, err)
	}

	if seed.Tasks == nil {
		return nil, fmt.Errorf("task seed %s has no top-level %q key", path, TasksResource)
	}

	tasks := *seed.Tasks
	if tasks == nil {
		tasks = []models.Task{}
	}

	logger.Debug("Loaded %d tasks from %s", len(tasks), path)
	return tasks, nil
}

// LoadResponse reads a canned response document and returns it whole.
// Mapping keys are normalized to strings so the result encodes as JSON.
func LoadResponse(dir, resource string) (interface{}, error) {
	path := ResourcePath(dir, resource)

	fileData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", resource, err)
	}

	var document interface{}
	if err := yaml.Unmarshal(fileData, &document); err != nil {
		return nil, fmt.Errorf("failed to parse %s response %s: %w", resource, path, err)
	}

	return models.NormalizeValue(document), nil
}
