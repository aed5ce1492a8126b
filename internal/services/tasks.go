package services

import (
	"fmt"

	"github.com/kelsos/makerspace-demo/internal/logger"
	"github.com/kelsos/makerspace-demo/internal/models"
	"github.com/kelsos/makerspace-demo/internal/session"
	"github.com/kelsos/makerspace-demo/internal/storage"
)

// TasksKey is the session key holding the task list
const TasksKey = "tasks"

// TaskLoader produces the seed task list
type TaskLoader func() ([]models.Task, error)

// TaskService serves the task list of a session, seeding it on first access
type TaskService struct {
	load TaskLoader
}

// NewTaskService creates a task service seeded from dataDir
func NewTaskService(dataDir string) *TaskService {
	return NewTaskServiceWithLoader(func() ([]models.Task, error) {
		return storage.LoadTasks(dataDir)
	})
}

// NewTaskServiceWithLoader creates a task service with a custom seed source
func NewTaskServiceWithLoader(load TaskLoader) *TaskService {
	return &TaskService{
		load: load,
	}
}

// Tasks returns the session's task list. The seed is loaded and stored the
// first time a session asks; seeded reports whether this call did it.
func (s *TaskService) Tasks(state session.State) (tasks []models.Task, seeded bool, err error) {
	if value, ok := state.Get(TasksKey); ok {
		stored, ok := value.([]models.Task)
		if !ok {
			return nil, false, fmt.Errorf("session key %q holds %T, not a task list", TasksKey, value)
		}
		return models.CloneTasks(stored), false, nil
	}

	tasks, err = s.load()
	if err != nil {
		return nil, false, fmt.Errorf("failed to seed session tasks: %w", err)
	}

	if err := state.Set(TasksKey, tasks); err != nil {
		return nil, false, err
	}

	logger.Info("Seeded session with %d tasks", len(tasks))
	return models.CloneTasks(tasks), true, nil
}

// Resolve acknowledges resolving taskID. The session list is left as it is;
// the call only makes sure the session has been seeded.
func (s *TaskService) Resolve(state session.State, taskID string) (seeded bool, err error) {
	tasks, seeded, err := s.Tasks(state)
	if err != nil {
		return seeded, err
	}

	found := false
	for _, task := range tasks {
		if task.TaskID == taskID {
			found = true
			break
		}
	}

	logger.Debug("Resolve requested for task %q (present: %t)", taskID, found)
	return seeded, nil
}
