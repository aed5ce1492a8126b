package models

// User is a registered user of the MakerSpace dashboard. AssignedTasks holds
// task ids, Permissions holds permission tags.
type User struct {
	FirstName     string   `json:"first_name" yaml:"first_name" mapstructure:"first_name"`
	LastName      string   `json:"last_name" yaml:"last_name" mapstructure:"last_name"`
	UserID        string   `json:"user_id" yaml:"user_id" mapstructure:"user_id"`
	AssignedTasks []string `json:"assigned_tasks" yaml:"assigned_tasks" mapstructure:"assigned_tasks"`
	Permissions   []string `json:"permissions" yaml:"permissions" mapstructure:"permissions"`
}

// DefaultTenant is the single seeded user served by the demo directory
func DefaultTenant() User {
	return User{
		FirstName:     "Joe",
		LastName:      "Goldberg",
		UserID:        "342543",
		AssignedTasks: []string{},
		Permissions:   []string{},
	}
}

// Normalized returns a copy of the user with nil slices replaced by empty
// ones, so they encode as [] instead of null.
func (u User) Normalized() User {
	out := u
	out.AssignedTasks = append([]string{}, u.AssignedTasks...)
	out.Permissions = append([]string{}, u.Permissions...)
	return out
}

// DeleteTaskRequest is the optional body of DELETE /api/tasks
type DeleteTaskRequest struct {
	TaskID string `json:"task_id"`
}
