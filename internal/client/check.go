package client

import (
	"fmt"
	"reflect"

	"github.com/kelsos/makerspace-demo/internal/models"
)

// CheckResult is the outcome of one behavioural check against a server
type CheckResult struct {
	Name   string
	Passed bool
	Detail string
}

type check struct {
	name string
	run  func(a, b *APIClient) error
}

var checks = []check{
	{"users list holds exactly the tenant", checkUsersList},
	{"login returns the listed user", checkLoginMatchesList},
	{"tasks are stable within a session", checkTasksStable},
	{"separate sessions start from the same seed", checkSessionsShareSeed},
	{"resolving a task leaves the list unchanged", checkResolveKeepsTasks},
	{"delete user acknowledges", checkDeleteUser},
}

// RunChecks runs every check against the server at baseURL. Two clients are
// used so session isolation can be observed.
func RunChecks(baseURL string) ([]CheckResult, error) {
	a, err := NewAPIClient(baseURL)
	if err != nil {
		return nil, err
	}
	b, err := NewAPIClient(baseURL)
	if err != nil {
		return nil, err
	}

	results := make([]CheckResult, 0, len(checks))
	for _, c := range checks {
		result := CheckResult{Name: c.name, Passed: true}
		if err := c.run(a, b); err != nil {
			result.Passed = false
			result.Detail = err.Error()
		}
		results = append(results, result)
	}

	return results, nil
}

func checkUsersList(a, _ *APIClient) error {
	resp, err := a.GetUsers()
	if err != nil {
		return err
	}
	if resp.Code != 200 {
		return fmt.Errorf("expected code 200, got %d", resp.Code)
	}
	if len(resp.Users) != 1 {
		return fmt.Errorf("expected 1 user, got %d", len(resp.Users))
	}
	return nil
}

func checkLoginMatchesList(a, _ *APIClient) error {
	login, err := a.Login()
	if err != nil {
		return err
	}
	list, err := a.GetUsers()
	if err != nil {
		return err
	}
	if len(list.Users) == 0 || !reflect.DeepEqual(login.User, list.Users[0]) {
		return fmt.Errorf("login returned %+v, list returned %+v", login.User, list.Users)
	}
	return nil
}

func checkTasksStable(a, _ *APIClient) error {
	first, err := a.GetTasks()
	if err != nil {
		return err
	}
	second, err := a.GetTasks()
	if err != nil {
		return err
	}
	return sameTasks(first.Tasks, second.Tasks)
}

func checkSessionsShareSeed(a, b *APIClient) error {
	first, err := a.GetTasks()
	if err != nil {
		return err
	}
	second, err := b.GetTasks()
	if err != nil {
		return err
	}
	return sameTasks(first.Tasks, second.Tasks)
}

func checkResolveKeepsTasks(a, _ *APIClient) error {
	before, err := a.GetTasks()
	if err != nil {
		return err
	}

	taskID := ""
	if len(before.Tasks) > 0 {
		taskID = before.Tasks[0].TaskID
	}

	resp, err := a.ResolveTask(taskID)
	if err != nil {
		return err
	}
	if resp.Code != 200 {
		return fmt.Errorf("expected code 200, got %d", resp.Code)
	}

	after, err := a.GetTasks()
	if err != nil {
		return err
	}
	return sameTasks(before.Tasks, after.Tasks)
}

func checkDeleteUser(a, _ *APIClient) error {
	resp, err := a.DeleteUser("342543")
	if err != nil {
		return err
	}
	if resp.Code != 200 || resp.Message == "" {
		return fmt.Errorf("unexpected envelope %+v", resp)
	}
	return nil
}

func sameTasks(a, b []models.Task) error {
	if !reflect.DeepEqual(a, b) {
		return fmt.Errorf("task lists differ: %+v vs %+v", a, b)
	}
	return nil
}
