package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	taskIDKey   = "task_id"
	taskNameKey = "task_name"
)

// TaskField is one seed field of a task other than its id and name
type TaskField struct {
	Key   string
	Value interface{}
}

// Task is a maintenance task. Only the id and name are interpreted; every
// other field keeps its seed order, type and value, empty ones included.
type Task struct {
	TaskID   string
	TaskName string
	Fields   []TaskField
}

// Field returns the value of a pass-through field
func (t Task) Field(key string) (interface{}, bool) {
	for _, field := range t.Fields {
		if field.Key == key {
			return field.Value, true
		}
	}
	return nil, false
}

func (t *Task) set(key string, value interface{}) {
	for i := range t.Fields {
		if t.Fields[i].Key == key {
			t.Fields[i].Value = value
			return
		}
	}
	t.Fields = append(t.Fields, TaskField{Key: key, Value: value})
}

func (t *Task) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: task must be a mapping", node.Line)
	}

	task := Task{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		switch keyNode.Value {
		case taskIDKey:
			if err := valueNode.Decode(&task.TaskID); err != nil {
				return err
			}
		case taskNameKey:
			if err := valueNode.Decode(&task.TaskName); err != nil {
				return err
			}
		default:
			var value interface{}
			if err := valueNode.Decode(&value); err != nil {
				return err
			}
			task.set(keyNode.Value, NormalizeValue(value))
		}
	}

	*t = task
	return nil
}

func (t Task) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	write := func(key string, value interface{}) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return err
		}
		encodedValue, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("task %s field %q: %w", t.TaskID, key, err)
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		buf.Write(encodedValue)
		return nil
	}

	if err := write(taskIDKey, t.TaskID); err != nil {
		return nil, err
	}
	if err := write(taskNameKey, t.TaskName); err != nil {
		return nil, err
	}
	for _, field := range t.Fields {
		if err := write(field.Key, field.Value); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON keeps numbers as json.Number so they encode back unchanged
func (t *Task) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	token, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("task must be a JSON object")
	}

	task := Task{}
	for dec.More() {
		token, err := dec.Token()
		if err != nil {
			return err
		}
		key := token.(string)

		switch key {
		case taskIDKey:
			err = dec.Decode(&task.TaskID)
		case taskNameKey:
			err = dec.Decode(&task.TaskName)
		default:
			var value interface{}
			if err = dec.Decode(&value); err == nil {
				task.set(key, value)
			}
		}
		if err != nil {
			return fmt.Errorf("task field %q: %w", key, err)
		}
	}

	*t = task
	return nil
}

// GobEncode stores the task as JSON, which keeps empty lists and field order
// intact across the session cookie.
func (t Task) GobEncode() ([]byte, error) {
	return t.MarshalJSON()
}

func (t *Task) GobDecode(data []byte) error {
	return t.UnmarshalJSON(data)
}

// CloneTasks copies a task list so callers can't alias session state
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, task := range tasks {
		out[i] = task
		if task.Fields != nil {
			out[i].Fields = append([]TaskField(nil), task.Fields...)
		}
	}
	return out
}
