package models

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestTaskMarshalKeepsFieldOrderAndTypes(t *testing.T) {
	task := Task{
		TaskID:   "t1",
		TaskName: "A",
		Fields: []TaskField{
			{Key: "status", Value: 2},
			{Key: "assigned_to", Value: ""},
			{Key: "description", Value: nil},
			{Key: "machine", Value: "Laser Cutter"},
		},
	}

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `{"task_id":"t1","task_name":"A","status":2,"assigned_to":"","description":null,"machine":"Laser Cutter"}`
	if string(data) != want {
		t.Errorf("Expected %s, got %s", want, data)
	}
}

func TestTaskUnmarshalYAML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   string
		want  interface{}
	}{
		{name: "int status", input: "status: 2", key: "status", want: 2},
		{name: "string status", input: "status: Completed", key: "status", want: "Completed"},
		{name: "empty string", input: `assigned_to: ""`, key: "assigned_to", want: ""},
		{name: "plain date", input: "date_created: 2021-02-01T00:00:00Z", key: "date_created", want: "2021-02-01T00:00:00Z"},
		{name: "tagged date", input: "date_created: !!timestamp 2021-02-01T00:00:00Z", key: "date_created", want: "2021-02-01T00:00:00Z"},
		{name: "int date", input: "date_created: 1612137600", key: "date_created", want: 1612137600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var task Task
			input := "task_id: t1\ntask_name: A\n" + tt.input + "\n"
			if err := yaml.Unmarshal([]byte(input), &task); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}

			got, ok := task.Field(tt.key)
			if !ok {
				t.Fatalf("Expected field %q, got %v", tt.key, task.Fields)
			}
			if got != tt.want {
				t.Errorf("Expected %#v, got %#v", tt.want, got)
			}
		})
	}
}

func TestTaskUnmarshalYAMLStringifiesMappingKeys(t *testing.T) {
	var task Task
	input := "task_id: t1\ntask_name: A\nbins: {1: a, nested: {true: [x]}}\n"
	if err := yaml.Unmarshal([]byte(input), &task); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `{"task_id":"t1","task_name":"A","bins":{"1":"a","nested":{"true":["x"]}}}`
	if string(data) != want {
		t.Errorf("Expected %s, got %s", want, data)
	}
}

func TestTaskUnmarshalYAMLRejectsScalar(t *testing.T) {
	var tasks []Task
	if err := yaml.Unmarshal([]byte("- just a string\n"), &tasks); err == nil {
		t.Error("Expected an error for a scalar task")
	}
}

func TestTaskUnmarshalJSONKeepsOrder(t *testing.T) {
	var task Task
	data := []byte(`{"task_id":"t2","task_name":"B","status":"Completed","room":"B-12","size":1.50}`)
	if err := json.Unmarshal(data, &task); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if task.TaskID != "t2" || task.TaskName != "B" {
		t.Errorf("Unexpected id and name: %+v", task)
	}
	if len(task.Fields) != 3 || task.Fields[0].Key != "status" || task.Fields[2].Key != "size" {
		t.Errorf("Expected status, room, size in order, got %v", task.Fields)
	}

	out, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Errorf("Expected %s, got %s", data, out)
	}
}

func TestTaskWithoutFieldsHasNilFields(t *testing.T) {
	var task Task
	if err := json.Unmarshal([]byte(`{"task_id":"t3","task_name":"C"}`), &task); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if task.Fields != nil {
		t.Errorf("Expected nil Fields, got %v", task.Fields)
	}
}

func TestTaskGobKeepsEmptyValues(t *testing.T) {
	tasks := []Task{{
		TaskID:   "t1",
		TaskName: "A",
		Fields: []TaskField{
			{Key: "tags", Value: []interface{}{}},
			{Key: "assigned_to", Value: ""},
			{Key: "status", Value: 2},
		},
	}}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(tasks); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	var decoded []Task
	if err := gob.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	want, _ := json.Marshal(tasks)
	got, _ := json.Marshal(decoded)
	if !bytes.Equal(want, got) {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestNormalizeValueFormatsTime(t *testing.T) {
	when := time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC)
	if got := NormalizeValue(when); got != "2021-02-01T00:00:00Z" {
		t.Errorf("Expected RFC 3339 string, got %#v", got)
	}
}

func TestUserNormalizedEncodesEmptyLists(t *testing.T) {
	data, err := json.Marshal(User{UserID: "1"}.Normalized())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `{"first_name":"","last_name":"","user_id":"1","assigned_tasks":[],"permissions":[]}`
	if string(data) != want {
		t.Errorf("Expected %s, got %s", want, data)
	}
}

func TestCloneTasksDoesNotAlias(t *testing.T) {
	original := []Task{{TaskID: "t1", TaskName: "A", Fields: []TaskField{{Key: "room", Value: "B-12"}}}}
	clone := CloneTasks(original)
	clone[0].TaskName = "changed"
	clone[0].Fields[0].Value = "C-1"

	if original[0].TaskName != "A" {
		t.Errorf("Expected original to be untouched, got %q", original[0].TaskName)
	}
	if original[0].Fields[0].Value != "B-12" {
		t.Errorf("Expected original fields to be untouched, got %v", original[0].Fields)
	}
}
