package models

// Envelope is the wrapper every API response carries. Code mirrors the HTTP
// status of the response.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// OK returns a success envelope with an optional message
func OK(message string) Envelope {
	return Envelope{Code: 200, Message: message}
}

type UserEnvelope struct {
	Envelope
	User User `json:"user"`
}

type UsersEnvelope struct {
	Envelope
	Users []User `json:"users"`
}

type TasksEnvelope struct {
	Envelope
	Tasks []Task `json:"tasks"`
}

// MachinesEnvelope carries the canned machine status response
type MachinesEnvelope struct {
	Envelope
	Machines interface{} `json:"machines"`
}

// VisitorsEnvelope carries the canned visits response
type VisitorsEnvelope struct {
	Envelope
	Visitors interface{} `json:"visitors"`
}
