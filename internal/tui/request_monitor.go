package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kelsos/makerspace-demo/internal/server"
)

// RequestMonitor shows server activity in the terminal. It satisfies
// server.Observer.
type RequestMonitor struct {
	program *tea.Program
}

func NewRequestMonitor(address, logPath string) *RequestMonitor {
	return &RequestMonitor{
		program: tea.NewProgram(NewModel(address, logPath), tea.WithAltScreen()),
	}
}

// Run blocks until the user quits the monitor
func (rm *RequestMonitor) Run() error {
	if _, err := rm.program.Run(); err != nil {
		return fmt.Errorf("request monitor failed: %w", err)
	}
	return nil
}

func (rm *RequestMonitor) Stop() {
	rm.program.Quit()
}

func (rm *RequestMonitor) RequestServed(event server.RequestEvent) {
	rm.program.Send(RequestServed{Event: event})
}

func (rm *RequestMonitor) SessionSeeded() {
	rm.program.Send(SessionSeeded{})
}

// ServerStopped tells the monitor the server is no longer serving
func (rm *RequestMonitor) ServerStopped(err error) {
	rm.program.Send(ServerStopped{Err: err})
}
