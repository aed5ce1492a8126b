package tui

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kelsos/makerspace-demo/internal/server"
)

const maxRecentRequests = 12

type RequestServed struct {
	Event server.RequestEvent
}

type SessionSeeded struct{}

type ServerStopped struct {
	Err error
}

type Model struct {
	address  string
	logPath  string
	requests []server.RequestEvent
	total    int
	errors   int
	sessions int
	stopErr  error
	stopped  bool
	spinner  spinner.Model
	width    int
	height   int
	quit     bool
}

func NewModel(address, logPath string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		address:  address,
		logPath:  logPath,
		requests: []server.RequestEvent{},
		spinner:  sp,
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quit = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case RequestServed:
		m = m.handleRequestServed(msg)

	case SessionSeeded:
		m.sessions++

	case ServerStopped:
		m.stopped = true
		m.stopErr = msg.Err

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleRequestServed(msg RequestServed) Model {
	m.total++
	if msg.Event.Status >= http.StatusInternalServerError {
		m.errors++
	}

	m.requests = append(m.requests, msg.Event)
	if len(m.requests) > maxRecentRequests {
		m.requests = m.requests[len(m.requests)-maxRecentRequests:]
	}
	return m
}

func (m Model) View() string {
	if m.quit {
		return "Shutting down...\n"
	}

	var s strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginBottom(1)

	status := m.spinner.View() + " serving on " + m.address
	if m.stopped {
		status = "stopped"
		if m.stopErr != nil {
			status = fmt.Sprintf("stopped: %v", m.stopErr)
		}
	}
	s.WriteString(headerStyle.Render("MakerSpace Demo API " + status))
	s.WriteString("\n\n")

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	summary := fmt.Sprintf("Requests: %d | Server errors: %d | Sessions seeded: %d",
		m.total, m.errors, m.sessions)
	s.WriteString(summaryStyle.Render(summary))
	s.WriteString("\n\n")

	requestSectionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Width(m.width - 2)

	var requests strings.Builder
	requests.WriteString("Recent Requests\n")
	requests.WriteString(strings.Repeat("─", 60) + "\n")

	if len(m.requests) == 0 {
		requests.WriteString("waiting for requests...\n")
	}
	for _, event := range m.requests {
		line := fmt.Sprintf("%s %-7s %-16s %3d %8s %s",
			event.Time.Format("15:04:05"),
			event.Method,
			truncate(event.Path, 16),
			event.Status,
			event.Latency.Round(time.Microsecond),
			truncate(event.RequestID, 8))

		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(statusColor(event.Status)))
		requests.WriteString(statusStyle.Render(line) + "\n")
	}

	s.WriteString(requestSectionStyle.Render(requests.String()))
	s.WriteString("\n\n")

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	footer := "Press 'q' to quit"
	if m.logPath != "" {
		footer += " | Logs: " + m.logPath
	}
	s.WriteString(footerStyle.Render(footer))

	return s.String()
}

func statusColor(status int) string {
	switch {
	case status >= http.StatusInternalServerError:
		return "196"
	case status >= http.StatusBadRequest:
		return "214"
	default:
		return "82"
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
