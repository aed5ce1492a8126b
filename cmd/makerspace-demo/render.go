package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kelsos/makerspace-demo/internal/client"
	"github.com/kelsos/makerspace-demo/internal/server"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func renderRoutes(routes []server.Route) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("62"))).
		Headers("METHOD", "PATH", "DESCRIPTION").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, route := range routes {
		t.Row(route.Method, route.Path, route.Summary)
	}

	return t.String()
}

func renderChecks(results []client.CheckResult) string {
	out := headerStyle.Render("API checks") + "\n"

	passed := 0
	for _, result := range results {
		if result.Passed {
			passed++
			out += passStyle.Render("  PASS ") + result.Name + "\n"
			continue
		}
		out += failStyle.Render("  FAIL ") + result.Name + "\n"
		out += mutedStyle.Render("       "+result.Detail) + "\n"
	}

	out += mutedStyle.Render(fmt.Sprintf("%d/%d checks passed", passed, len(results)))
	return out
}
