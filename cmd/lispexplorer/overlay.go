package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

var helpBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("86")).
	Padding(1, 2)

// staticModel is a tea.Model that renders a fixed string, used to give
// a plain piece of content a Model identity for overlay.New.
type staticModel struct{ body string }

func (s staticModel) Init() tea.Cmd                       { return nil }
func (s staticModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return s, nil }
func (s staticModel) View() string                        { return s.body }

// renderWithHelp draws a keyboard-shortcut box centered over the
// already-rendered background view.
func renderWithHelp(background string, width, height int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, row := range [][2]string{
		{"↑/k, ↓/j", "move the cursor"},
		{"i", "insert a sample entry"},
		{"d", "delete entry under cursor"},
		{"y", "yank entry to clipboard"},
		{"g", "run a collection cycle"},
		{"?", "toggle this help"},
		{"q", "quit"},
	} {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(12).Render(row[0]))
		b.WriteString("  ")
		b.WriteString(row[1])
		b.WriteString("\n")
	}
	help := helpBoxStyle.Render(b.String())

	bg := staticModel{body: background}
	fg := staticModel{body: help}
	o := overlay.New(fg, bg, overlay.Center, overlay.Center, 0, 0)
	return o.View()
}
