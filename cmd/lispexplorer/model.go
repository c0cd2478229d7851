// Command lispexplorer is a Bubble Tea TUI that visualizes a running
// lisp.HashTable and lisp.ManagedObjectPool: the table's entries with
// its entry and bucket counts, and the pool's tracked, reachable and
// reclaimed counts, live as collections run. It is the visual
// counterpart of lispcore.
package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adamnemecek/lispkit/lisp"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("230"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

// Model is the top-level Bubble Tea model. It owns one HashTable and
// one ManagedObjectPool (every handle the table reaches is registered
// with the pool), and lets the user step collection cycles and yank
// the rendered entry under the cursor to the system clipboard.
type Model struct {
	table  *lisp.HashTable
	pool   *lisp.ManagedObjectPool
	keys   keyMap
	cursor int
	width  int
	height int

	showHelp bool
	status   string
	lastGC   lisp.PoolStats
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Insert key.Binding
	Delete key.Binding
	Yank   key.Binding
	GC     key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
		Insert: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "insert sample entry")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete entry under cursor")),
		Yank:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yank entry to clipboard")),
		GC:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "run a collection cycle")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// NewModel returns an explorer seeded with a small demonstration table
// and pool so the view is non-empty on launch.
func NewModel() Model {
	table := lisp.NewHashTable(lisp.EqualEquiv, 31, lisp.CustomProcs{})
	pool := lisp.NewManagedObjectPool()

	seed := []struct{ k, v string }{
		{"alpha", "1"}, {"beta", "2"}, {"gamma", "3"}, {"delta", "4"},
	}
	for _, kv := range seed {
		key := lisp.NewString(kv.k)
		val := lisp.NewString(kv.v)
		table.Set(key, val)
		pool.Register(key)
		pool.Register(val)
	}
	pool.Register(table)

	return Model{
		table: table,
		pool:  pool,
		keys:  defaultKeyMap(),
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) entries() []lisp.Value {
	return m.table.Keys()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.entries())-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, m.keys.Insert):
			return m.insertSample(), nil
		case key.Matches(msg, m.keys.Delete):
			return m.deleteSelected(), nil
		case key.Matches(msg, m.keys.Yank):
			return m.yankSelected(), nil
		case key.Matches(msg, m.keys.GC):
			return m.runCollect(), nil
		}
	}
	return m, nil
}

func (m Model) insertSample() Model {
	n := m.table.Count() + 1
	key := lisp.NewString(fmt.Sprintf("entry-%d", n))
	val := lisp.NewString(fmt.Sprintf("value-%d", n))
	m.table.Set(key, val)
	m.pool.Register(key)
	m.pool.Register(val)
	m.status = fmt.Sprintf("inserted %s", mustWrite(key))
	return m
}

func (m Model) deleteSelected() Model {
	entries := m.entries()
	if len(entries) == 0 {
		return m
	}
	k := entries[m.cursor]
	if m.table.Delete(k) {
		m.status = fmt.Sprintf("deleted %s", mustWrite(k))
	} else {
		m.status = "delete failed (table is immutable or key absent)"
	}
	if m.cursor >= len(m.entries()) && m.cursor > 0 {
		m.cursor--
	}
	return m
}

func (m Model) yankSelected() Model {
	entries := m.entries()
	if len(entries) == 0 {
		m.status = "nothing to yank"
		return m
	}
	k := entries[m.cursor]
	v, _ := m.table.Get(k)
	text, err := lisp.Write(nil, lisp.Cons(k, v))
	if err != nil {
		m.status = fmt.Sprintf("render error: %v", err)
		return m
	}
	if err := clipboard.WriteAll(text); err != nil {
		m.status = fmt.Sprintf("clipboard error: %v", err)
		return m
	}
	m.status = "yanked " + text + " to clipboard"
	return m
}

func (m Model) runCollect() Model {
	table := m.table
	reclaimed := m.pool.Collect(nil, func(epoch uint8, mark func(lisp.Value)) {
		mark(table)
	})
	m.lastGC = m.pool.Stats()
	m.status = fmt.Sprintf("collected: reclaimed %d, tracked %d, reachable %d", reclaimed, m.lastGC.Tracked, m.lastGC.LastReachable)
	return m
}

func mustWrite(v lisp.Value) string {
	s, err := lisp.Write(nil, v)
	if err != nil {
		return "<unrenderable>"
	}
	return s
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("lispexplorer — table: %d/%d buckets", m.table.Count(), m.table.BucketCount())))
	b.WriteString("\n\n")

	for i, k := range m.entries() {
		v, _ := m.table.Get(k)
		line := fmt.Sprintf("%s -> %s", mustWrite(k), mustWrite(v))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("pool: tracked=%d reachable=%d reclaimed=%d", m.lastGC.Tracked, m.lastGC.LastReachable, m.lastGC.LastReclaimed)))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	base := b.String()
	if m.showHelp {
		return renderWithHelp(base, m.width, m.height)
	}
	return base
}
