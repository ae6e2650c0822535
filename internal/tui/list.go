package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// kind names the record type a list shows.
type kind string

const (
	kindProduct  kind = "product"
	kindSale     kind = "sale"
	kindCustomer kind = "customer"
	kindSupplier kind = "supplier"
)

type column struct {
	title string
	width int
	right bool
}

type rowsLoadedMsg struct {
	kind kind
	ids  []string
	rows [][]string
	err  error
}

// deleteConfirmedMsg is sent when the user confirms deletion in a list.
type deleteConfirmedMsg struct {
	kind kind
	id   string
}

// deletedMsg is sent after the server processes the delete.
type deletedMsg struct {
	kind kind
	id   string
	err  error
}

// listModel is a scrollable table of records with inline delete confirmation.
type listModel struct {
	kind    kind
	title   string
	empty   string
	columns []column
	ids     []string
	rows    [][]string

	cursor         int
	loading        bool
	err            error
	width          int
	height         int
	confirmDelete  bool
	deleteTargetID string
}

func newList(k kind, title, empty string, columns ...column) listModel {
	return listModel{kind: k, title: title, empty: empty, columns: columns}
}

func (m listModel) update(msg tea.Msg) (listModel, tea.Cmd) {
	switch msg := msg.(type) {
	case rowsLoadedMsg:
		m.loading = false
		m.ids = msg.ids
		m.rows = msg.rows
		m.err = msg.err
		if m.cursor >= len(m.rows) {
			m.cursor = max(len(m.rows)-1, 0)
		}

	case deletedMsg:
		m.confirmDelete = false
		m.deleteTargetID = ""
		if msg.err != nil {
			m.err = msg.err
		}

	case tea.KeyMsg:
		if m.confirmDelete {
			switch msg.String() {
			case "y", "Y":
				id := m.deleteTargetID
				k := m.kind
				m.confirmDelete = false
				return m, func() tea.Msg {
					return deleteConfirmedMsg{kind: k, id: id}
				}
			default:
				m.confirmDelete = false
				m.deleteTargetID = ""
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Delete):
			if id := m.selectedID(); id != "" {
				m.confirmDelete = true
				m.deleteTargetID = id
				m.err = nil
			}
		}
	}
	return m, nil
}

func (m *listModel) selectedID() string {
	if m.cursor >= 0 && m.cursor < len(m.ids) {
		return m.ids[m.cursor]
	}
	return ""
}

// selectedLabel returns the first cell of the selected row, used in prompts.
func (m *listModel) selectedLabel() string {
	if m.cursor >= 0 && m.cursor < len(m.rows) && len(m.rows[m.cursor]) > 0 {
		return m.rows[m.cursor][0]
	}
	return ""
}

func (m *listModel) formatRow(cells []string) string {
	parts := make([]string, len(m.columns))
	for i, c := range m.columns {
		v := ""
		if i < len(cells) {
			v = truncate(cells[i], c.width)
		}
		if c.right {
			parts[i] = fmt.Sprintf("%*s", c.width, v)
		} else {
			parts[i] = fmt.Sprintf("%-*s", c.width, v)
		}
	}
	return "  " + strings.Join(parts, " ")
}

func (m *listModel) view() string {
	if m.loading && m.rows == nil {
		return "Loading " + m.title + "..."
	}
	if m.err != nil && !m.confirmDelete {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if len(m.rows) == 0 {
		return dimStyle.Render(m.empty)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	titles := make([]string, len(m.columns))
	for i, c := range m.columns {
		titles[i] = c.title
	}
	b.WriteString(headerStyle.Render(m.formatRow(titles)))
	b.WriteString("\n")

	maxRows := m.height - 4
	if maxRows < 1 {
		maxRows = 10
	}
	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}

	for i := start; i < len(m.rows) && i < start+maxRows; i++ {
		line := m.formatRow(m.rows[i])
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line[2:]))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	if m.confirmDelete {
		b.WriteString("\n" + errorStyle.Render(fmt.Sprintf("  Delete %s %q? (y/n)", m.kind, m.selectedLabel())))
	} else {
		b.WriteString(fmt.Sprintf("\n  %d %s", len(m.rows), strings.ToLower(m.title)))
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n > 2 && len(r) > n {
		return string(r[:n-2]) + ".."
	}
	return s
}
