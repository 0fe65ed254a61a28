// Package ui is a small interactive browser over a finished diff: a
// scrollable record list on the left, a detail pane with the full old/new
// values on the right.
package ui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kvdiff-project/kvdiff/pkg/mapdiff"
)

type Browser struct {
	title   string
	records []mapdiff.Record[any]

	detail viewport.Model

	cursor        int
	offset        int
	width, height int
}

var _ tea.Model = (*Browser)(nil)

// NewBrowser creates a browser over an already-computed record list.
func NewBrowser(title string, records []mapdiff.Record[any]) *Browser {
	return &Browser{
		title:   title,
		records: records,
		detail:  viewport.New(5, 5), // overwritten on the first WindowSizeMsg
	}
}

// Run blocks until the user quits.
func (b *Browser) Run() error {
	_, err := tea.NewProgram(b, tea.WithAltScreen()).Run()
	return err
}

func (b *Browser) Init() tea.Cmd {
	return nil
}

func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		b.width, b.height = v.Width, v.Height
		b.detail.Width = b.width/2 - 4
		b.detail.Height = b.height - 4

	case tea.KeyMsg:
		switch v.String() {
		case "q", "esc", "ctrl+c":
			return b, tea.Quit
		case "up", "k":
			b.moveCursor(-1)
		case "down", "j":
			b.moveCursor(1)
		case "pgup":
			b.moveCursor(-b.listHeight())
		case "pgdown":
			b.moveCursor(b.listHeight())
		default:
			var cmd tea.Cmd
			b.detail, cmd = b.detail.Update(msg)
			return b, cmd
		}
	}
	b.detail.SetContent(b.detailContent())
	return b, nil
}

func (b *Browser) View() string {
	if len(b.records) == 0 {
		return StyleDim.Render("no records to show — press q to quit")
	}

	header := StyleTitle.Render(b.title) +
		StyleDim.Render(fmt.Sprintf("  %d/%d", b.cursor+1, len(b.records)))

	var list strings.Builder
	last := min(b.offset+b.listHeight(), len(b.records))
	for i := b.offset; i < last; i++ {
		prefix := "  "
		if i == b.cursor {
			prefix = StyleCursor.Render("▸ ")
		}
		list.WriteString(prefix + listLine(b.records[i]) + "\n")
	}

	detailBox := BorderDetail.Render(b.detail.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(b.width/2).Render(list.String()),
		detailBox,
	)
	footer := StyleDim.Render("↑/↓ move · pgup/pgdn page · q quit")

	return header + "\n" + body + "\n" + footer
}

func (b *Browser) listHeight() int {
	return max(b.height-4, 1)
}

func (b *Browser) moveCursor(delta int) {
	b.cursor = min(max(b.cursor+delta, 0), len(b.records)-1)
	if b.cursor < b.offset {
		b.offset = b.cursor
	}
	if b.cursor >= b.offset+b.listHeight() {
		b.offset = b.cursor - b.listHeight() + 1
	}
}

// detailContent pretty-prints the selected record for the right pane.
func (b *Browser) detailContent() string {
	if len(b.records) == 0 {
		return ""
	}
	record := b.records[b.cursor]
	var sb strings.Builder
	sb.WriteString(kindStyle(record.Kind).Render(record.Kind.String()) + "\n\n")
	switch record.Kind {
	case mapdiff.KindValueModified:
		sb.WriteString(StyleTitle.Render(record.Key) + "\n")
		sb.WriteString(StyleRemoved.Render("old:") + "\n" + prettyJSON(record.OldValue) + "\n")
		sb.WriteString(StyleAdded.Render("new:") + "\n" + prettyJSON(record.NewValue) + "\n")
	case mapdiff.KindKeyModified:
		sb.WriteString(StyleRemoved.Render(record.Key) + " -> " + StyleAdded.Render(record.NewKey) + "\n")
		sb.WriteString(prettyJSON(record.Value) + "\n")
	default:
		sb.WriteString(StyleTitle.Render(record.Key) + "\n")
		sb.WriteString(prettyJSON(record.Value) + "\n")
	}
	return sb.String()
}

func listLine(record mapdiff.Record[any]) string {
	style := kindStyle(record.Kind)
	switch record.Kind {
	case mapdiff.KindKeyModified:
		return style.Render(fmt.Sprintf("> %s -> %s", record.Key, record.NewKey))
	case mapdiff.KindEntryAdded:
		return style.Render("+ " + record.Key)
	case mapdiff.KindEntryRemoved:
		return style.Render("- " + record.Key)
	case mapdiff.KindValueModified:
		return style.Render("~ " + record.Key)
	}
	return StyleDim.Render("  " + record.Key)
}

func kindStyle(kind mapdiff.Kind) lipgloss.Style {
	switch kind {
	case mapdiff.KindEntryAdded:
		return StyleAdded
	case mapdiff.KindEntryRemoved:
		return StyleRemoved
	case mapdiff.KindValueModified:
		return StyleModified
	case mapdiff.KindKeyModified:
		return StyleRenamed
	}
	return StyleDim
}

func prettyJSON(v any) string {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(raw)
}
