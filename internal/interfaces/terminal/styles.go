package terminal

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	errText lipgloss.Style
	okText  lipgloss.Style
	muted   lipgloss.Style
}

// newStyles binds styles to w so color is dropped when w is not a terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		header:  r.NewStyle().Bold(true).Underline(true),
		cell:    r.NewStyle(),
		errText: r.NewStyle().Foreground(lipgloss.Color("196")),
		okText:  r.NewStyle().Foreground(lipgloss.Color("42")),
		muted:   r.NewStyle().Faint(true),
	}
}

// table renders rows as left-aligned columns separated by two spaces.
func (s styles) table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	b.WriteString(s.row(s.header, headers, widths))
	for _, row := range rows {
		b.WriteString(s.row(s.cell, row, widths))
	}
	return b.String()
}

func (s styles) row(style lipgloss.Style, cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		pad := widths[i] - lipgloss.Width(cell)
		parts[i] = style.Render(cell) + strings.Repeat(" ", pad)
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ") + "\n"
}
