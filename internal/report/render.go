package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-pass-vault/models"
)

const uiDivider = "──────────────────────────────────────────────────────"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
	alertStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Render formats rows as a boxed terminal table.
func Render(t models.ReportType, rows []Row) (string, error) {
	metric, value, err := metricColumn(t)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title(t)))
	b.WriteString("\n  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if len(rows) == 0 {
		b.WriteString("  ")
		b.WriteString(okStyle.Render("Nothing to report."))
		b.WriteString("\n")
		return b.String(), nil
	}

	header := []string{"Group", "Title", "Username", metric}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{valueOrDash(r.GroupName), valueOrDash(r.Title), valueOrDash(r.Username), strconv.Itoa(value(r))})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range cells {
		for i, c := range row {
			if w := lipgloss.Width(c); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var table strings.Builder
	table.WriteString(headerStyle.Render(formatRow(header, widths)))
	table.WriteString("\n")
	for i, w := range widths {
		if i > 0 {
			table.WriteString("─┼─")
		}
		table.WriteString(strings.Repeat("─", w))
	}
	for _, row := range cells {
		table.WriteString("\n")
		table.WriteString(formatRow(row, widths))
	}

	b.WriteString(boxStyle.Render(table.String()))
	b.WriteString("\n  ")
	b.WriteString(alertStyle.Render(fmt.Sprintf("%d %s", len(rows), noun(t, len(rows)))))
	b.WriteString("\n  ")
	b.WriteString(helpStyle.Render(hint(t)))
	b.WriteString("\n")
	return b.String(), nil
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c + strings.Repeat(" ", widths[i]-lipgloss.Width(c))
	}
	return strings.Join(parts, " │ ")
}

func title(t models.ReportType) string {
	if t == models.ExposedPasswordsReport {
		return "EXPOSED PASSWORDS"
	}
	return "WEAK PASSWORDS"
}

func noun(t models.ReportType, n int) string {
	s := "exposed password"
	if t == models.WeakPasswordsReport {
		s = "weak password"
	}
	if n != 1 {
		s += "s"
	}
	return s
}

func hint(t models.ReportType) string {
	if t == models.ExposedPasswordsReport {
		return "occurrences: times the password appears in known breaches"
	}
	return "score: 0 (weakest) to 4 (strongest)"
}

func valueOrDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}
