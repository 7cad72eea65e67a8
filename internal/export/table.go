package export

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yorozuya-cybersecurity/yorosec-export/internal/schema"
)

var tableHeaders = []string{"ID", "Vulnerability", "Target", "Discover Time", "Author"}

// RenderTable renders findings as a console table, one row per finding in
// input order. Missing fields render as empty cells.
func RenderTable(findings []*schema.Mapping) string {
	t := table.New().
		Border(lipgloss.ASCIIBorder()).
		StyleFunc(func(_, _ int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(tableHeaders...)

	for _, f := range findings {
		t.Row(
			f.Text("id"),
			f.Text("rule_name"),
			f.Text("file_path")+": "+f.Text("line_number"),
			f.Text("commit_time"),
			f.Text("commit_author"),
		)
	}
	return t.String()
}
