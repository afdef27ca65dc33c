package tui

import (
	"fmt"
	"strings"
)

// RouteRow is one line of the route table.
type RouteRow struct {
	Method  string
	Path    string
	Summary string
}

// RoutesMarkdown renders the route table as a markdown document.
func RoutesMarkdown(title string, rows []RouteRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	b.WriteString("| Method | Path | Summary |\n")
	b.WriteString("|--------|------|---------|\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | `%s` | %s |\n", r.Method, r.Path, strings.ReplaceAll(r.Summary, "|", "\\|"))
	}
	return b.String()
}
