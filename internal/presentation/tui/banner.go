package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the IDX banner and version to w.
// Colours are only emitted when w is a terminal.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"  ___ ______  __", "#818cf8"},
		{" |_ _|  _ \\ \\/ /", "#a78bfa"},
		{"  | || | | \\  / ", "#c084fc"},
		{"  | || |_| /  \\ ", "#e879f9"},
		{" |___|____/_/\\_\\", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  IDX agent "+version).Faint())
	fmt.Fprintln(w)
}
