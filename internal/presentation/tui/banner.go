package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"        _      _                              _    ", "#34d399"},
	{"  _ __ (_) ___| |_ ___   __ _ _ __ __ _ _ __ | |__ ", "#2dd4bf"},
	{" | '_ \\| |/ __| __/ _ \\ / _` | '__/ _` | '_ \\| '_ \\", "#22d3ee"},
	{" | |_) | | (__| || (_) | (_| | | | (_| | |_) | | | |", "#38bdf8"},
	{" | .__/|_|\\___|\\__\\___/ \\__, |_|  \\__,_| .__/|_| |_|", "#60a5fa"},
	{" |_|                    |___/          |_|          ", "#818cf8"},
}

// PrintBanner writes the ASCII art banner to w, coloured when the terminal supports it.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	if !IsTerminal(w) {
		p = termenv.Ascii
	}

	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line.text).Foreground(p.Color(line.color)))
	}
	fmt.Fprintln(w)
}
