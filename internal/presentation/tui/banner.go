package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	`  ____            _            `,
	` |  _ \ __ _ _ __| | ___ _   _ `,
	` | |_) / _' | '__| |/ _ \ | | |`,
	` |  __/ (_| | |  | |  __/ |_| |`,
	` |_|   \__,_|_|  |_|\___|\__, |`,
	`                         |___/ `,
}

// Using a subtle gradient-like color scheme (Indigo/Violet)
var bannerColors = []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6", "#fb7185"}

// PrintBanner outputs the ASCII art banner for Parley, with the story title under it.
func PrintBanner(w io.Writer, title string) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, out.String(line).Foreground(out.Color(bannerColors[i])))
	}
	if title != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, out.String("  "+title).Bold())
	}
	fmt.Fprintln(w)
}

// Unavailable styles the marker of choices that cannot be taken.
func Unavailable(w io.Writer) func(string) string {
	out := termenv.NewOutput(w)
	return func(s string) string {
		return out.String(s).Faint().Foreground(out.Color("#fb7185")).String()
	}
}
