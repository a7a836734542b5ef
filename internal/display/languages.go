package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gnomegl/gitcards/internal/models"
	"golang.org/x/term"
)

const defaultTermWidth = 80

// graphWidth sizes language bars to the terminal, between 10 and 50 cells.
func graphWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = defaultTermWidth
	}
	return max(min(width-30, 50), 10)
}

func Languages(w io.Writer, username string, langs []models.LanguageStat) {
	LanguagesWidth(w, username, langs, graphWidth())
}

func LanguagesWidth(w io.Writer, username string, langs []models.LanguageStat, width int) {
	fmt.Fprintln(w)
	headerColor.Fprintf(w, "MOST USED LANGUAGES: %s\n", username)
	fmt.Fprintln(w, strings.Repeat("-", width+28))

	if len(langs) == 0 {
		color.New(color.FgYellow).Fprintln(w, "No languages found")
		return
	}

	nameWidth := 0
	for _, l := range langs {
		nameWidth = max(nameWidth, len(l.Name))
	}

	for _, l := range langs {
		filled := int(l.Percentage / 100 * float64(width))
		if l.Percentage > 0 && filled == 0 {
			filled = 1
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
		fmt.Fprintf(w, "%-*s %s %6.2f%%\n", nameWidth, l.Name, valueColor.Sprint(bar), l.Percentage)
	}
	fmt.Fprintln(w)
}
