package card

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const fontFamily = "'Segoe UI', Ubuntu, Sans-Serif"

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func EscapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// FormatNumber abbreviates to one decimal: 1.2k, 3.4M.
func FormatNumber(n int) string {
	switch {
	case n >= 1000000:
		return strconv.FormatFloat(float64(n)/1000000, 'f', 1, 64) + "M"
	case n >= 1000:
		return strconv.FormatFloat(float64(n)/1000, 'f', 1, 64) + "k"
	}
	return strconv.Itoa(n)
}

var englishPrinter = message.NewPrinter(language.English)

// FormatThousands groups digits with commas, e.g. 12,345.
func FormatThousands(n int) string {
	return englishPrinter.Sprintf("%d", n)
}

// FormatDateRange renders streak bounds the way the streak card shows them.
func FormatDateRange(start, end *time.Time) string {
	if start == nil || end == nil {
		return "N/A"
	}
	s, e := *start, *end

	if s.Equal(e) {
		return fmt.Sprintf("%s %d", s.Format("Jan"), s.Day())
	}
	if s.Year() == e.Year() {
		if s.Month() == e.Month() {
			return fmt.Sprintf("%s %d - %d", s.Format("Jan"), s.Day(), e.Day())
		}
		return fmt.Sprintf("%s %d - %s %d", s.Format("Jan"), s.Day(), e.Format("Jan"), e.Day())
	}
	return fmt.Sprintf("%s %d, %d - %s %d, %d", s.Format("Jan"), s.Day(), s.Year(), e.Format("Jan"), e.Day(), e.Year())
}

// num prints coordinates without trailing zeros.
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func border(b *strings.Builder, theme Theme, width, height int, hide bool) {
	if hide {
		return
	}
	fmt.Fprintf(b, `  <rect x="0.5" y="0.5" rx="4.5" ry="4.5" width="%d" height="%d" fill="none" stroke="%s"/>`+"\n",
		width-1, height-1, theme.Border)
}

func openSVG(b *strings.Builder, width, height int, style string, theme Theme) {
	fmt.Fprintf(b, `<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`+"\n",
		width, height, width, height)
	b.WriteString("  <style>\n")
	b.WriteString(style)
	b.WriteString("  </style>\n")
	fmt.Fprintf(b, `  <rect x="0" y="0" rx="4.5" ry="4.5" width="%d" height="%d" fill="%s"/>`+"\n",
		width, height, theme.Background)
}

func closeSVG(b *strings.Builder) string {
	b.WriteString("</svg>")
	return b.String()
}
