package card

import "fmt"

// MaxErrorLength bounds the message shown on an error card.
const MaxErrorLength = 60

func ErrorCard(message string) string {
	if r := []rune(message); len(r) > MaxErrorLength {
		message = string(r[:MaxErrorLength])
	}
	return fmt.Sprintf(`<svg width="400" height="100" viewBox="0 0 400 100" xmlns="http://www.w3.org/2000/svg">
  <rect x="0" y="0" width="400" height="100" rx="4.5" fill="#0d1117"/>
  <rect x="0.5" y="0.5" width="399" height="99" rx="4.5" fill="none" stroke="#f85149"/>
  <text x="200" y="40" text-anchor="middle" fill="#f85149" font-family="%[1]s" font-size="14" font-weight="600">Error</text>
  <text x="200" y="65" text-anchor="middle" fill="#c9d1d9" font-family="%[1]s" font-size="12">%[2]s</text>
</svg>`, fontFamily, EscapeXML(message))
}
