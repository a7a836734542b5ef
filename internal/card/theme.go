package card

import "strings"

type Theme struct {
	Background    string
	Border        string
	Title         string
	Text          string
	Icon          string
	Ring          string
	RankCircle    string
	RankText      string
	ProgressBar   string
	ProgressBarBg string
}

const DefaultTheme = "dark"

var themes = map[string]Theme{
	"dark": {
		Background:    "#0d1117",
		Border:        "#30363d",
		Title:         "#58a6ff",
		Text:          "#c9d1d9",
		Icon:          "#8b949e",
		Ring:          "#58a6ff",
		RankCircle:    "#58a6ff",
		RankText:      "#c9d1d9",
		ProgressBar:   "#58a6ff",
		ProgressBarBg: "#21262d",
	},
	"light": {
		Background:    "#ffffff",
		Border:        "#e4e2e2",
		Title:         "#0366d6",
		Text:          "#24292e",
		Icon:          "#586069",
		Ring:          "#0366d6",
		RankCircle:    "#0366d6",
		RankText:      "#24292e",
		ProgressBar:   "#0366d6",
		ProgressBarBg: "#e1e4e8",
	},
	"dracula": {
		Background:    "#282a36",
		Border:        "#44475a",
		Title:         "#ff79c6",
		Text:          "#f8f8f2",
		Icon:          "#bd93f9",
		Ring:          "#ff79c6",
		RankCircle:    "#bd93f9",
		RankText:      "#f8f8f2",
		ProgressBar:   "#ff79c6",
		ProgressBarBg: "#44475a",
	},
	"nord": {
		Background:    "#2e3440",
		Border:        "#4c566a",
		Title:         "#88c0d0",
		Text:          "#eceff4",
		Icon:          "#81a1c1",
		Ring:          "#88c0d0",
		RankCircle:    "#88c0d0",
		RankText:      "#eceff4",
		ProgressBar:   "#88c0d0",
		ProgressBarBg: "#3b4252",
	},
	"tokyonight": {
		Background:    "#1a1b26",
		Border:        "#414868",
		Title:         "#70a5fd",
		Text:          "#a9b1d6",
		Icon:          "#9ece6a",
		Ring:          "#70a5fd",
		RankCircle:    "#bb9af7",
		RankText:      "#a9b1d6",
		ProgressBar:   "#70a5fd",
		ProgressBarBg: "#24283b",
	},
}

// GetTheme looks the name up case-insensitively, falling back to dark.
func GetTheme(name string) Theme {
	if t, ok := themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t
	}
	return themes[DefaultTheme]
}

func HasTheme(name string) bool {
	_, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
