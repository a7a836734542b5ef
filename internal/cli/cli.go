package cli

import (
	"github.com/gnomegl/gitcards/internal/utils"
	"github.com/urfave/cli/v2"
)

// Actions are the command bodies, supplied by main.
type Actions struct {
	Serve     cli.ActionFunc
	Stats     cli.ActionFunc
	Languages cli.ActionFunc
	Streak    cli.ActionFunc
	Login     cli.ActionFunc
	Before    cli.BeforeFunc
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output format (text, json, csv)",
		Value:   "text",
	}
}

func NewApp(actions Actions) *cli.App {
	return &cli.App{
		Name:    "gitcards",
		Usage:   "Serve GitHub stats, top languages and contribution streak cards as SVG",
		Version: "v" + utils.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "token",
				Aliases: []string{"t"},
				Usage:   "GitHub personal access token",
				EnvVars: []string{"GITCARDS_GITHUB_TOKEN", "GITHUB_TOKEN"},
			},
			&cli.StringFlag{
				Name:    "user",
				Aliases: []string{"u"},
				Usage:   "GitHub username the cards describe",
				EnvVars: []string{"GITCARDS_GITHUB_USERNAME", "GITHUB_USERNAME"},
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config.toml",
				EnvVars: []string{"GITCARDS_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "token-file",
				Usage: "File with one GitHub token per line, pooled by remaining rate limit",
			},
			&cli.StringFlag{
				Name:  "proxy-file",
				Usage: "File with one proxy URL per line, assigned to pooled tokens in turn",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before: actions.Before,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the cards over HTTP",
				Action: actions.Serve,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "Listen address",
						EnvVars: []string{"GITCARDS_ADDR"},
					},
					&cli.StringFlag{
						Name:  "theme",
						Usage: "Theme used when a request names none",
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Print profile stats and rank",
				Action: actions.Stats,
				Flags:  []cli.Flag{outputFlag()},
			},
			{
				Name:   "languages",
				Usage:  "Print the most used languages",
				Action: actions.Languages,
				Flags:  []cli.Flag{outputFlag()},
			},
			{
				Name:   "streak",
				Usage:  "Print the current and longest contribution streaks",
				Action: actions.Streak,
				Flags:  []cli.Flag{outputFlag()},
			},
			{
				Name:      "login",
				Usage:     "Validate a token and save it for later runs",
				ArgsUsage: "[token]",
				Action:    actions.Login,
			},
		},
		Authors: []*cli.Author{
			{Name: "gnomegl"},
		},
	}
}
