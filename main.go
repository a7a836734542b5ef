package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gnomegl/gitcards/internal/art"
	"github.com/gnomegl/gitcards/internal/auth"
	gcli "github.com/gnomegl/gitcards/internal/cli"
	"github.com/gnomegl/gitcards/internal/config"
	"github.com/gnomegl/gitcards/internal/display"
	"github.com/gnomegl/gitcards/internal/github"
	"github.com/gnomegl/gitcards/internal/server"
	"github.com/gnomegl/gitcards/internal/service"
	"github.com/urfave/cli/v2"
)

func setupLogging(c *cli.Context) error {
	level := slog.LevelInfo
	if c.Bool("debug") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

func runServe(c *cli.Context) error {
	cfg, err := config.ParseConfig(c)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := server.Options{
		Addr:         cfg.Server.Addr,
		CacheSeconds: cfg.Server.CacheSeconds,
		Theme:        cfg.Card.Theme,
		Location:     loc,
		Metrics:      cfg.Server.Metrics,
		Logger:       slog.Default(),
	}

	var (
		source service.DataSource
		health server.HealthChecker
	)
	client, err := auth.SetupGitHubClient(ctx, cfg, false)
	switch {
	case errors.Is(err, auth.ErrNoToken):
		slog.Warn("no GitHub token configured, card routes will report an error")
		opts.Unconfigured = err.Error()
	case err != nil:
		return err
	default:
		source = client
		health = client
	}
	if opts.Unconfigured == "" && cfg.GitHub.Username == "" {
		slog.Warn("no GitHub username configured, card routes will report an error")
		opts.Unconfigured = "GITHUB_USERNAME not configured"
	}

	orch := service.NewOrchestrator(source, cfg.GitHub.Username, slog.Default())
	return server.New(orch, health, opts).Start(ctx)
}

// commandSetup prepares the shared state of the terminal commands.
func commandSetup(c *cli.Context) (context.Context, *config.AppConfig, *service.Orchestrator, display.Format, error) {
	format, err := display.ParseFormat(c.String("output"))
	if err != nil {
		return nil, nil, nil, "", err
	}

	cfg, err := config.ParseConfig(c)
	if err != nil {
		return nil, nil, nil, "", err
	}
	if cfg.GitHub.Username == "" {
		return nil, nil, nil, "", fmt.Errorf("GitHub username required: pass --user or set GITHUB_USERNAME")
	}
	cfg.ShowProgress = format == display.FormatText

	ctx := c.Context
	client, err := auth.SetupGitHubClient(ctx, cfg, false)
	if err != nil {
		return nil, nil, nil, "", err
	}

	if format == display.FormatText {
		art.PrintLogo(os.Stderr)
		auth.CheckLatestVersion(ctx, client, os.Stderr)
	}

	return ctx, cfg, service.NewOrchestrator(client, cfg.GitHub.Username, slog.Default()), format, nil
}

func runStats(c *cli.Context) error {
	ctx, _, orch, format, err := commandSetup(c)
	if err != nil {
		return err
	}

	stats, err := orch.Stats(ctx, time.Now())
	if err != nil {
		return err
	}

	switch format {
	case display.FormatJSON:
		return display.WriteJSON(os.Stdout, stats)
	case display.FormatCSV:
		return display.StatsCSV(os.Stdout, stats)
	}
	display.UserStats(os.Stdout, stats)
	return nil
}

func runLanguages(c *cli.Context) error {
	ctx, _, orch, format, err := commandSetup(c)
	if err != nil {
		return err
	}

	langs, err := orch.Languages(ctx)
	if err != nil {
		return err
	}

	switch format {
	case display.FormatJSON:
		return display.WriteJSON(os.Stdout, langs)
	case display.FormatCSV:
		return display.LanguagesCSV(os.Stdout, langs)
	}
	display.Languages(os.Stdout, orch.Username(), langs)
	return nil
}

func runStreak(c *cli.Context) error {
	ctx, cfg, orch, format, err := commandSetup(c)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	res, err := orch.Streak(ctx, time.Now().In(loc))
	if err != nil {
		return err
	}

	switch format {
	case display.FormatJSON:
		return display.WriteJSON(os.Stdout, res)
	case display.FormatCSV:
		return display.StreakCSV(os.Stdout, res)
	}
	display.Streak(os.Stdout, orch.Username(), res)
	return nil
}

func runLogin(c *cli.Context) error {
	token := c.Args().First()
	if token == "" {
		token = c.String("token")
	}
	if token == "" {
		return fmt.Errorf("usage: gitcards login <token>")
	}

	cfg, err := config.ParseConfig(c)
	if err != nil {
		return err
	}
	cfg.GitHub.Token = token
	cfg.GitHub.TokenFile = ""

	client, err := auth.SetupGitHubClient(c.Context, cfg, true)
	if err != nil {
		return err
	}
	limits, err := client.RateLimits(c.Context)
	if err != nil {
		return err
	}

	if err := github.SaveToken(token); err != nil {
		return err
	}
	color.Green("[+] Token saved")
	if limits.GraphQL != nil {
		fmt.Printf("%s %d/%d\n", color.WhiteString("GraphQL budget:"), limits.GraphQL.Remaining, limits.GraphQL.Limit)
	}
	return nil
}

func main() {
	app := gcli.NewApp(gcli.Actions{
		Before:    setupLogging,
		Serve:     runServe,
		Stats:     runStats,
		Languages: runLanguages,
		Streak:    runStreak,
		Login:     runLogin,
	})

	if err := app.Run(os.Args); err != nil {
		color.Red("[x] %v", err)
		os.Exit(1)
	}
}
