package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gnomegl/gitcards/internal/card"
	"github.com/gnomegl/gitcards/internal/metrics"
	"github.com/gnomegl/gitcards/internal/service"
)

const notFoundMessage = "Not Found: Use /, /languages, or /streak"

type queryParams struct {
	Theme      string
	HideBorder bool
	HideTitle  bool
	HideRank   bool
	ShowIcons  bool
	LineHeight int
	Layout     card.Layout
	LangsCount int
}

func parseQueryParams(q url.Values, defaultTheme string) queryParams {
	p := queryParams{
		Theme:      q.Get("theme"),
		HideBorder: q.Get("hide_border") == "true",
		HideTitle:  q.Get("hide_title") == "true",
		HideRank:   q.Get("hide_rank") == "true",
		ShowIcons:  q.Get("show_icons") != "false",
		LineHeight: intParam(q, "line_height", 25),
		Layout:     card.ParseLayout(q.Get("layout")),
		LangsCount: min(max(intParam(q, "langs_count", 6), 1), 10),
	}
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	return p
}

func intParam(q url.Values, key string, def int) int {
	v, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return def
	}
	return v
}

type renderFunc func(r *http.Request, p queryParams) (string, error)

func (s *Server) cardHandler(name string, render renderFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			metrics.CardDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		}()

		if s.opts.Unconfigured != "" {
			s.writeError(w, r, name, s.opts.Unconfigured, http.StatusInternalServerError)
			return
		}

		svg, err := render(r, parseQueryParams(r.URL.Query(), s.opts.Theme))
		if err != nil {
			loggerFrom(r.Context(), s.logger).Error("error generating card", "card", name, "error", err)
			s.writeError(w, r, name, cardMessage(err), http.StatusInternalServerError)
			return
		}

		metrics.CardRequestsTotal.WithLabelValues(name, strconv.Itoa(http.StatusOK)).Inc()
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", s.opts.CacheSeconds))
		w.Header().Set("Access-Control-Allow-Origin", "*")
		fmt.Fprint(w, svg)
	}
}

// cardMessage is the source error without the orchestrator's step and
// username prefix. The full error is logged.
func cardMessage(err error) string {
	var opErr *service.OpError
	if errors.As(err, &opErr) && opErr.Err != nil {
		return opErr.Err.Error()
	}
	return err.Error()
}

func (s *Server) renderStats(r *http.Request, p queryParams) (string, error) {
	stats, err := s.cards.Stats(r.Context(), s.opts.Now())
	if err != nil {
		return "", err
	}
	return card.StatsCard(stats, card.GetTheme(p.Theme), card.StatsOptions{
		HideBorder: p.HideBorder,
		HideTitle:  p.HideTitle,
		HideRank:   p.HideRank,
		ShowIcons:  p.ShowIcons,
		LineHeight: p.LineHeight,
	}), nil
}

func (s *Server) renderLanguages(r *http.Request, p queryParams) (string, error) {
	langs, err := s.cards.Languages(r.Context())
	if err != nil {
		return "", err
	}
	return card.LanguagesCard(langs, card.GetTheme(p.Theme), card.LanguagesOptions{
		HideBorder: p.HideBorder,
		HideTitle:  p.HideTitle,
		Layout:     p.Layout,
		LangsCount: p.LangsCount,
	}), nil
}

func (s *Server) renderStreak(r *http.Request, p queryParams) (string, error) {
	res, err := s.cards.Streak(r.Context(), s.today())
	if err != nil {
		return "", err
	}
	return card.StreakCard(res, card.GetTheme(p.Theme), card.StreakOptions{
		HideBorder: p.HideBorder,
		HideTitle:  p.HideTitle,
	}), nil
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if s.opts.Unconfigured != "" {
		s.writeError(w, r, "unknown", s.opts.Unconfigured, http.StatusInternalServerError)
		return
	}
	s.writeError(w, r, "unknown", notFoundMessage, http.StatusNotFound)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, name, message string, status int) {
	metrics.CardRequestsTotal.WithLabelValues(name, strconv.Itoa(status)).Inc()
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if _, err := fmt.Fprint(w, card.ErrorCard(message)); err != nil {
		loggerFrom(r.Context(), s.logger).Debug("error writing error card", slog.Any("error", err))
	}
}
