// Package menu locates today's lunch menu inside scraped restaurant pages.
package menu

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Strategy selects how a PageSource finds today's section in page text.
type Strategy string

const (
	// ByDate matches daily headings printed as "D.M." date literals.
	ByDate Strategy = "date"
	// ByWeekday matches daily headings printed as Finnish weekday names.
	ByWeekday Strategy = "weekday"
)

// ParseStrategy validates a strategy name from configuration.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(s)) {
	case ByDate:
		return ByDate, nil
	case ByWeekday:
		return ByWeekday, nil
	}
	return "", fmt.Errorf("unknown extraction strategy %q", s)
}

// Fetcher retrieves a URL and converts the response body to plain-text
// lines. Implemented by fetch.Client; stubbed in tests.
type Fetcher interface {
	Lines(ctx context.Context, url string) ([]string, error)
}

// Source produces the menu lines for one place a menu may be published.
// An empty result with a nil error means no menu is available today.
type Source interface {
	Menu(ctx context.Context) ([]string, error)
}

// PageSource scrapes one web page and extracts today's section with the
// configured strategy. Every call fetches fresh; menus change, so results
// are never cached.
type PageSource struct {
	URL      string
	Strategy Strategy
	Fetcher  Fetcher

	// Now is the clock used to compute the today/tomorrow markers.
	// Nil means time.Now.
	Now func() time.Time
}

// Menu fetches the page and extracts today's menu lines.
func (s *PageSource) Menu(ctx context.Context) ([]string, error) {
	lines, err := s.Fetcher.Lines(ctx, s.URL)
	if err != nil {
		return nil, err
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	today := now()
	tomorrow := today.AddDate(0, 0, 1)

	switch s.Strategy {
	case ByWeekday:
		return ExtractByWeekday(lines, WeekdayName(today), WeekdayName(tomorrow)), nil
	default:
		return ExtractByDate(lines, DateMarker(today), DateMarker(tomorrow)), nil
	}
}

// WeekURLSource is for places that publish the menu as one document per
// week (e.g. a PDF). It performs no fetch at all: the result is a single
// line, the template formatted with the current ISO week number.
type WeekURLSource struct {
	// Template is a format string with one %d verb for the week number.
	Template string

	// Now is the clock used to compute the week number. Nil means time.Now.
	Now func() time.Time
}

// Menu returns the templated URL as a one-line result.
func (s *WeekURLSource) Menu(ctx context.Context) ([]string, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	_, week := now().ISOWeek()
	return []string{fmt.Sprintf(s.Template, week)}, nil
}

// Restaurant is a named, ordered list of fallback sources. Immutable after
// construction.
type Restaurant struct {
	Name    string
	Sources []Source
}

// Menu returns the first non-empty result among the restaurant's sources,
// or an empty result if every source fails or comes back empty. A failing
// source is logged and treated as empty so it never blocks fallback.
func (r *Restaurant) Menu(ctx context.Context) []string {
	for _, src := range r.Sources {
		lines, err := src.Menu(ctx)
		if err != nil {
			slog.Debug("menu source failed", "restaurant", r.Name, "error", err)
			continue
		}
		if len(lines) > 0 {
			return lines
		}
	}
	return nil
}

// Match reports whether the restaurant name contains the keyword,
// case-insensitively.
func (r *Restaurant) Match(keyword string) bool {
	return strings.Contains(strings.ToLower(r.Name), strings.ToLower(keyword))
}
