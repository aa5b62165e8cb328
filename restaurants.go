package main

import (
	"strings"

	"lunchbot/config"
	"lunchbot/menu"
)

// buildRestaurants turns the configuration's restaurant table into menu
// objects, sharing one fetch client across all page sources.
func buildRestaurants(cfgs []config.RestaurantConfig, fetcher menu.Fetcher) []*menu.Restaurant {
	restaurants := make([]*menu.Restaurant, 0, len(cfgs))
	for _, rc := range cfgs {
		sources := make([]menu.Source, 0, len(rc.Sources))
		for _, sc := range rc.Sources {
			sources = append(sources, buildSource(sc, fetcher))
		}
		restaurants = append(restaurants, &menu.Restaurant{Name: rc.Name, Sources: sources})
	}
	return restaurants
}

// buildSource maps one source config entry to its implementation.
// Strategy names are validated at config load, so the fallthrough here
// only ever sees "date" and "weekday".
func buildSource(sc config.SourceConfig, fetcher menu.Fetcher) menu.Source {
	if strings.EqualFold(sc.Strategy, "week_url") {
		return &menu.WeekURLSource{Template: sc.URL}
	}
	strategy, _ := menu.ParseStrategy(sc.Strategy)
	return &menu.PageSource{URL: sc.URL, Strategy: strategy, Fetcher: fetcher}
}
