package menu

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// Maximum number of lines collected from one menu section. Pages that
	// never print the next day's heading would otherwise swallow the whole
	// rest of the document.
	maxWindowLines = 7

	// Trimmed lines with fewer characters than this are assumed to be a
	// price or similar fragment and are merged onto the previous entry.
	// Counted in runes, not bytes; prices like "7,50 €" must still merge.
	mergeThreshold = 8
)

// finnishWeekdays maps time.Weekday (Sunday = 0) to the lowercase Finnish
// weekday name used as a section heading on several restaurant pages.
var finnishWeekdays = [7]string{
	time.Sunday:    "sunnuntai",
	time.Monday:    "maanantai",
	time.Tuesday:   "tiistai",
	time.Wednesday: "keskiviikko",
	time.Thursday:  "torstai",
	time.Friday:    "perjantai",
	time.Saturday:  "lauantai",
}

// DateMarker formats a date as "D.M." with no leading zeros, the way
// Finnish lunch pages print daily headings (e.g. "3.9.").
func DateMarker(t time.Time) string {
	return fmt.Sprintf("%d.%d.", t.Day(), int(t.Month()))
}

// WeekdayName returns the lowercase Finnish weekday name for a date.
func WeekdayName(t time.Time) string {
	return finnishWeekdays[t.Weekday()]
}

// ExtractByDate collects the lines between a heading containing todayMarker
// and the next heading containing tomorrowMarker.
//
// Lines before the today heading are ignored and the heading line itself is
// not part of the result. Collection stops for good at the tomorrow heading
// or once more than maxWindowLines lines have been collected; the stop test
// runs on every line, so a tomorrow heading seen before the today heading
// yields an empty result. Collected lines are whitespace-trimmed, empty
// lines are dropped, and short fragments are merged onto the previous entry.
func ExtractByDate(lines []string, todayMarker, tomorrowMarker string) []string {
	var result []string
	collecting := false

	for _, line := range lines {
		if strings.Contains(line, todayMarker) {
			collecting = true
			continue
		}
		if strings.Contains(line, tomorrowMarker) || len(result) > maxWindowLines {
			break
		}

		line = strings.TrimSpace(line)
		if !collecting || line == "" {
			continue
		}
		if utf8.RuneCountInString(line) < mergeThreshold && len(result) > 0 {
			result[len(result)-1] += " " + line
		} else {
			result = append(result, line)
		}
	}

	return result
}

// ExtractByWeekday collects the lines between the today and tomorrow weekday
// headings, compared case-insensitively.
//
// Unlike ExtractByDate this restarts on every occurrence of the today
// heading: the result is reset and collection begins again, so the last
// matching section wins. A tomorrow heading or an over-long section stops
// collection without discarding what was collected, and scanning continues
// so a later today heading can still reset. No merge heuristic is applied.
func ExtractByWeekday(lines []string, todayName, tomorrowName string) []string {
	todayName = strings.ToLower(todayName)
	tomorrowName = strings.ToLower(tomorrowName)

	var result []string
	collecting := false

	for _, line := range lines {
		low := strings.ToLower(line)
		if strings.Contains(low, todayName) {
			collecting = true
			result = nil
			continue
		}
		if strings.Contains(low, tomorrowName) || len(result) > maxWindowLines {
			collecting = false
		}

		line = strings.TrimSpace(line)
		if collecting && line != "" {
			result = append(result, line)
		}
	}

	return result
}
