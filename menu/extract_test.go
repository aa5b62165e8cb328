package menu

import (
	"reflect"
	"testing"
	"time"
)

func TestExtractByDate(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "marker never found",
			lines: []string{"Lounaslista", "Tervetuloa", "Aukioloajat 10-14"},
			want:  nil,
		},
		{
			name: "window between today and tomorrow",
			lines: []string{
				"header junk",
				"Maanantai 3.9.",
				"  Lohikeitto ja ruisleipa  ",
				"Broileripasta talon tapaan",
				"Tiistai 4.9.",
				"Nakkikastike",
			},
			want: []string{"Lohikeitto ja ruisleipa", "Broileripasta talon tapaan"},
		},
		{
			name: "short fragment merges onto previous entry",
			lines: []string{
				"3.9.",
				"Lohikeitto ja ruisleipa",
				"9,50e",
				"Kasvispihvit puolukoilla",
				"4.9.",
			},
			want: []string{"Lohikeitto ja ruisleipa 9,50e", "Kasvispihvit puolukoilla"},
		},
		{
			name: "short multibyte fragment merges by character count",
			lines: []string{
				"3.9.",
				"Lohikeitto ja ruisleipä",
				"7,50 €",
				"4.9.",
			},
			want: []string{"Lohikeitto ja ruisleipä 7,50 €"},
		},
		{
			name: "short fragment with nothing to merge onto starts an entry",
			lines: []string{
				"3.9.",
				"9,50e",
				"Kasvispihvit puolukoilla",
			},
			want: []string{"9,50e", "Kasvispihvit puolukoilla"},
		},
		{
			name: "tomorrow before today yields empty",
			lines: []string{
				"4.9.",
				"Nakkikastike",
				"3.9.",
				"Lohikeitto ja ruisleipa",
			},
			want: nil,
		},
		{
			name: "runaway window stops after guard",
			lines: []string{
				"3.9.",
				"Entry number one", "Entry number two", "Entry number three",
				"Entry number four", "Entry number five", "Entry number six",
				"Entry number seven", "Entry number eight", "Entry number nine",
				"Entry number ten",
			},
			want: []string{
				"Entry number one", "Entry number two", "Entry number three",
				"Entry number four", "Entry number five", "Entry number six",
				"Entry number seven", "Entry number eight",
			},
		},
		{
			name: "empty lines inside the window are dropped",
			lines: []string{
				"3.9.",
				"",
				"Lohikeitto ja ruisleipa",
				"   ",
				"4.9.",
			},
			want: []string{"Lohikeitto ja ruisleipa"},
		},
		{
			name:  "first match locks in",
			lines: []string{"3.9.", "Lohikeitto ja ruisleipa", "3.9.", "Nakkikastike aterialla", "4.9."},
			want:  []string{"Lohikeitto ja ruisleipa", "Nakkikastike aterialla"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractByDate(tt.lines, "3.9.", "4.9.")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractByDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractByWeekday(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "marker never found",
			lines: []string{"Lounaslista", "Tervetuloa"},
			want:  nil,
		},
		{
			name: "window between today and tomorrow",
			lines: []string{
				"Maanantai",
				"Lohikeitto",
				"Broileripasta",
				"Tiistai",
				"Nakkikastike",
			},
			want: []string{"Lohikeitto", "Broileripasta"},
		},
		{
			name:  "case-insensitive match",
			lines: []string{"MAANANTAI", "Lohikeitto", "TIISTAI"},
			want:  []string{"Lohikeitto"},
		},
		{
			name: "second occurrence resets and wins",
			lines: []string{
				"Maanantai",
				"Vanha lista",
				"Maanantai",
				"Uusi lista",
				"Tiistai",
			},
			want: []string{"Uusi lista"},
		},
		{
			name: "no merge heuristic for short lines",
			lines: []string{
				"maanantai",
				"Lohikeitto",
				"9,50e",
				"tiistai",
			},
			want: []string{"Lohikeitto", "9,50e"},
		},
		{
			name: "today heading after stop restarts collection",
			lines: []string{
				"maanantai",
				"Aamun lista",
				"tiistai",
				"Huomisen lista",
				"maanantai",
				"Paivitetty lista",
			},
			want: []string{"Paivitetty lista"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractByWeekday(tt.lines, "maanantai", "tiistai")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractByWeekday() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDateMarker(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2012, time.September, 3, 0, 0, 0, 0, time.UTC), "3.9."},
		{time.Date(2012, time.October, 31, 0, 0, 0, 0, time.UTC), "31.10."},
		{time.Date(2012, time.January, 1, 0, 0, 0, 0, time.UTC), "1.1."},
	}
	for _, tt := range tests {
		if got := DateMarker(tt.date); got != tt.want {
			t.Errorf("DateMarker(%v) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestWeekdayName(t *testing.T) {
	// 2012-09-02 was a Sunday; walk the whole week.
	want := []string{
		"sunnuntai", "maanantai", "tiistai", "keskiviikko",
		"torstai", "perjantai", "lauantai",
	}
	start := time.Date(2012, time.September, 2, 0, 0, 0, 0, time.UTC)
	for i, name := range want {
		d := start.AddDate(0, 0, i)
		if got := WeekdayName(d); got != name {
			t.Errorf("WeekdayName(%v) = %q, want %q", d, got, name)
		}
	}
}
