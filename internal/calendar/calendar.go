// Package calendar builds the month view used by the production schedule.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// GridCells is six Sunday-first weeks.
const GridCells = 42

const isoLayout = "2006-01-02"

// Cell is one day slot in the month grid.
type Cell struct {
	ISO     string `json:"iso"`
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	Day     int    `json:"day"`
	InMonth bool   `json:"in_month"`
}

// MonthGrid returns the 42 cells covering month (1-12) of year, padded with
// the tail of the previous month and the head of the next.
func MonthGrid(year, month int) []Cell {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	cells := make([]Cell, 0, GridCells)
	for i := 0; i < GridCells; i++ {
		d := start.AddDate(0, 0, i)
		cells = append(cells, Cell{
			ISO:     d.Format(isoLayout),
			Year:    d.Year(),
			Month:   int(d.Month()),
			Day:     d.Day(),
			InMonth: d.Month() == first.Month() && d.Year() == first.Year(),
		})
	}
	return cells
}

// Shift moves year/month by delta months.
func Shift(year, month, delta int) (int, int) {
	t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return t.Year(), int(t.Month())
}

// ParseDate validates an ISO (YYYY-MM-DD) date and returns it normalized.
func ParseDate(raw string) (string, error) {
	t, err := time.Parse(isoLayout, raw)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: want YYYY-MM-DD", raw)
	}
	return t.Format(isoLayout), nil
}

// Entry is one scheduled task for an estimate.
type Entry struct {
	ID         string `json:"id"`
	EstimateID string `json:"estimate_id"`
	Date       string `json:"date"`
	Task       string `json:"task"`
	Done       bool   `json:"done"`
}

// SortEntries orders entries by date, then by task using Japanese collation.
func SortEntries(entries []Entry) {
	col := collate.New(language.Japanese)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return col.CompareString(entries[i].Task, entries[j].Task) < 0
	})
}

// CountByDate returns how many entries fall on each ISO date.
func CountByDate(entries []Entry) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.Date]++
	}
	return counts
}

// Day is a grid cell with its schedule badge count.
type Day struct {
	Cell
	Count int `json:"count"`
}

// Month is the rendered calendar for one month.
type Month struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Days    []Day   `json:"days"`
	Entries []Entry `json:"entries"`
}

// BuildMonth lays entries over the month grid. Entries are sorted in place.
func BuildMonth(year, month int, entries []Entry) Month {
	SortEntries(entries)
	counts := CountByDate(entries)

	cells := MonthGrid(year, month)
	days := make([]Day, len(cells))
	for i, c := range cells {
		days[i] = Day{Cell: c, Count: counts[c.ISO]}
	}

	if entries == nil {
		entries = []Entry{}
	}
	return Month{Year: year, Month: month, Days: days, Entries: entries}
}
