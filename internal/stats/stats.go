// Package stats derives breakdowns and totals from a backlog snapshot.
//
// Compute is a pure function: the same snapshot and year always give the
// same Statistics. The year for the monthly histogram is passed in rather
// than read from the clock.
package stats

import (
	"sort"
	"strconv"

	"github.com/sadopc/backlogr/internal/backlog"
)

type Totals struct {
	Completed         int // Completed + Hundred
	InProgress        int
	NotStarted        int
	OnHold            int
	Hundred           int
	TotalGames        int
	CompletionPercent float64
}

type Statistics struct {
	Year          int
	StatusCount   map[backlog.Status]int
	PlatformCount map[backlog.Platform]int
	YearCount     map[string]int
	MonthCount    map[string]int // keyed by backlog.Months, Year only
	Totals        Totals
}

// Compute builds Statistics for b. Records with an unknown status still count
// towards their platform and TotalGames but not towards any status bucket.
func Compute(b backlog.Backlog, currentYear int) Statistics {
	s := Statistics{
		Year:          currentYear,
		StatusCount:   make(map[backlog.Status]int, len(backlog.Statuses)),
		PlatformCount: make(map[backlog.Platform]int, len(backlog.Platforms)),
		YearCount:     make(map[string]int),
		MonthCount:    make(map[string]int, len(backlog.Months)),
	}
	for _, st := range backlog.Statuses {
		s.StatusCount[st] = 0
	}
	for _, m := range backlog.Months {
		s.MonthCount[m] = 0
	}
	year := strconv.Itoa(currentYear)

	for _, p := range backlog.Platforms {
		games := b.Games[p]
		s.PlatformCount[p] = len(games)
		s.Totals.TotalGames += len(games)

		for _, g := range games {
			if g.Status.Valid() {
				s.StatusCount[g.Status]++
			}
			if g.Year != "" {
				s.YearCount[g.Year]++
			}
			if g.Year == year && g.Month != "" {
				if _, ok := s.MonthCount[g.Month]; ok {
					s.MonthCount[g.Month]++
				}
			}
		}
	}

	t := &s.Totals
	t.Hundred = s.StatusCount[backlog.Hundred]
	t.Completed = s.StatusCount[backlog.Completed] + t.Hundred
	t.InProgress = s.StatusCount[backlog.InProgress]
	t.NotStarted = s.StatusCount[backlog.NotStarted]
	t.OnHold = s.StatusCount[backlog.OnHold]
	if t.TotalGames > 0 {
		t.CompletionPercent = 100 * float64(t.Completed) / float64(t.TotalGames)
	}
	return s
}

// YearsDescending returns the keys of YearCount, newest first. Keys that are
// not numbers sort after the numeric ones.
func (s Statistics) YearsDescending() []string {
	years := make([]string, 0, len(s.YearCount))
	for y := range s.YearCount {
		years = append(years, y)
	}
	sort.Slice(years, func(i, j int) bool {
		a, errA := strconv.Atoi(years[i])
		b, errB := strconv.Atoi(years[j])
		switch {
		case errA == nil && errB == nil:
			return a > b
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return years[i] > years[j]
	})
	return years
}

// MonthValues returns the monthly histogram in calendar order.
func (s Statistics) MonthValues() []int {
	values := make([]int, len(backlog.Months))
	for i, m := range backlog.Months {
		values[i] = s.MonthCount[m]
	}
	return values
}
