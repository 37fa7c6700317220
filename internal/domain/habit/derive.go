package habit

import "github.com/meganziesemer/taskapp-final/internal/dates"

// Streak counts consecutive completed calendar days ending at asOf, walking
// backwards one day at a time until the first gap. A habit not completed on
// asOf itself has a streak of zero.
func Streak(h Habit, asOf string) int {
	if !dates.Valid(asOf) {
		return 0
	}
	set := make(map[string]struct{}, len(h.CompletedDates))
	for _, d := range h.CompletedDates {
		set[d] = struct{}{}
	}

	streak := 0
	day := asOf
	for {
		if _, ok := set[day]; !ok {
			return streak
		}
		streak++
		prev, err := dates.AddDays(day, -1)
		if err != nil {
			return streak
		}
		day = prev
	}
}

// HeatmapDay is one bucket of the consistency grid.
type HeatmapDay struct {
	Date  string
	Count int
}

// Heatmap counts, for each day in [start, start+days), how many habits were
// completed that day. Every day in the window appears exactly once, in
// chronological order.
func Heatmap(habits []Habit, start string, days int) ([]HeatmapDay, error) {
	window, err := dates.Window(start, days)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, h := range habits {
		seen := make(map[string]struct{}, len(h.CompletedDates))
		for _, d := range h.CompletedDates {
			// Duplicates never occur in well-formed records; tolerate them
			// anyway so a bad record can't inflate the grid.
			if _, dup := seen[d]; dup {
				continue
			}
			seen[d] = struct{}{}
			counts[d]++
		}
	}

	out := make([]HeatmapDay, 0, len(window))
	for _, day := range window {
		out = append(out, HeatmapDay{Date: day, Count: counts[day]})
	}
	return out, nil
}
