package project

import "sort"

// Partition splits a project's tasks into pending and completed, preserving
// the original sequence order within each part.
func Partition(p Project) (pending, completed []Task) {
	for _, t := range p.Tasks {
		if t.IsCompleted {
			completed = append(completed, t)
		} else {
			pending = append(pending, t)
		}
	}
	return pending, completed
}

// AggregateCounts sums pending and completed tasks across all projects. It is
// always recomputed from the snapshot; no incremental counters exist to drift.
func AggregateCounts(projects []Project) (pending, completed int) {
	for _, p := range projects {
		for _, t := range p.Tasks {
			if t.IsCompleted {
				completed++
			} else {
				pending++
			}
		}
	}
	return pending, completed
}

// TaskRef is a task annotated with its project's display attributes, for
// cross-project listings such as the calendar.
type TaskRef struct {
	Task
	ProjectName  string
	ProjectColor string
}

// DueOn returns every task due on the given calendar day, in project display
// order then task order.
func DueOn(projects []Project, day string) []TaskRef {
	var out []TaskRef
	for _, p := range projects {
		for _, t := range p.Tasks {
			if t.DueDate == day {
				out = append(out, TaskRef{Task: t, ProjectName: p.Name, ProjectColor: p.Color})
			}
		}
	}
	return out
}

// SortForDisplay orders projects needs_action first, then by name. The order
// is deterministic for identical data so reloads don't reshuffle the view.
func SortForDisplay(projects []Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		if projects[i].statusRank() != projects[j].statusRank() {
			return projects[i].statusRank() < projects[j].statusRank()
		}
		return projects[i].Name < projects[j].Name
	})
}
