package project_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meganziesemer/taskapp-final/internal/domain/project"
)

func proj(name string, status project.Status, tasks ...project.Task) project.Project {
	return project.Project{ID: "id-" + name, Name: name, Status: status, Tasks: tasks}
}

func task(id string, completed bool) project.Task {
	return project.Task{ID: id, Title: "t-" + id, IsCompleted: completed}
}

func TestPartition_TotalsAndOrder(t *testing.T) {
	p := proj("p", project.StatusNeedsAction,
		task("a", false), task("b", true), task("c", false), task("d", true))

	pending, completed := project.Partition(p)
	require.Len(t, pending, 2)
	require.Len(t, completed, 2)
	require.Equal(t, len(p.Tasks), len(pending)+len(completed))

	// Stable: original sequence order preserved within each part.
	require.Equal(t, "a", pending[0].ID)
	require.Equal(t, "c", pending[1].ID)
	require.Equal(t, "b", completed[0].ID)
	require.Equal(t, "d", completed[1].ID)

	// No task in both partitions.
	for _, pt := range pending {
		for _, ct := range completed {
			require.NotEqual(t, pt.ID, ct.ID)
		}
	}
}

func TestPartition_Empty(t *testing.T) {
	pending, completed := project.Partition(project.Project{})
	require.Empty(t, pending)
	require.Empty(t, completed)
}

func TestAggregateCounts(t *testing.T) {
	projects := []project.Project{
		proj("a", project.StatusNeedsAction, task("1", false), task("2", true)),
		proj("b", project.StatusCaughtUp, task("3", false), task("4", false)),
		proj("c", project.StatusCaughtUp),
	}

	pending, completed := project.AggregateCounts(projects)
	require.Equal(t, 3, pending)
	require.Equal(t, 1, completed)
}

func TestAggregateCounts_RecomputesAfterMutation(t *testing.T) {
	projects := []project.Project{proj("a", project.StatusNeedsAction, task("1", false))}
	priorPending, priorCompleted := project.AggregateCounts(projects)

	// Add three tasks, then mark one complete.
	projects[0].Tasks = append(projects[0].Tasks, task("2", false), task("3", false), task("4", false))
	projects[0].Tasks[1].IsCompleted = true

	pending, completed := project.AggregateCounts(projects)
	require.Equal(t, priorPending+2, pending)
	require.Equal(t, priorCompleted+1, completed)
}

func TestDueOn(t *testing.T) {
	p1 := proj("alpha", project.StatusNeedsAction,
		project.Task{ID: "t1", DueDate: "2025-06-01"},
		project.Task{ID: "t2", DueDate: "2025-06-02"})
	p1.Color = "#3b82f6"
	p2 := proj("beta", project.StatusCaughtUp,
		project.Task{ID: "t3", DueDate: "2025-06-01", IsCompleted: true})

	due := project.DueOn([]project.Project{p1, p2}, "2025-06-01")
	require.Len(t, due, 2)
	require.Equal(t, "t1", due[0].ID)
	require.Equal(t, "alpha", due[0].ProjectName)
	require.Equal(t, "#3b82f6", due[0].ProjectColor)
	require.Equal(t, "t3", due[1].ID)

	require.Empty(t, project.DueOn([]project.Project{p1, p2}, "2025-06-03"))
}

func TestSortForDisplay(t *testing.T) {
	projects := []project.Project{
		proj("zeta", project.StatusCaughtUp),
		proj("beta", project.StatusNeedsAction),
		proj("alpha", project.StatusCaughtUp),
		// Legacy record with no status sorts with needs_action.
		proj("mid", ""),
	}

	project.SortForDisplay(projects)

	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.Name
	}
	require.Equal(t, []string{"beta", "mid", "alpha", "zeta"}, names)
}

func TestClone_DoesNotAliasTasks(t *testing.T) {
	p := proj("a", project.StatusNeedsAction, task("1", false))
	c := p.Clone()
	c.Tasks[0].Title = "changed"
	require.Equal(t, "t-1", p.Tasks[0].Title)
}
