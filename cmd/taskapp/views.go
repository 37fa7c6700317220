package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/meganziesemer/taskapp-final/internal/dates"
	"github.com/meganziesemer/taskapp-final/internal/domain/habit"
	"github.com/meganziesemer/taskapp-final/internal/domain/project"
	"github.com/meganziesemer/taskapp-final/internal/sync"
)

func addWatch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the store and log every applied snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			a, err := newApp()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a.controller.OnChange(func(snap sync.Snapshot) {
				pending, completed := project.AggregateCounts(snap.Projects)
				a.logger.Info("snapshot applied",
					"projects", len(snap.Projects),
					"habits", len(snap.Habits),
					"open_tasks", pending,
					"completed_tasks", completed,
				)
			})

			if err := a.controller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			a.logger.Info("shutting down")
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addSummary(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show projects, task totals, habit streaks and year progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.controller.Refresh(cmd.Context()); err != nil {
				return err
			}
			printSummary(a.controller.Snapshot())
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func printSummary(snap sync.Snapshot) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	_, _ = bold.Fprintln(color.Output, "Projects")
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("ID", "NAME", "STATUS", "OPEN", "DONE")
	for _, p := range snap.Projects {
		pending, completed := project.Partition(p)
		tbl.AddRow(shortID(p.ID), p.Name, string(p.Status), len(pending), len(completed))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)

	pending, completed := project.AggregateCounts(snap.Projects)
	_, _ = faint.Fprintf(color.Output, "%d open, %d completed across %d projects\n\n",
		pending, completed, len(snap.Projects))

	_, _ = bold.Fprintln(color.Output, "Habits")
	today := dates.Today()
	htbl := uitable.New()
	htbl.Separator = "  "
	htbl.AddRow("ID", "NAME", "STREAK", "TODAY")
	for _, h := range snap.Habits {
		mark := "-"
		if h.CompletedOn(today) {
			mark = "done"
		}
		htbl.AddRow(shortID(h.ID), h.Name, habit.Streak(h, today), mark)
	}
	_, _ = fmt.Fprintln(color.Output, htbl)

	elapsed, remaining, total := dates.YearProgress(time.Now())
	_, _ = faint.Fprintf(color.Output, "\nyear: day %d of %d, %d remaining\n",
		elapsed, total, remaining)
}

func addCalendar(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "calendar [YYYY-MM]",
		Short: "Show due tasks bucketed by day for a month",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			month := time.Now().Format("2006-01")
			if len(args) == 1 {
				month = args[0]
			}
			first, err := time.ParseInLocation("2006-01", month, time.Local)
			if err != nil {
				return fmt.Errorf("invalid month %q, want YYYY-MM", month)
			}
			daysInMonth := first.AddDate(0, 1, -1).Day()

			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.controller.Refresh(cmd.Context()); err != nil {
				return err
			}
			snap := a.controller.Snapshot()

			window, err := dates.Window(dates.Day(first), daysInMonth)
			if err != nil {
				return err
			}
			printCalendar(snap, window)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func printCalendar(snap sync.Snapshot, window []string) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	empty := true

	for _, day := range window {
		due := project.DueOn(snap.Projects, day)
		if len(due) == 0 {
			continue
		}
		empty = false
		_, _ = bold.Fprintln(color.Output, day)
		tbl := uitable.New()
		tbl.Separator = "  "
		for _, ref := range due {
			state := "open"
			if ref.IsCompleted {
				state = "done"
			}
			tbl.AddRow("  "+ref.Title, ref.ProjectName, state)
		}
		_, _ = fmt.Fprintln(color.Output, tbl)
	}

	if empty {
		_, _ = faint.Fprintln(color.Output, "nothing due this month")
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
