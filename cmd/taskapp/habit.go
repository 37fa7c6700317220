package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meganziesemer/taskapp-final/internal/dates"
)

func addHabit(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Manage habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addHabitAdd(cmd)
	addHabitToggle(cmd)
	addHabitRm(cmd)

	topLevel.AddCommand(cmd)
}

func addHabitAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a habit",
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a habit name")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			a, err := newApp()
			if err != nil {
				return err
			}
			h, err := a.habits.Create(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Printf("created habit %s (%s)\n", h.Name, h.ID)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addHabitToggle(topLevel *cobra.Command) {
	var date string

	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark or unmark a habit for a day",
		Example: `
taskapp habit toggle 81d2aa
taskapp habit toggle 81d2aa --date 2026-08-30
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			day := date
			if day == "" {
				day = dates.Today()
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.habits.ToggleDate(cmd.Context(), args[0], day)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day as YYYY-MM-DD, defaults to today")

	topLevel.AddCommand(cmd)
}

func addHabitRm(topLevel *cobra.Command) {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a habit and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if !confirm(yes, "Delete habit %s and its history?", args[0]) {
				fmt.Println("aborted")
				return nil
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.habits.Delete(cmd.Context(), args[0])
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	topLevel.AddCommand(cmd)
}
