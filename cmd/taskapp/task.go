package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func addTask(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks within a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTaskAdd(cmd)
	addTaskToggle(cmd)
	addTaskRm(cmd)

	topLevel.AddCommand(cmd)
}

func addTaskAdd(topLevel *cobra.Command) {
	var due string

	cmd := &cobra.Command{
		Use:   "add <project-id> <title>",
		Short: "Add a task to a project",
		Example: `
taskapp task add 2f1c9f "Write docs" --due 2026-09-15
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 2 {
				return errors.New("requires a project id and a title")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			a, err := newApp()
			if err != nil {
				return err
			}
			task, err := a.projects.AddTask(cmd.Context(), args[0], strings.Join(args[1:], " "), due)
			if err != nil {
				return err
			}
			fmt.Printf("added task %s due %s (%s)\n", task.Title, task.DueDate, task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&due, "due", "", "due date as YYYY-MM-DD, defaults to today")

	topLevel.AddCommand(cmd)
}

func addTaskToggle(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "toggle <project-id> <task-id>",
		Short: "Flip a task between open and completed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.projects.ToggleTask(cmd.Context(), args[0], args[1])
		},
	}
	topLevel.AddCommand(cmd)
}

func addTaskRm(topLevel *cobra.Command) {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <project-id> <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if !confirm(yes, "Delete task %s?", args[1]) {
				fmt.Println("aborted")
				return nil
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.projects.DeleteTask(cmd.Context(), args[0], args[1])
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	topLevel.AddCommand(cmd)
}
