package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meganziesemer/taskapp-final/internal/domain/project"
	"github.com/meganziesemer/taskapp-final/internal/palette"
)

func addProject(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addProjectAdd(cmd)
	addProjectRename(cmd)
	addProjectStatus(cmd)
	addProjectRm(cmd)

	topLevel.AddCommand(cmd)
}

func addProjectAdd(topLevel *cobra.Command) {
	var description, color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Example: `
taskapp project add "Spring cleaning"
taskapp project add Launch --color "#f59e0b"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a project name")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			a, err := newApp()
			if err != nil {
				return err
			}
			proj, err := a.projects.Create(cmd.Context(), strings.Join(args, " "), description, color)
			if err != nil {
				return err
			}
			fmt.Printf("created project %s (%s)\n", proj.Name, proj.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "desc", "", "project description")
	cmd.Flags().StringVar(&color, "color", "", "hex color, one of "+strings.Join(palette.Colors, ", "))

	topLevel.AddCommand(cmd)
}

func addProjectRename(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a project",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.projects.Rename(cmd.Context(), args[0], strings.Join(args[1:], " "))
		},
	}
	topLevel.AddCommand(cmd)
}

func addProjectStatus(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:       "status <id> <needs_action|caught_up>",
		Short:     "Set a project's status",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(project.StatusNeedsAction), string(project.StatusCaughtUp)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.projects.SetStatus(cmd.Context(), args[0], project.Status(args[1]))
		},
	}
	topLevel.AddCommand(cmd)
}

func addProjectRm(topLevel *cobra.Command) {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a project and all of its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if !confirm(yes, "Delete project %s and all of its tasks?", args[0]) {
				fmt.Println("aborted")
				return nil
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.projects.Delete(cmd.Context(), args[0])
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	topLevel.AddCommand(cmd)
}
