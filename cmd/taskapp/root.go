package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taskapp",
		Short: "Projects, tasks and habits against a hosted store.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addWatch(cmd)
	addSummary(cmd)
	addCalendar(cmd)
	addProject(cmd)
	addTask(cmd)
	addHabit(cmd)
	addAsk(cmd)

	return cmd
}
