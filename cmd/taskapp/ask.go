package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meganziesemer/taskapp-final/internal/assistant"
	"github.com/meganziesemer/taskapp-final/internal/drafts"
)

func addAsk(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Ask the assistant about your projects and habits",
		Example: `
taskapp ask "what should I focus on today?"
taskapp ask                 # resend the saved draft, if any
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			a, err := newApp()
			if err != nil {
				return err
			}

			draftStore, err := drafts.Open(a.cfg.Drafts.Path)
			if err != nil {
				return err
			}

			text := strings.Join(args, " ")
			if strings.TrimSpace(text) == "" {
				text = draftStore.Load(drafts.SlotChat)
			}
			if strings.TrimSpace(text) == "" {
				return errors.New("requires a message")
			}

			llm, err := assistant.NewClient(a.cfg.Assistant)
			if err != nil {
				return err
			}
			svc := assistant.NewService(llm, a.logger)

			if err := a.controller.Refresh(cmd.Context()); err != nil {
				a.logger.Warn("proceeding without a fresh snapshot", "error", err)
			}

			reply, err := svc.Ask(cmd.Context(), text, a.controller.Snapshot())
			if err != nil {
				// Keep the message around so the next invocation can retry it.
				if saveErr := draftStore.Save(drafts.SlotChat, text); saveErr != nil {
					a.logger.Warn("saving chat draft", "error", saveErr)
				}
				return err
			}
			if err := draftStore.Clear(drafts.SlotChat); err != nil {
				a.logger.Warn("clearing chat draft", "error", err)
			}

			fmt.Println(reply)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}
