package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/renderers/tui"
)

func newPromptCommand(c *cli) *cobra.Command {
	var confirm, retry string
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill in the contact form with interactive prompts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			form, ctrl, err := c.newController(ctx)
			if err != nil {
				return err
			}
			session, err := tui.New(ctrl, form,
				tui.WithPromptDriver(tui.NewSurveyDriver(c.stdout)),
				tui.WithConfirm(confirm),
				tui.WithRetryPrompt(retry),
			)
			if err != nil {
				return err
			}

			result, err := session.Run(ctx)
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(c.stdout, "cancelled")
				return nil
			}
			if err != nil {
				return err
			}
			if result.Status == model.StatusFailed {
				return errors.New("submission failed")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&confirm, "confirm", "Send this request?", "confirmation question, empty to skip")
	cmd.Flags().StringVar(&retry, "retry", "Try again?", "retry question after a failed send, empty to skip")
	return cmd
}
