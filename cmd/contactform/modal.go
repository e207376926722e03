package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/pkg/controller"
	"github.com/goliatone/go-contactform/pkg/renderers/modal"
)

func newModalCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "modal",
		Short: "Open the contact form as a full screen terminal modal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			loop := controller.NewChanLoop(8)
			form, ctrl, err := c.newController(ctx, controller.WithLoop(loop))
			if err != nil {
				return err
			}
			m, err := modal.New(ctrl, form, loop, modal.WithContext(ctx))
			if err != nil {
				return err
			}
			return modal.Run(ctx, m)
		},
	}
}
