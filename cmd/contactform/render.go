package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/internal/app"
	"github.com/goliatone/go-contactform/pkg/elements"
	"github.com/goliatone/go-contactform/pkg/render"
)

func newRenderCommand(c *cli) *cobra.Command {
	var (
		open     bool
		fragment bool
		action   string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the contact form HTML to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			def, err := c.loadDefinition(ctx)
			if err != nil {
				return err
			}
			renderer, err := app.NewRenderer(c.cfg.Form)
			if err != nil {
				return err
			}

			form := elements.NewForm(def)
			if open {
				form.Dialog.Show()
				form.Dialog.LockScroll()
			}
			opts := render.RenderOptions{
				Locale:     c.cfg.Form.Locale,
				Translator: render.DefaultCatalog(),
				Action:     action,
			}
			if c.cfg.Form.CloseDelay > 0 {
				opts.CloseAfterMillis = c.cfg.Form.CloseDelay.Milliseconds()
			}

			renderFn := renderer.RenderPage
			if fragment {
				renderFn = renderer.Render
			}
			out, err := renderFn(ctx, form.Snapshot(), opts)
			if err != nil {
				return err
			}
			_, err = c.stdout.Write(out)
			return err
		},
	}
	cmd.Flags().BoolVar(&open, "open", false, "render the modal open")
	cmd.Flags().BoolVar(&fragment, "fragment", false, "render only the modal markup")
	cmd.Flags().StringVar(&action, "action", "/contact", "form action URL")
	return cmd
}
