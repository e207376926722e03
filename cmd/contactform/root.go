package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	contactform "github.com/goliatone/go-contactform"
	"github.com/goliatone/go-contactform/internal/app"
	"github.com/goliatone/go-contactform/internal/config"
	"github.com/goliatone/go-contactform/internal/logging"
	"github.com/goliatone/go-contactform/pkg/controller"
	"github.com/goliatone/go-contactform/pkg/elements"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
)

// cli carries the configuration shared by every subcommand.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	cfg    *config.Config
	logger *zap.Logger

	logLevel   string
	logFormat  string
	locale     string
	definition string
	openapi    string
	operation  string
	theme      string
	variant    string
	transport  string
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "contactform",
		Short:         "Serve and drive the landing page contact form",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.load(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&c.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&c.logFormat, "log-format", "", "log format (json, console)")
	flags.StringVar(&c.locale, "locale", "", "message locale (ko, en)")
	flags.StringVar(&c.definition, "definition", "", "form definition file (.yaml, .yml, .json)")
	flags.StringVar(&c.openapi, "openapi", "", "OpenAPI document to derive the form from")
	flags.StringVar(&c.operation, "operation", "", "OpenAPI operation ID")
	flags.StringVar(&c.theme, "theme", "", "theme name")
	flags.StringVar(&c.variant, "variant", "", "theme variant")
	flags.StringVar(&c.transport, "transport", "", "submission transport (simulated, http, mailgun)")

	root.AddCommand(
		newServeCommand(c),
		newPromptCommand(c),
		newModalCommand(c),
		newRenderCommand(c),
	)
	return root
}

func (c *cli) load(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	override := func(name string, dst *string, value string) {
		if flags.Changed(name) {
			*dst = value
		}
	}
	override("log-level", &cfg.Log.Level, c.logLevel)
	override("log-format", &cfg.Log.Format, c.logFormat)
	override("locale", &cfg.Form.Locale, c.locale)
	override("definition", &cfg.Form.DefinitionPath, c.definition)
	override("openapi", &cfg.Form.OpenAPIPath, c.openapi)
	override("operation", &cfg.Form.OpenAPIOperation, c.operation)
	override("theme", &cfg.Form.Theme, c.theme)
	override("variant", &cfg.Form.ThemeVariant, c.variant)
	override("transport", &cfg.Transport.Kind, c.transport)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: c.stderr})
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = logger
	return nil
}

// newController builds a headless form and a controller driving it.
func (c *cli) newController(ctx context.Context, options ...controller.Option) (*elements.Form, *controller.Controller, error) {
	def, err := app.LoadDefinition(ctx, c.cfg.Form)
	if err != nil {
		return nil, nil, err
	}
	tr, err := app.NewTransport(c.cfg.Transport, def, c.logger)
	if err != nil {
		return nil, nil, err
	}
	tracker, err := app.NewTracker(c.logger, nil)
	if err != nil {
		return nil, nil, err
	}

	base := []controller.Option{
		controller.WithTransport(tr),
		controller.WithTracker(tracker),
		controller.WithTranslator(render.DefaultCatalog(), c.cfg.Form.Locale),
		controller.WithLogger(c.logger),
		controller.WithCloseDelay(c.cfg.Form.CloseDelay),
		controller.WithSendTimeout(c.cfg.Form.SendTimeout),
	}
	form, ctrl, err := contactform.NewHeadless(def, append(base, options...)...)
	if err != nil {
		return nil, nil, fmt.Errorf("build controller: %w", err)
	}
	return form, ctrl, nil
}

func (c *cli) loadDefinition(ctx context.Context) (model.FormDefinition, error) {
	return app.LoadDefinition(ctx, c.cfg.Form)
}
