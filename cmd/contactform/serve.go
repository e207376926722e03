package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/internal/app"
	"github.com/goliatone/go-contactform/internal/server"
	"github.com/goliatone/go-contactform/pkg/render"
)

func newServeCommand(c *cli) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the landing page and contact form over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				c.cfg.ServerPort = port
			}
			ctx := cmd.Context()
			cfg := c.cfg

			def, err := c.loadDefinition(ctx)
			if err != nil {
				return err
			}
			tr, err := app.NewTransport(cfg.Transport, def, c.logger)
			if err != nil {
				return err
			}
			registry := prometheus.NewRegistry()
			tracker, err := app.NewTracker(c.logger, registry)
			if err != nil {
				return err
			}
			renderer, err := app.NewRenderer(cfg.Form)
			if err != nil {
				return err
			}

			srv, err := server.New(server.Options{
				Definition:        def,
				Renderer:          renderer,
				Transport:         tr,
				Tracker:           tracker,
				Translator:        render.DefaultCatalog(),
				Locale:            cfg.Form.Locale,
				Logger:            c.logger,
				Gatherer:          registry,
				CloseDelay:        cfg.Form.CloseDelay,
				SendTimeout:       cfg.Form.SendTimeout,
				RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
				Burst:             cfg.RateLimit.Burst,
				DisableCSRF:       !cfg.Form.CSRF,
				Debug:             cfg.Debug,
			})
			if err != nil {
				return err
			}

			c.logger.Info("configuration loaded",
				zap.String("address", cfg.Addr()),
				zap.String("transport", cfg.Transport.Kind),
				zap.String("form", def.ID),
				zap.String("locale", cfg.Form.Locale),
			)
			return srv.Run(ctx, &http.Server{
				Addr:         cfg.Addr(),
				ReadTimeout:  cfg.ReadTimeout,
				WriteTimeout: cfg.WriteTimeout,
			}, cfg.ShutdownTimeout)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides CONTACTFORM_SERVER_PORT)")
	return cmd
}
