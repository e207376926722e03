// Package server exposes the contact form over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	contactform "github.com/goliatone/go-contactform"
	"github.com/goliatone/go-contactform/pkg/analytics"
	"github.com/goliatone/go-contactform/pkg/formdef"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/vanilla"
	"github.com/goliatone/go-contactform/pkg/transport"
)

const (
	// CSRFField is the hidden input carrying the CSRF token.
	CSRFField = "_csrf"
	// CSRFHeader is accepted in place of the form field by script clients.
	CSRFHeader     = "X-CSRF-Token"
	csrfContextKey = "csrf"
)

// Options configures the HTTP surface.
type Options struct {
	Definition  model.FormDefinition
	Renderer    *vanilla.Renderer
	Transport   transport.Transport
	Tracker     analytics.Tracker
	Translator  render.Translator
	Locale      string
	Logger      *zap.Logger
	Gatherer    prometheus.Gatherer
	CloseDelay  time.Duration
	SendTimeout time.Duration
	// RequestsPerMinute and Burst bound POST /contact per client address.
	RequestsPerMinute int
	Burst             int
	// DisableCSRF turns off token checks, for script-only deployments.
	DisableCSRF bool
	Debug       bool
}

// Server wires the handlers onto an echo instance.
type Server struct {
	echo    *echo.Echo
	opts    Options
	limiter *ClientLimiter
	logger  *zap.Logger
}

// New validates options and registers routes.
func New(opts Options) (*Server, error) {
	opts.Definition.Fields = append([]model.FieldSpec(nil), opts.Definition.Fields...)
	if err := formdef.Validate(&opts.Definition); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	if opts.Renderer == nil {
		renderer, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("server: build renderer: %w", err)
		}
		opts.Renderer = renderer
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Tracker == nil {
		opts.Tracker = analytics.Nop{}
	}
	if opts.Translator == nil {
		opts.Translator = render.DefaultCatalog()
	}
	if opts.Locale == "" {
		opts.Locale = render.DefaultLocale
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	s := &Server{
		echo:    echo.New(),
		opts:    opts,
		limiter: NewClientLimiter(opts.RequestsPerMinute, opts.Burst),
		logger:  opts.Logger.With(zap.String("component", "server")),
	}
	s.configure()
	s.routes()
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Limiter exposes the per-client limiter.
func (s *Server) Limiter() *ClientLimiter {
	return s.limiter
}

func (s *Server) configure() {
	e := s.echo
	e.Debug = s.opts.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(
		middleware.RequestID(),
		middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
			Skipper: func(c echo.Context) bool {
				path := c.Request().URL.Path
				return path == "/healthz" || path == "/metrics"
			},
			LogURI:       true,
			LogStatus:    true,
			LogLatency:   true,
			LogError:     true,
			LogMethod:    true,
			LogRequestID: true,
			LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
				fields := []zap.Field{
					zap.String("method", v.Method),
					zap.String("uri", v.URI),
					zap.Int("status", v.Status),
					zap.Duration("latency", v.Latency),
					zap.String("request_id", v.RequestID),
					zap.String("ip", c.RealIP()),
				}
				if v.Error != nil {
					s.logger.Error("request failed", append(fields, zap.Error(v.Error))...)
					return nil
				}
				s.logger.Info("request", fields...)
				return nil
			},
		}),
		middleware.RecoverWithConfig(middleware.RecoverConfig{
			LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
				s.logger.Error("panic recovered", zap.Error(err), zap.ByteString("stack", stack))
				return err
			},
		}),
	)
	if !s.opts.DisableCSRF {
		e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
			Skipper: func(c echo.Context) bool {
				return c.Request().URL.Path == "/api/events"
			},
			TokenLookup:    "form:" + CSRFField + ",header:" + CSRFHeader,
			ContextKey:     csrfContextKey,
			CookieName:     CSRFField,
			CookiePath:     "/",
			CookieHTTPOnly: true,
			CookieSameSite: http.SameSiteStrictMode,
		}))
	}
}

func (s *Server) routes() {
	e := s.echo
	e.GET("/", s.handleIndex)
	e.GET("/contact", s.handleContact)
	e.POST("/contact", s.handleSubmit)
	e.POST("/api/events", s.handleEvent)
	e.GET("/healthz", s.handleHealth)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{})))
	e.StaticFS("/assets", contactform.AssetsFS())
}

// Run serves on addr until ctx ends, then shuts down within shutdownTimeout.
func (s *Server) Run(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	if srv == nil {
		return errors.New("server: http server is required")
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", zap.String("address", srv.Addr))
		if err := s.echo.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	go s.pruneLimiter(ctx, time.Minute)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}

func (s *Server) pruneLimiter(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if removed := s.limiter.Prune(now); removed > 0 {
				s.logger.Debug("pruned idle rate limiters", zap.Int("removed", removed))
			}
		}
	}
}
