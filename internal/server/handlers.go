package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	contactform "github.com/goliatone/go-contactform"
	"github.com/goliatone/go-contactform/pkg/analytics"
	"github.com/goliatone/go-contactform/pkg/controller"
	"github.com/goliatone/go-contactform/pkg/elements"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/transport"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// SubmitResponse is the JSON body returned by POST /contact.
type SubmitResponse struct {
	Status  model.Status        `json:"status"`
	Message string              `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Alerts  []string            `json:"alerts,omitempty"`
}

// EventRequest is the body accepted by POST /api/events.
type EventRequest struct {
	Name       string `json:"name"`
	ButtonText string `json:"button_text"`
	Section    string `json:"section"`
	Depth      int    `json:"depth"`
}

func (s *Server) handleIndex(c echo.Context) error {
	if c.QueryParam("open") == "1" {
		return s.handleContact(c)
	}
	form := elements.NewForm(s.opts.Definition)
	return s.renderPage(c, http.StatusOK, form, nil)
}

func (s *Server) handleContact(c echo.Context) error {
	form, ctrl, err := s.newController()
	if err != nil {
		return err
	}
	ctrl.OpenModal()
	return s.renderPage(c, http.StatusOK, form, nil)
}

func (s *Server) handleSubmit(c echo.Context) error {
	form, ctrl, err := s.newController()
	if err != nil {
		return err
	}
	ctrl.OpenModal()

	localizer := render.Localizer{Locale: s.opts.Locale, Translator: s.opts.Translator}
	if !s.limiter.Allow(c.RealIP()) {
		s.logger.Warn("submission rate limited", zap.String("ip", c.RealIP()))
		message := localizer.Text(render.MessageRateLimited)
		if wantsJSON(c) {
			return c.JSON(http.StatusTooManyRequests, SubmitResponse{Status: model.StatusIdle, Alerts: []string{message}})
		}
		return s.renderPage(c, http.StatusTooManyRequests, form, []string{message})
	}

	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form body").SetInternal(err)
	}
	for _, spec := range s.opts.Definition.Fields {
		if err := ctrl.Input(spec.Name, params.Get(spec.Name)); err != nil {
			return err
		}
	}

	ctx := c.Request().Context()
	sub, err := ctrl.Submit(ctx)
	if err != nil {
		var formErr *validation.FormError
		if errors.As(err, &formErr) {
			return s.respond(c, http.StatusUnprocessableEntity, form, ctrl)
		}
		return err
	}

	if err := sub.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var subErr *transport.SubmissionError
		if errors.As(err, &subErr) {
			s.logger.Warn("submission failed", zap.String("transport", subErr.Transport), zap.String("reason", subErr.Reason))
			return s.respond(c, http.StatusBadGateway, form, ctrl)
		}
		return err
	}
	return s.respond(c, http.StatusOK, form, ctrl)
}

// respond reports the outcome from the element state, which already holds
// the localized markers and notices applied by the controller.
func (s *Server) respond(c echo.Context, status int, form *elements.Form, ctrl *controller.Controller) error {
	if !wantsJSON(c) {
		return s.renderPage(c, status, form, nil)
	}
	snap := form.Snapshot()
	return c.JSON(status, SubmitResponse{
		Status:  ctrl.Status(),
		Message: snap.Notices.Success,
		Errors:  fieldMessages(snap),
		Alerts:  snap.Notices.Alerts,
	})
}

func (s *Server) handleEvent(c echo.Context) error {
	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event body").SetInternal(err)
	}
	var event analytics.Event
	switch strings.TrimSpace(req.Name) {
	case analytics.EventButtonClick:
		event = analytics.ButtonClick(req.ButtonText, req.Section)
	case analytics.EventScrollDepth:
		if req.Depth <= 0 || req.Depth > 100 || req.Depth%25 != 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "scroll depth must be a 25 percent milestone")
		}
		event = analytics.Event{Name: analytics.EventScrollDepth, Properties: map[string]any{"depth": req.Depth}}
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported event")
	}
	s.opts.Tracker.Track(c.Request().Context(), event)
	return c.NoContent(http.StatusAccepted)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) newController() (*elements.Form, *controller.Controller, error) {
	return contactform.NewHeadless(s.opts.Definition,
		controller.WithTransport(s.opts.Transport),
		controller.WithTracker(s.opts.Tracker),
		controller.WithTranslator(s.opts.Translator, s.opts.Locale),
		controller.WithLogger(s.opts.Logger),
		controller.WithCloseDelay(-1),
		controller.WithSendTimeout(s.opts.SendTimeout),
	)
}

func (s *Server) renderPage(c echo.Context, status int, form *elements.Form, formErrors []string) error {
	opts := render.RenderOptions{
		Locale:     s.opts.Locale,
		Translator: s.opts.Translator,
		Action:     "/contact",
		CloseURL:   "/",
		EventsURL:  "/api/events",
		FormErrors: formErrors,
	}
	if s.opts.CloseDelay > 0 {
		opts.CloseAfterMillis = s.opts.CloseDelay.Milliseconds()
	}
	if token, ok := c.Get(csrfContextKey).(string); ok && token != "" {
		opts.Hidden = append(opts.Hidden, render.CSRFToken(CSRFField, token))
	}
	html, err := s.opts.Renderer.RenderPage(c.Request().Context(), form.Snapshot(), opts)
	if err != nil {
		return err
	}
	return c.HTMLBlob(status, html)
}

func wantsJSON(c echo.Context) bool {
	accept := c.Request().Header.Get(echo.HeaderAccept)
	return strings.Contains(accept, echo.MIMEApplicationJSON)
}

func fieldMessages(snap elements.Snapshot) map[string][]string {
	errs := snap.Errors()
	if len(errs) == 0 {
		return nil
	}
	out := make(map[string][]string, len(errs))
	for name, message := range errs {
		out[name] = []string{message}
	}
	return out
}
