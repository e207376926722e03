package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-contactform/pkg/controller"
	"github.com/goliatone/go-contactform/pkg/elements"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/transport"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// Result summarises a finished session.
type Result struct {
	Status  model.Status
	Notice  string
	Alerts  []string
	Payload transport.Payload
}

// Session prompts for every field of a form and submits it through the
// controller.
type Session struct {
	ctrl        *controller.Controller
	form        *elements.Form
	driver      PromptDriver
	theme       Theme
	confirm     string
	retry       string
	maxAttempts int
}

// New constructs a session over ctrl and the headless form it drives.
func New(ctrl *controller.Controller, form *elements.Form, options ...Option) (*Session, error) {
	if ctrl == nil || form == nil {
		return nil, errors.New("tui: controller and form are required")
	}
	s := &Session{
		ctrl:        ctrl,
		form:        form,
		theme:       DefaultTheme,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s, nil
}

// Run opens the modal, collects every field, and submits. It returns once
// the submission resolved. Declining the confirmation closes the modal and
// returns ErrAborted.
func (s *Session) Run(ctx context.Context) (Result, error) {
	s.ctrl.OpenModal()
	def := s.ctrl.Definition()

	if title := strings.TrimSpace(def.Title); title != "" {
		if err := s.driver.Info(ctx, s.theme.InfoPrefix+title); err != nil {
			return Result{}, err
		}
	}

	pending := def.Fields
	for {
		for _, spec := range pending {
			if err := s.promptField(ctx, spec); err != nil {
				s.ctrl.CloseModal()
				return Result{}, err
			}
		}

		if s.confirm != "" {
			ok, err := s.driver.Confirm(ctx, ConfirmConfig{Message: s.confirm, Default: true})
			if err != nil {
				s.ctrl.CloseModal()
				return Result{}, err
			}
			if !ok {
				s.ctrl.CloseModal()
				return Result{}, ErrAborted
			}
		}

		sub, err := s.ctrl.Submit(ctx)
		var formErr *validation.FormError
		if errors.As(err, &formErr) {
			if err := s.reportFormError(ctx, formErr); err != nil {
				return Result{}, err
			}
			pending = invalidSpecs(def, formErr)
			continue
		}
		if err != nil {
			return Result{}, err
		}

		if err := sub.Wait(ctx); err != nil && !isSubmissionError(err) {
			return Result{}, err
		}
		result := s.result(sub)
		if err := s.reportNotices(ctx, result); err != nil {
			return result, err
		}

		if result.Status == model.StatusFailed && s.retry != "" {
			again, err := s.driver.Confirm(ctx, ConfirmConfig{Message: s.retry, Default: true})
			if err != nil {
				return result, err
			}
			if again {
				pending = nil
				continue
			}
		}
		return result, nil
	}
}

func (s *Session) promptField(ctx context.Context, spec model.FieldSpec) error {
	message := spec.Label
	if message == "" {
		message = spec.Name
	}
	if spec.Required {
		message += " *"
	}
	message = s.theme.PromptPrefix + message

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		current := s.ctrl.State().Value(spec.Name)

		var (
			value string
			err   error
		)
		if spec.Kind == model.FieldKindTextArea {
			value, err = s.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: current, Help: spec.Placeholder})
		} else {
			value, err = s.driver.Input(ctx, InputConfig{Message: message, Default: current, Help: spec.Placeholder})
		}
		if err != nil {
			return err
		}

		if err := s.ctrl.Input(spec.Name, value); err != nil {
			return err
		}
		res, err := s.ctrl.ValidateField(spec.Name)
		if err != nil {
			return err
		}
		if res.OK() {
			return nil
		}
		input, _ := s.form.Snapshot().Input(spec.Name)
		if err := s.driver.Info(ctx, s.theme.ErrorPrefix+input.Message); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: %s", ErrTooManyAttempts, spec.Name)
}

func (s *Session) reportFormError(ctx context.Context, formErr *validation.FormError) error {
	for _, field := range formErr.Fields {
		if err := s.driver.Info(ctx, s.theme.ErrorPrefix+field.Field+": "+field.Message); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) reportNotices(ctx context.Context, result Result) error {
	if result.Notice != "" {
		if err := s.driver.Info(ctx, s.theme.InfoPrefix+result.Notice); err != nil {
			return err
		}
	}
	for _, alert := range result.Alerts {
		if err := s.driver.Info(ctx, s.theme.ErrorPrefix+alert); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) result(sub *controller.Submission) Result {
	snap := s.form.Snapshot()
	return Result{
		Status:  s.ctrl.Status(),
		Notice:  snap.Notices.Success,
		Alerts:  snap.Notices.Alerts,
		Payload: sub.Payload(),
	}
}

func invalidSpecs(def model.FormDefinition, formErr *validation.FormError) []model.FieldSpec {
	out := make([]model.FieldSpec, 0, len(formErr.Fields))
	for _, field := range formErr.Fields {
		if spec, ok := def.Field(field.Field); ok {
			out = append(out, spec)
		}
	}
	return out
}

func isSubmissionError(err error) bool {
	var subErr *transport.SubmissionError
	return errors.As(err, &subErr)
}
