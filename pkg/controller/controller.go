package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/analytics"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/transport"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// KeyEscape is the key name that closes an open modal.
const KeyEscape = "Escape"

// Controller owns the state of one contact form instance.
type Controller struct {
	mu sync.Mutex

	def     model.FormDefinition
	dialog  Dialog
	page    ScrollLocker
	fields  []Field
	byName  map[string]Field
	submit  Button
	notices Notifier

	transport   transport.Transport
	tracker     analytics.Tracker
	localizer   render.Localizer
	clock       Clock
	loop        Loop
	logger      *zap.Logger
	closeDelay  time.Duration
	sendTimeout time.Duration

	open       bool
	status     model.Status
	errs       map[string]validation.ValidationError
	inflight   *Submission
	last       *Submission
	closeTimer Timer
}

// New validates the handles against def and constructs a Controller.
func New(def model.FormDefinition, elements Elements, options ...Option) (*Controller, error) {
	if len(def.Fields) == 0 {
		return nil, errors.New("controller: form definition has no fields")
	}
	if elements.Dialog == nil {
		return nil, fmt.Errorf("%w: dialog", ErrMissingElement)
	}
	if elements.Submit == nil {
		return nil, fmt.Errorf("%w: submit button", ErrMissingElement)
	}
	if elements.Notices == nil {
		return nil, fmt.Errorf("%w: notices", ErrMissingElement)
	}

	byName := make(map[string]Field, len(elements.Fields))
	for _, field := range elements.Fields {
		if field == nil {
			return nil, fmt.Errorf("%w: nil field handle", ErrMissingElement)
		}
		if _, ok := def.Field(field.Name()); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, field.Name())
		}
		byName[field.Name()] = field
	}

	ordered := make([]Field, 0, len(def.Fields))
	for _, spec := range def.Fields {
		field, ok := byName[spec.Name]
		if !ok {
			return nil, fmt.Errorf("%w: field %q", ErrMissingElement, spec.Name)
		}
		ordered = append(ordered, field)
	}

	c := &Controller{
		def:        def,
		dialog:     elements.Dialog,
		page:       elements.Page,
		fields:     ordered,
		byName:     byName,
		submit:     elements.Submit,
		notices:    elements.Notices,
		tracker:    analytics.Nop{},
		localizer:  render.Localizer{Locale: render.DefaultLocale, Translator: render.DefaultCatalog()},
		clock:      RealClock,
		loop:       Inline,
		logger:     zap.NewNop(),
		closeDelay: DefaultCloseDelay,
		status:     model.StatusIdle,
		errs:       make(map[string]validation.ValidationError),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	if c.transport == nil {
		c.transport = transport.NewSimulated(transport.WithSimulatedLogger(c.logger))
	}
	c.logger = c.logger.With(zap.String("form", def.ID))
	return c, nil
}

// Definition returns the form definition.
func (c *Controller) Definition() model.FormDefinition {
	return c.def
}

// OpenModal shows the dialog, locks background scroll and focuses the first
// field. Calling it on an open modal does nothing.
func (c *Controller) OpenModal() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.open {
		return
	}
	c.open = true
	c.dialog.Show()
	if c.page != nil {
		c.page.LockScroll()
	}
	c.fields[0].Focus()
	c.logger.Debug("modal opened")
}

// CloseModal hides the dialog, restores scroll and resets the form: values
// cleared, markers and notices removed, status idle. It is idempotent and has
// no effect while a submission is in flight.
func (c *Controller) CloseModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *Controller) closeLocked() {
	if c.status == model.StatusSubmitting {
		c.logger.Debug("close ignored while submitting")
		return
	}
	if c.closeTimer != nil {
		c.closeTimer.Stop()
		c.closeTimer = nil
	}

	c.dialog.Hide()
	if c.page != nil {
		c.page.UnlockScroll()
	}
	for _, field := range c.fields {
		field.SetValue("")
		field.ClearInvalid()
	}
	c.notices.Clear()
	c.submit.Restore()

	if c.open {
		c.logger.Debug("modal closed")
	}
	c.open = false
	c.status = model.StatusIdle
	c.errs = make(map[string]validation.ValidationError)
}

// HandleKey reacts to key presses. Escape closes an open modal. It reports
// whether the key was consumed.
func (c *Controller) HandleKey(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if key != KeyEscape || !c.open || c.status == model.StatusSubmitting {
		return false
	}
	c.closeLocked()
	return true
}

// Input stores a new value for name and clears its error marker without
// revalidating, the way typing into a field does.
func (c *Controller) Input(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	field, ok := c.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	field.SetValue(value)
	c.clearErrorLocked(name, field)
	return nil
}

// ClearFieldError removes the marker of name without revalidating.
func (c *Controller) ClearFieldError(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	field, ok := c.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	c.clearErrorLocked(name, field)
	return nil
}

// ValidateField validates name against its rules and attaches or removes
// the error marker accordingly. It is the blur handler.
func (c *Controller) ValidateField(name string) (validation.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byName[name]; !ok {
		return validation.Result{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	res, _ := c.validateLocked(name)
	return res, nil
}

// Submit emits the form_submission event, validates every field and, when
// all pass, starts the transport send in the background. Invalid input
// returns a *validation.FormError and no send is attempted. While a previous
// submission is in flight Submit returns ErrSubmissionInFlight and does
// nothing else.
//
// Once started a submission cannot be cancelled from the form; ctx only
// bounds the transport call.
func (c *Controller) Submit(ctx context.Context) (*Submission, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status == model.StatusSubmitting {
		return nil, ErrSubmissionInFlight
	}

	c.tracker.Track(ctx, analytics.FormSubmission(c.def.ResolvedFormType()))

	c.status = model.StatusValidating
	c.notices.Clear()

	var failures []*validation.ValidationError
	for _, spec := range c.def.Fields {
		if _, failure := c.validateLocked(spec.Name); failure != nil {
			failures = append(failures, failure)
		}
	}
	if len(failures) > 0 {
		c.status = model.StatusIdle
		c.logger.Debug("submit blocked by validation", zap.Int("invalid_fields", len(failures)))
		return nil, &validation.FormError{Fields: failures}
	}

	payload := make(transport.Payload, len(c.fields))
	for _, field := range c.fields {
		payload[field.Name()] = field.Value()
	}

	c.status = model.StatusSubmitting
	c.submit.Busy(c.localizer.Text(render.MessageSubmitBusy))

	sub := newSubmission(payload)
	c.inflight = sub
	c.last = sub
	c.logger.Info("submission started", zap.Int("fields", len(payload)))

	go c.send(ctx, sub)
	return sub, nil
}

// Status returns the current submission status.
func (c *Controller) Status() model.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// State returns a snapshot of the form state.
func (c *Controller) State() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := FormState{
		Open:   c.open,
		Status: c.status,
		Fields: make([]model.FormField, 0, len(c.fields)),
	}
	for i, spec := range c.def.Fields {
		state.Fields = append(state.Fields, model.NewFormField(spec, c.fields[i].Value()))
	}
	if len(c.errs) > 0 {
		state.Errors = make(map[string]validation.ValidationError, len(c.errs))
		for name, err := range c.errs {
			state.Errors[name] = err
		}
	}
	return state
}

func (c *Controller) send(ctx context.Context, sub *Submission) {
	sendCtx := ctx
	if c.sendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, c.sendTimeout)
		defer cancel()
	}

	err := c.callTransport(sendCtx, sub.Payload())
	c.loop.Post(func() {
		c.complete(sub, err)
	})
}

func (c *Controller) callTransport(ctx context.Context, payload transport.Payload) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &transport.SubmissionError{Transport: "controller", Reason: fmt.Sprintf("transport panic: %v", r)}
		}
	}()
	return c.transport.Send(ctx, payload)
}

func (c *Controller) complete(sub *Submission, sendErr error) {
	c.mu.Lock()
	var result error
	defer func() {
		c.mu.Unlock()
		sub.resolve(result)
	}()
	defer c.submit.Restore()

	c.inflight = nil

	if sendErr != nil {
		subErr := transport.AsSubmissionError("controller", sendErr)
		result = subErr
		c.status = model.StatusFailed
		c.applyRemoteErrorsLocked(subErr.FieldErrors)
		c.notices.Alert(c.localizer.Text(render.MessageSubmitFailure))
		c.logger.Warn("submission failed", zap.Error(subErr))
		return
	}

	c.status = model.StatusSucceeded
	c.notices.Success(c.localizer.Text(render.MessageSubmitSuccess))
	c.logger.Info("submission succeeded")

	if c.closeDelay >= 0 {
		c.closeTimer = c.clock.AfterFunc(c.closeDelay, func() {
			c.loop.Post(func() {
				c.autoClose(sub)
			})
		})
	}
}

func (c *Controller) autoClose(sub *Submission) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.last != sub || c.status != model.StatusSucceeded {
		return
	}
	c.closeTimer = nil
	c.closeLocked()
}

func (c *Controller) validateLocked(name string) (validation.Result, *validation.ValidationError) {
	field := c.byName[name]
	spec, _ := c.def.Field(name)

	res := validation.Validate(model.NewFormField(spec, field.Value()))
	if res.OK() {
		c.clearErrorLocked(name, field)
		return res, nil
	}

	failure := validation.ValidationError{
		Field:   name,
		Kind:    res.Validity,
		Message: c.localizer.Text(res.MessageKey),
	}
	field.MarkInvalid(failure.Message)
	c.errs[name] = failure
	return res, &failure
}

func (c *Controller) clearErrorLocked(name string, field Field) {
	field.ClearInvalid()
	delete(c.errs, name)
}

func (c *Controller) applyRemoteErrorsLocked(payload map[string][]string) {
	if len(payload) == 0 {
		return
	}
	mapping := render.MapErrorPayload(c.def, payload)
	for name, messages := range mapping.Fields {
		field := c.byName[name]
		failure := validation.ValidationError{Field: name, Kind: model.InvalidFormat, Message: messages[0]}
		field.MarkInvalid(failure.Message)
		c.errs[name] = failure
	}
	for _, msg := range mapping.Form {
		c.notices.Alert(msg)
	}
}
