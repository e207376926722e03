package elements

import (
	"sync"

	"github.com/goliatone/go-contactform/pkg/controller"
	"github.com/goliatone/go-contactform/pkg/model"
)

// Dialog is the modal container and the page scroll lock.
type Dialog struct {
	mu           sync.RWMutex
	visible      bool
	scrollLocked bool
}

func (d *Dialog) Show()         { d.set(&d.visible, true) }
func (d *Dialog) Hide()         { d.set(&d.visible, false) }
func (d *Dialog) LockScroll()   { d.set(&d.scrollLocked, true) }
func (d *Dialog) UnlockScroll() { d.set(&d.scrollLocked, false) }

func (d *Dialog) set(flag *bool, value bool) {
	d.mu.Lock()
	*flag = value
	d.mu.Unlock()
}

// Visible reports whether the dialog is shown.
func (d *Dialog) Visible() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.visible
}

// ScrollLocked reports whether background scrolling is disabled.
func (d *Dialog) ScrollLocked() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.scrollLocked
}

// Input is a single form input.
type Input struct {
	spec model.FieldSpec

	mu      sync.RWMutex
	value   string
	focused bool
	invalid bool
	message string
}

// NewInput constructs an input for spec.
func NewInput(spec model.FieldSpec) *Input {
	return &Input{spec: spec}
}

func (i *Input) Name() string { return i.spec.Name }

// Spec returns the field specification the input was built from.
func (i *Input) Spec() model.FieldSpec { return i.spec }

func (i *Input) Value() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.value
}

func (i *Input) SetValue(value string) {
	i.mu.Lock()
	i.value = value
	i.mu.Unlock()
}

func (i *Input) Focus() {
	i.mu.Lock()
	i.focused = true
	i.mu.Unlock()
}

// Blur drops focus. The controller never blurs; views call it when focus
// moves elsewhere.
func (i *Input) Blur() {
	i.mu.Lock()
	i.focused = false
	i.mu.Unlock()
}

func (i *Input) MarkInvalid(message string) {
	i.mu.Lock()
	i.invalid = true
	i.message = message
	i.mu.Unlock()
}

func (i *Input) ClearInvalid() {
	i.mu.Lock()
	i.invalid = false
	i.message = ""
	i.mu.Unlock()
}

// Snapshot returns the current input state.
func (i *Input) Snapshot() InputState {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return InputState{
		Spec:    i.spec,
		Value:   i.value,
		Focused: i.focused,
		Invalid: i.invalid,
		Message: i.message,
	}
}

// Button is the submit control.
type Button struct {
	defaultLabel string

	mu       sync.RWMutex
	label    string
	disabled bool
}

// NewButton constructs an enabled button showing label.
func NewButton(label string) *Button {
	return &Button{defaultLabel: label, label: label}
}

func (b *Button) Busy(label string) {
	b.mu.Lock()
	b.disabled = true
	b.label = label
	b.mu.Unlock()
}

func (b *Button) Restore() {
	b.mu.Lock()
	b.disabled = false
	b.label = b.defaultLabel
	b.mu.Unlock()
}

// Snapshot returns the current button state.
func (b *Button) Snapshot() ButtonState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ButtonState{Label: b.label, Disabled: b.disabled}
}

// Notices collects form-level messages.
type Notices struct {
	mu      sync.RWMutex
	success string
	alerts  []string
}

func (n *Notices) Success(message string) {
	n.mu.Lock()
	n.success = message
	n.mu.Unlock()
}

func (n *Notices) Alert(message string) {
	n.mu.Lock()
	n.alerts = append(n.alerts, message)
	n.mu.Unlock()
}

func (n *Notices) Clear() {
	n.mu.Lock()
	n.success = ""
	n.alerts = nil
	n.mu.Unlock()
}

// Snapshot returns the current notices.
func (n *Notices) Snapshot() NoticeState {
	n.mu.RLock()
	defer n.mu.RUnlock()
	state := NoticeState{Success: n.success}
	if len(n.alerts) > 0 {
		state.Alerts = append([]string(nil), n.alerts...)
	}
	return state
}

var (
	_ controller.Dialog       = (*Dialog)(nil)
	_ controller.ScrollLocker = (*Dialog)(nil)
	_ controller.Field        = (*Input)(nil)
	_ controller.Button       = (*Button)(nil)
	_ controller.Notifier     = (*Notices)(nil)
)
