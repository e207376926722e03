package modal

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-contactform/pkg/controller"
	"github.com/goliatone/go-contactform/pkg/elements"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// loopMsg carries one unit of work posted to the controller loop.
type loopMsg func()

func waitLoop(loop *controller.ChanLoop) tea.Cmd {
	return func() tea.Msg {
		return loopMsg(<-loop.C())
	}
}

// Option configures a Model.
type Option func(*Model)

// WithStyles overrides DefaultStyles.
func WithStyles(styles Styles) Option {
	return func(m *Model) {
		m.styles = styles
	}
}

// WithContext sets the context handed to Submit.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// Model is the bubbletea model. The submit button is the focus slot after
// the last input.
type Model struct {
	ctx    context.Context
	ctrl   *controller.Controller
	form   *elements.Form
	loop   *controller.ChanLoop
	specs  []model.FieldSpec
	inputs []textinput.Model
	styles Styles

	focus    int
	width    int
	height   int
	quitting bool
}

// New builds a model over ctrl. The controller must have been constructed
// with loop as its loop and form's elements as its handles.
func New(ctrl *controller.Controller, form *elements.Form, loop *controller.ChanLoop, options ...Option) (*Model, error) {
	if ctrl == nil || form == nil || loop == nil {
		return nil, errors.New("modal: controller, form and loop are required")
	}
	m := &Model{
		ctx:    context.Background(),
		ctrl:   ctrl,
		form:   form,
		loop:   loop,
		specs:  ctrl.Definition().Fields,
		styles: DefaultStyles(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(m)
		}
	}
	for _, spec := range m.specs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = spec.Placeholder
		in.CharLimit = 256
		if spec.Kind == model.FieldKindTextArea {
			in.CharLimit = 2000
		}
		m.inputs = append(m.inputs, in)
	}
	return m, nil
}

// Init opens the modal and starts listening on the loop.
func (m *Model) Init() tea.Cmd {
	m.ctrl.OpenModal()
	return tea.Batch(m.setFocus(0), waitLoop(m.loop), textinput.Blink)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loopMsg:
		msg()
		m.syncInputs()
		if !m.form.Snapshot().Open {
			m.quitting = true
			return m, tea.Quit
		}
		return m, waitLoop(m.loop)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for i := range m.inputs {
			m.inputs[i].Width = max(10, min(60, msg.Width-24))
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc":
			if m.ctrl.HandleKey(controller.KeyEscape) {
				m.syncInputs()
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		case "tab", "down":
			return m, m.moveFocus(1)
		case "shift+tab", "up":
			return m, m.moveFocus(-1)
		case "enter":
			if m.focus < len(m.inputs) {
				return m, m.moveFocus(1)
			}
			return m, m.submit()
		}
		return m, m.updateFocusedInput(msg)
	}
	return m, nil
}

func (m *Model) submit() tea.Cmd {
	_, err := m.ctrl.Submit(m.ctx)
	var formErr *validation.FormError
	if errors.As(err, &formErr) && len(formErr.Fields) > 0 {
		for i, spec := range m.specs {
			if spec.Name == formErr.Fields[0].Field {
				return m.setFocus(i)
			}
		}
	}
	return nil
}

// moveFocus validates the field being left, the terminal equivalent of blur.
func (m *Model) moveFocus(delta int) tea.Cmd {
	if m.focus < len(m.specs) {
		_, _ = m.ctrl.ValidateField(m.specs[m.focus].Name)
	}
	slots := len(m.inputs) + 1
	next := (m.focus + delta + slots) % slots
	return m.setFocus(next)
}

func (m *Model) setFocus(index int) tea.Cmd {
	m.focus = index
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == index {
			cmd = m.inputs[i].Focus()
			if input, ok := m.form.Input(m.specs[i].Name); ok {
				input.Focus()
			}
			continue
		}
		m.inputs[i].Blur()
		if input, ok := m.form.Input(m.specs[i].Name); ok {
			input.Blur()
		}
	}
	return cmd
}

func (m *Model) updateFocusedInput(msg tea.Msg) tea.Cmd {
	if m.focus >= len(m.inputs) {
		return nil
	}
	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if after := m.inputs[m.focus].Value(); after != before {
		_ = m.ctrl.Input(m.specs[m.focus].Name, after)
	}
	return cmd
}

func (m *Model) syncInputs() {
	state := m.ctrl.State()
	for i, spec := range m.specs {
		if value := state.Value(spec.Name); value != m.inputs[i].Value() {
			m.inputs[i].SetValue(value)
		}
	}
}

// Focus returns the focused slot; len(fields) is the submit button.
func (m *Model) Focus() int {
	return m.focus
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	snap := m.form.Snapshot()
	def := snap.Definition
	s := m.styles

	var lines []string
	if def.Title != "" {
		lines = append(lines, s.Title.Render(def.Title))
	}
	if def.Subtitle != "" {
		lines = append(lines, s.Subtitle.Render(def.Subtitle))
	}
	lines = append(lines, "")

	for i, state := range snap.Inputs {
		label := state.Spec.Label
		if label == "" {
			label = state.Spec.Name
		}
		if state.Spec.Required {
			label += " *"
		}
		style := s.Label
		if i == m.focus {
			style = s.Focused
		}
		lines = append(lines, style.Render(label))
		lines = append(lines, "  "+m.inputs[i].View())
		if state.Invalid {
			lines = append(lines, s.Error.Render("  "+state.Message))
		}
	}
	lines = append(lines, "")

	if snap.Notices.Success != "" {
		lines = append(lines, s.Success.Render(snap.Notices.Success))
	}
	for _, alert := range snap.Notices.Alerts {
		lines = append(lines, s.Error.Render(alert))
	}

	button := s.Button
	if snap.Submit.Disabled {
		button = s.Disabled
	}
	prefix := "  "
	if m.focus == len(m.inputs) {
		prefix = "> "
	}
	lines = append(lines, prefix+button.Render(snap.Submit.Label))
	lines = append(lines, "", s.Help.Render("tab next · shift+tab back · enter submit · esc close"))

	panel := s.Panel.Render(strings.Join(lines, "\n"))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
	}
	return panel
}

// Run starts a bubbletea program on the alternate screen and blocks until the
// modal closes.
func Run(ctx context.Context, m *Model, options ...tea.ProgramOption) error {
	opts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, options...)
	_, err := tea.NewProgram(m, opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
