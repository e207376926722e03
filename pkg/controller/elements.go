package controller

// Dialog is the modal container.
type Dialog interface {
	Show()
	Hide()
}

// ScrollLocker toggles background scrolling while the modal is open.
type ScrollLocker interface {
	LockScroll()
	UnlockScroll()
}

// Field is one input handle. Name must match a field of the definition.
type Field interface {
	Name() string
	Value() string
	SetValue(value string)
	Focus()
	MarkInvalid(message string)
	ClearInvalid()
}

// Button is the submit control. Busy disables it and swaps its label for the
// busy indicator; Restore enables it with its default label.
type Button interface {
	Busy(label string)
	Restore()
}

// Notifier displays form-level notices.
type Notifier interface {
	Success(message string)
	Alert(message string)
	Clear()
}

// Elements bundles the handles a controller drives. Page is optional.
type Elements struct {
	Dialog  Dialog
	Page    ScrollLocker
	Fields  []Field
	Submit  Button
	Notices Notifier
}
