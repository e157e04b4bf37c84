package redactor

// Key is the discriminant of a key press.
type Key int

const (
	KeyOther Key = iota
	KeyBackspace
	KeyDelete
)

func (k Key) String() string {
	switch k {
	case KeyBackspace:
		return "backspace"
	case KeyDelete:
		return "delete"
	default:
		return "other"
	}
}

// KeyEvent is a key press delivered by the host. Handlers call
// PreventDefault when they performed the edit themselves and the host must
// not apply its own deletion.
type KeyEvent struct {
	Key       Key
	prevented bool
}

// NewKeyEvent returns an event for k.
func NewKeyEvent(k Key) *KeyEvent { return &KeyEvent{Key: k} }

// PreventDefault suppresses the host's default handling.
func (e *KeyEvent) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *KeyEvent) DefaultPrevented() bool { return e.prevented }
