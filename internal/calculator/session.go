package calculator

import "strings"

// Default greeting shown on the primary readout once enough evaluations have
// been requested.
const (
	DefaultGreeting      = "Hello World"
	DefaultGreetingAfter = 3
)

// SessionOptions configure the shell-side behaviour of a Session.
type SessionOptions struct {
	// GreetingAfter is the evaluation count at which the greeting appears.
	// Zero or negative disables it.
	GreetingAfter int
	Greeting      string
	Formatter     *Formatter
}

// DefaultSessionOptions returns the options used by the keypad shells.
func DefaultSessionOptions() SessionOptions {
	return SessionOptions{
		GreetingAfter: DefaultGreetingAfter,
		Greeting:      DefaultGreeting,
		Formatter:     defaultFormatter,
	}
}

// NewSessionOptions builds options from configuration values. A malformed
// locale falls back to DefaultLocale; the error is returned alongside usable
// options so callers can log it.
func NewSessionOptions(locale string, greetingAfter int, greeting string) (SessionOptions, error) {
	tag, err := ParseLocale(locale)
	return SessionOptions{
		GreetingAfter: greetingAfter,
		Greeting:      greeting,
		Formatter:     NewFormatter(tag),
	}, err
}

// Session owns one calculator State plus the evaluation counter and greeting
// flag, which live beside the state and are advanced only by Dispatch.
// A Session is not safe for concurrent use.
type Session struct {
	ID string

	opts        SessionOptions
	state       State
	evaluations int
	greeting    bool
}

// NewSession returns an empty session.
func NewSession(id string, opts SessionOptions) *Session {
	if opts.Formatter == nil {
		opts.Formatter = defaultFormatter
	}
	return &Session{ID: id, opts: opts}
}

// Dispatch applies a to the session and returns the new state.
func (s *Session) Dispatch(a Action) State {
	s.state = Reduce(s.state, a)

	switch a.(type) {
	case Evaluate:
		// counted per press, whether or not the reduce changed anything
		s.evaluations++
		if s.opts.GreetingAfter > 0 && s.evaluations == s.opts.GreetingAfter {
			s.greeting = true
		}
	case Clear:
		s.evaluations = 0
		s.greeting = false
	}
	return s.state
}

// State returns the current calculator state.
func (s *Session) State() State { return s.state }

// Evaluations returns how many times Evaluate was pressed since the last Clear.
func (s *Session) Evaluations() int { return s.evaluations }

// Greeting reports whether the greeting replaces the primary readout.
func (s *Session) Greeting() bool { return s.greeting }

// Display renders the readout for the current state.
func (s *Session) Display() Display {
	d := Display{Operation: string(s.state.Op)}
	d.Previous, _ = s.opts.Formatter.Format(s.state.Previous)
	d.Current, _ = s.opts.Formatter.Format(s.state.Current)
	if s.greeting {
		d.Current = s.opts.Greeting
	}
	return d
}

// Snapshot copies everything a shell needs to render the session.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:          s.ID,
		State:       s.state,
		Display:     s.Display(),
		Evaluations: s.evaluations,
	}
}

// Display is the formatted readout: the previous operand with the pending
// operation above, the current operand as the primary line.
type Display struct {
	Previous  string
	Operation string
	Current   string
}

// PreviousLine joins the previous operand and the operation symbol.
func (d Display) PreviousLine() string {
	return strings.TrimSpace(d.Previous + " " + d.Operation)
}

// Snapshot is a point-in-time copy of a Session.
type Snapshot struct {
	ID          string
	State       State
	Display     Display
	Evaluations int
}
