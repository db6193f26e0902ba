package calculator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKey is returned by ParseKey for labels that are not on the keypad.
var ErrUnknownKey = errors.New("unknown key")

// Action is one keypad press. The set of actions is closed: AddDigit,
// ChooseOperation, Clear, DeleteDigit and Evaluate.
type Action interface {
	isAction()
	fmt.Stringer
}

// AddDigit enters a digit "0"-"9" or the decimal point ".".
type AddDigit struct {
	Digit string
}

// ChooseOperation selects the pending operation, folding any complete pair first.
type ChooseOperation struct {
	Op Operation
}

// Clear resets the calculator.
type Clear struct{}

// DeleteDigit removes the last entered character.
type DeleteDigit struct{}

// Evaluate computes the pending operation.
type Evaluate struct{}

func (AddDigit) isAction()        {}
func (ChooseOperation) isAction() {}
func (Clear) isAction()           {}
func (DeleteDigit) isAction()     {}
func (Evaluate) isAction()        {}

func (a AddDigit) String() string        { return "add-digit " + a.Digit }
func (a ChooseOperation) String() string { return "choose-operation " + string(a.Op) }
func (Clear) String() string             { return "clear" }
func (DeleteDigit) String() string       { return "delete-digit" }
func (Evaluate) String() string          { return "evaluate" }

// ParseKey maps a keypad label to its action. Digits, ".", the four operation
// symbols (canonical or ASCII), "=", "clr"/"ac"/"c" and "del" are accepted;
// word labels are case-insensitive.
func ParseKey(label string) (Action, error) {
	if isDigitKey(label) {
		return AddDigit{Digit: label}, nil
	}
	if op, ok := ParseOperation(label); ok {
		return ChooseOperation{Op: op}, nil
	}
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "=", "eval", "evaluate", "enter":
		return Evaluate{}, nil
	case "clr", "clear", "ac", "c":
		return Clear{}, nil
	case "del", "delete", "backspace":
		return DeleteDigit{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKey, label)
}

// ParseKeys parses every label before returning, so callers can reject a
// sequence without applying any of it.
func ParseKeys(labels []string) ([]Action, error) {
	actions := make([]Action, 0, len(labels))
	for i, label := range labels {
		a, err := ParseKey(label)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

func isDigitKey(s string) bool {
	if len(s) != 1 {
		return false
	}
	c := s[0]
	return c == '.' || (c >= '0' && c <= '9')
}
