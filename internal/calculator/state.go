package calculator

// Operand is an optional numeric string as entered on the keypad: digits and at
// most one decimal point, or a value produced by Evaluate. The zero value is
// absent, which is distinct from a present empty string.
type Operand struct {
	value string
	set   bool
}

// None is the absent operand.
var None = Operand{}

// Some returns a present operand holding v.
func Some(v string) Operand {
	return Operand{value: v, set: true}
}

// OperandFromPtr maps nil to None and anything else to Some.
func OperandFromPtr(p *string) Operand {
	if p == nil {
		return None
	}
	return Some(*p)
}

// Get returns the operand value and whether it is present.
func (o Operand) Get() (string, bool) { return o.value, o.set }

// IsSet reports whether the operand is present.
func (o Operand) IsSet() bool { return o.set }

// String returns the value, or "" when absent.
func (o Operand) String() string { return o.value }

// Ptr returns nil for an absent operand.
func (o Operand) Ptr() *string {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}

// Operation is a pending binary operation. OpNone means no operation is pending.
type Operation string

const (
	OpNone     Operation = ""
	OpAdd      Operation = "+"
	OpSubtract Operation = "−"
	OpMultiply Operation = "×"
	OpDivide   Operation = "÷"
)

// ParseOperation accepts the canonical keypad symbols and their ASCII aliases.
func ParseOperation(s string) (Operation, bool) {
	switch s {
	case "+":
		return OpAdd, true
	case "−", "-":
		return OpSubtract, true
	case "×", "*", "x", "X":
		return OpMultiply, true
	case "÷", "/":
		return OpDivide, true
	default:
		return OpNone, false
	}
}

// Valid reports whether op is one of the four arithmetic operations.
func (op Operation) Valid() bool {
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	default:
		return false
	}
}

// State is the calculator state. It is a comparable value; every transition
// builds a new one. The zero value is the empty state.
type State struct {
	Current   Operand
	Previous  Operand
	Op        Operation
	Overwrite bool
}
