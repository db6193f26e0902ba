package calculator

import "strings"

// Reduce returns the state that follows s after action a. It never mutates s
// and never fails: inputs that would make an operand malformed, and unknown
// actions, return s unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case AddDigit:
		return addDigit(s, a.Digit)
	case ChooseOperation:
		return chooseOperation(s, a.Op)
	case Clear:
		return State{}
	case DeleteDigit:
		return deleteDigit(s)
	case Evaluate:
		return evaluate(s)
	default:
		return s
	}
}

func addDigit(s State, d string) State {
	if !isDigitKey(d) {
		return s
	}
	if s.Overwrite {
		return State{
			Current:   Some(d),
			Previous:  s.Previous,
			Op:        s.Op,
			Overwrite: false,
		}
	}
	cur, _ := s.Current.Get()
	if d == "0" && s.Current == Some("0") {
		return s
	}
	if d == "." && strings.Contains(cur, ".") {
		return s
	}
	return State{
		Current:   Some(cur + d),
		Previous:  s.Previous,
		Op:        s.Op,
		Overwrite: s.Overwrite,
	}
}

func chooseOperation(s State, op Operation) State {
	if !op.Valid() {
		return s
	}
	switch {
	case !s.Current.IsSet() && !s.Previous.IsSet():
		return s
	case !s.Current.IsSet():
		// operator switch before the second operand is entered
		return State{
			Current:   s.Current,
			Previous:  s.Previous,
			Op:        op,
			Overwrite: s.Overwrite,
		}
	case !s.Previous.IsSet():
		return State{
			Current:   None,
			Previous:  s.Current,
			Op:        op,
			Overwrite: s.Overwrite,
		}
	default:
		return State{
			Current:   None,
			Previous:  Some(evaluateState(s)),
			Op:        op,
			Overwrite: s.Overwrite,
		}
	}
}

func deleteDigit(s State) State {
	if s.Overwrite {
		return State{
			Current:   None,
			Previous:  s.Previous,
			Op:        s.Op,
			Overwrite: false,
		}
	}
	cur, ok := s.Current.Get()
	if !ok {
		return s
	}
	next := None
	switch len(cur) {
	case 0:
		// an empty evaluation result stays empty
		next = s.Current
	case 1:
	default:
		next = Some(cur[:len(cur)-1])
	}
	return State{
		Current:   next,
		Previous:  s.Previous,
		Op:        s.Op,
		Overwrite: s.Overwrite,
	}
}

func evaluate(s State) State {
	if s.Op == OpNone || !s.Current.IsSet() || !s.Previous.IsSet() {
		return s
	}
	return State{
		Current:   Some(evaluateState(s)),
		Previous:  None,
		Op:        OpNone,
		Overwrite: true,
	}
}
