package calculator

// PressRequest is the JSON body for POST /calculator/sessions/{id}/keys.
type PressRequest struct {
	Keys []string `json:"keys"` // keypad labels, applied in order
}

// EvaluateRequest is the JSON body for POST /calculator/evaluate.
// Absent operands are sent as null.
type EvaluateRequest struct {
	Previous  *string `json:"previous"`
	Current   *string `json:"current"`
	Operation string  `json:"operation"`
}

// EvaluateResponse carries the evaluator result; "" means no result.
type EvaluateResponse struct {
	Result string `json:"result"`
}

// FormatRequest is the JSON body for POST /calculator/format.
type FormatRequest struct {
	Operand *string `json:"operand"`
}

// FormatResponse is null when the operand was null.
type FormatResponse struct {
	Display *string `json:"display"`
}

// StateView is the wire form of State.
type StateView struct {
	CurrentOperand  *string `json:"currentOperand"`
	PreviousOperand *string `json:"previousOperand"`
	Operation       *string `json:"operation"`
	Overwrite       bool    `json:"overwrite"`
}

// DisplayView is the wire form of Display.
type DisplayView struct {
	Previous  string `json:"previous"`
	Operation string `json:"operation"`
	Current   string `json:"current"`
}

// SessionResponse is returned by every session endpoint.
type SessionResponse struct {
	ID          string      `json:"id"`
	State       StateView   `json:"state"`
	Display     DisplayView `json:"display"`
	Evaluations int         `json:"evaluations"`
}

func newStateView(s State) StateView {
	v := StateView{
		CurrentOperand:  s.Current.Ptr(),
		PreviousOperand: s.Previous.Ptr(),
		Overwrite:       s.Overwrite,
	}
	if s.Op != OpNone {
		op := string(s.Op)
		v.Operation = &op
	}
	return v
}

func newSessionResponse(snap Snapshot) SessionResponse {
	return SessionResponse{
		ID:    snap.ID,
		State: newStateView(snap.State),
		Display: DisplayView{
			Previous:  snap.Display.Previous,
			Operation: snap.Display.Operation,
			Current:   snap.Display.Current,
		},
		Evaluations: snap.Evaluations,
	}
}
