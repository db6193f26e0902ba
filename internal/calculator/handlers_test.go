package calculator

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"keypad-calculator/internal/observability"
	"keypad-calculator/internal/testutil"

	"github.com/go-chi/chi/v5"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	observability.Logger = zap.NewNop()
	if err := InitMetrics(); err != nil {
		fmt.Fprintf(os.Stderr, "initializing calculator metrics: %v\n", err)
		os.Exit(1)
	}
	goleak.VerifyTestMain(m)
}

func newTestHandler(max int) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(NewStore(max, DefaultSessionOptions()), nil))
	return r
}

func createSession(t *testing.T, h http.Handler) SessionResponse {
	t.Helper()
	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodPost, "/calculator/sessions", nil), h)
	testutil.CheckResponseCode(t, http.StatusCreated, w.Code)

	var resp SessionResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	return resp
}

func pressKeys(t *testing.T, h http.Handler, id string, keys ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/calculator/sessions/"+id+"/keys", PressRequest{Keys: keys})
	return testutil.ExecuteRequest(req, h)
}

func TestCreateSessionReturnsEmptyState(t *testing.T) {
	h := newTestHandler(0)

	resp := createSession(t, h)
	if resp.ID == "" {
		t.Fatal("expected session id")
	}
	if resp.State != (StateView{}) {
		t.Fatalf("expected empty state, got %+v", resp.State)
	}
}

func TestPressKeysEvaluates(t *testing.T) {
	h := newTestHandler(0)
	id := createSession(t, h).ID

	w := pressKeys(t, h, id, "1", "2", "3", "4", ".", "5", "+")
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp SessionResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	if resp.Display.Previous != "1,234.5" || resp.Display.Operation != "+" {
		t.Fatalf("unexpected display %+v", resp.Display)
	}
	if resp.State.CurrentOperand != nil {
		t.Fatalf("expected null current operand, got %q", *resp.State.CurrentOperand)
	}

	w = pressKeys(t, h, id, "5", "=")
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)
	testutil.DecodeJSONBody(t, w.Body, &resp)

	if resp.State.CurrentOperand == nil || *resp.State.CurrentOperand != "1239.5" {
		t.Fatalf("expected current operand 1239.5, got %+v", resp.State)
	}
	if !resp.State.Overwrite || resp.State.Operation != nil || resp.State.PreviousOperand != nil {
		t.Fatalf("unexpected state after evaluate %+v", resp.State)
	}
	if resp.Display.Current != "1,239.5" {
		t.Fatalf("expected display 1,239.5, got %q", resp.Display.Current)
	}
	if resp.Evaluations != 1 {
		t.Fatalf("expected 1 evaluation, got %d", resp.Evaluations)
	}
}

func TestPressKeysRejectsUnknownKeyWithoutApplyingAny(t *testing.T) {
	h := newTestHandler(0)
	id := createSession(t, h).ID

	w := pressKeys(t, h, id, "7", "%")
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

	w = testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/calculator/sessions/"+id, nil), h)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp SessionResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	if resp.State.CurrentOperand != nil {
		t.Fatalf("expected no key applied, got %+v", resp.State)
	}
}

func TestPressKeysBadRequests(t *testing.T) {
	h := newTestHandler(0)
	id := createSession(t, h).ID

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"keys":`},
		{"empty keys", `{"keys":[]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/calculator/sessions/"+id+"/keys", bytes.NewBufferString(tc.body))
			w := testutil.ExecuteRequest(req, h)
			testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

			var body map[string]string
			testutil.DecodeJSONBody(t, w.Body, &body)
			if body["error"] == "" {
				t.Fatal("expected error message")
			}
		})
	}
}

func TestUnknownSessionIsNotFound(t *testing.T) {
	h := newTestHandler(0)

	w := pressKeys(t, h, "missing", "1")
	testutil.CheckResponseCode(t, http.StatusNotFound, w.Code)

	w = testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/calculator/sessions/missing", nil), h)
	testutil.CheckResponseCode(t, http.StatusNotFound, w.Code)

	w = testutil.ExecuteRequest(httptest.NewRequest(http.MethodDelete, "/calculator/sessions/missing", nil), h)
	testutil.CheckResponseCode(t, http.StatusNotFound, w.Code)
}

func TestDeleteSession(t *testing.T) {
	h := newTestHandler(0)
	id := createSession(t, h).ID

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodDelete, "/calculator/sessions/"+id, nil), h)
	testutil.CheckResponseCode(t, http.StatusNoContent, w.Code)

	w = testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/calculator/sessions/"+id, nil), h)
	testutil.CheckResponseCode(t, http.StatusNotFound, w.Code)
}

func TestCreateSessionWhenFull(t *testing.T) {
	h := newTestHandler(1)
	createSession(t, h)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodPost, "/calculator/sessions", nil), h)
	testutil.CheckResponseCode(t, http.StatusServiceUnavailable, w.Code)
}

func TestEvaluateOperandsEndpoint(t *testing.T) {
	h := newTestHandler(0)
	str := func(s string) *string { return &s }

	tests := []struct {
		name string
		req  EvaluateRequest
		want string
	}{
		{"divide", EvaluateRequest{Previous: str("12"), Current: str("3"), Operation: "÷"}, "4"},
		{"ascii alias", EvaluateRequest{Previous: str("2"), Current: str("3"), Operation: "*"}, "6"},
		{"divide by zero", EvaluateRequest{Previous: str("1"), Current: str("0"), Operation: "÷"}, "Infinity"},
		{"absent operand", EvaluateRequest{Previous: str("1"), Operation: "+"}, ""},
		{"unknown operation", EvaluateRequest{Previous: str("1"), Current: str("2"), Operation: "^"}, ""},
		{"trailing text ignored", EvaluateRequest{Previous: str("12abc"), Current: str("1"), Operation: "+"}, "13"},
		{"inf is not a number", EvaluateRequest{Previous: str("inf"), Current: str("1"), Operation: "+"}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := testutil.ExecuteRequest(testutil.NewJSONRequest(t, http.MethodPost, "/calculator/evaluate", tc.req), h)
			testutil.CheckResponseCode(t, http.StatusOK, w.Code)

			var resp EvaluateResponse
			testutil.DecodeJSONBody(t, w.Body, &resp)
			if resp.Result != tc.want {
				t.Fatalf("expected result %q, got %q", tc.want, resp.Result)
			}
		})
	}
}

func TestFormatOperandEndpoint(t *testing.T) {
	h := newTestHandler(0)

	w := testutil.ExecuteRequest(testutil.NewJSONRequest(t, http.MethodPost, "/calculator/format", map[string]any{"operand": "1234.5"}), h)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp FormatResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	if resp.Display == nil || *resp.Display != "1,234.5" {
		t.Fatalf("expected 1,234.5, got %+v", resp.Display)
	}

	w = testutil.ExecuteRequest(testutil.NewJSONRequest(t, http.MethodPost, "/calculator/format", map[string]any{"operand": nil}), h)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	resp = FormatResponse{}
	testutil.DecodeJSONBody(t, w.Body, &resp)
	if resp.Display != nil {
		t.Fatalf("expected null display, got %q", *resp.Display)
	}
}
