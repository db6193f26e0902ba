package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"keypad-calculator/internal/calculator"
	"keypad-calculator/internal/observability"
	"keypad-calculator/internal/testutil"

	"github.com/google/uuid"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	observability.Logger = zap.NewNop()
	if err := calculator.InitMetrics(); err != nil {
		t.Fatalf("initializing calculator metrics: %v", err)
	}

	store := calculator.NewStore(0, calculator.DefaultSessionOptions())
	reg, err := observability.NewRegistry(store.Collector())
	if err != nil {
		t.Fatalf("creating registry: %v", err)
	}
	return NewRouter(Deps{
		Calculator: calculator.NewHandler(store, nil),
		Registry:   reg,
	})
}

func TestNewRouterHealthEndpoint(t *testing.T) {
	router := NewRouter(Deps{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	if body := w.Body.String(); body != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", body)
	}
}

func TestNewRouterSessionKeysSetsHeaderAndOmitsRequestIDInBody(t *testing.T) {
	router := newTestRouter(t)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodPost, "/calculator/sessions", nil), router)
	testutil.CheckResponseCode(t, http.StatusCreated, w.Code)

	var created calculator.SessionResponse
	testutil.DecodeJSONBody(t, w.Body, &created)

	body := []byte(`{"keys":["5","+","3","="]}`)
	req := httptest.NewRequest(http.MethodPost, "/calculator/sessions/"+created.ID+"/keys", bytes.NewReader(body))
	w = testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	requestID := w.Result().Header.Get("X-Request-ID")
	if requestID == "" {
		t.Fatal("expected X-Request-ID header to be set")
	}
	if _, err := uuid.Parse(requestID); err != nil {
		t.Fatalf("expected valid UUID in X-Request-ID, got %q: %v", requestID, err)
	}

	var payload map[string]any
	if err := json.NewDecoder(w.Result().Body).Decode(&payload); err != nil {
		t.Fatalf("decoding JSON response: %v", err)
	}

	if _, ok := payload["request_id"]; ok {
		t.Fatal("did not expect request_id field in success JSON body")
	}

	display, ok := payload["display"].(map[string]any)
	if !ok || display["current"] != "8" {
		t.Fatalf("expected current display 8, got %#v", payload["display"])
	}
}

func TestNewRouterMetricsExposesSessionGauge(t *testing.T) {
	router := newTestRouter(t)

	for i := 0; i < 2; i++ {
		w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodPost, "/calculator/sessions", nil), router)
		testutil.CheckResponseCode(t, http.StatusCreated, w.Code)
	}

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/metrics", nil), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	if !strings.Contains(w.Body.String(), "calculator_sessions 2") {
		t.Fatalf("expected calculator_sessions 2 in metrics output")
	}
}

func TestNewRouterWithoutCalculatorHasNoCalculatorRoutes(t *testing.T) {
	router := NewRouter(Deps{})

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodPost, "/calculator/sessions", nil), router)
	testutil.CheckResponseCode(t, http.StatusNotFound, w.Code)
}
