package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"keypad-calculator/internal/handlers"
	"keypad-calculator/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Handler serves calculator sessions over HTTP.
type Handler struct {
	store     *Store
	formatter *Formatter
}

// NewHandler returns a Handler backed by store. A nil formatter uses the
// default locale.
func NewHandler(store *Store, formatter *Formatter) *Handler {
	if formatter == nil {
		formatter = defaultFormatter
	}
	return &Handler{store: store, formatter: formatter}
}

// ---------------------------------------------------------------------------
// Handlers: sessions
// ---------------------------------------------------------------------------

// CreateSession handles POST /calculator/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.session.create",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	snap, err := h.store.Create()
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "create", "cannot create session", err, statusFor(err), w)
		return
	}

	sessionsGauge.Add(ctx, 1)
	span.SetAttributes(attribute.String("calculator.session", snap.ID))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator session created",
		zap.String("session", snap.ID),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusCreated, newSessionResponse(snap))
}

// GetSession handles GET /calculator/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.get",
		trace.WithAttributes(attribute.String("calculator.session", id)),
	)
	defer span.End()

	snap, err := h.store.Get(id)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "get", "session not found", err, statusFor(err), w)
		return
	}
	span.SetStatus(codes.Ok, "")

	handlers.WriteJSON(w, http.StatusOK, newSessionResponse(snap))
}

// DeleteSession handles DELETE /calculator/sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.delete",
		trace.WithAttributes(attribute.String("calculator.session", id)),
	)
	defer span.End()

	if err := h.store.Delete(id); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "delete", "session not found", err, statusFor(err), w)
		return
	}

	sessionsGauge.Add(ctx, -1)
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator session deleted",
		zap.String("session", id),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	w.WriteHeader(http.StatusNoContent)
}

// PressKeys handles POST /calculator/sessions/{id}/keys. Validates every
// label, then dispatches them to the session in order.
func (h *Handler) PressKeys(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.press",
		trace.WithAttributes(
			attribute.String("calculator.session", id),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req PressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "press", "invalid request body", err, http.StatusBadRequest, w)
		return
	}
	if len(req.Keys) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, "press", "no keys provided", fmt.Errorf("keys array is empty"), http.StatusBadRequest, w)
		return
	}

	actions, err := ParseKeys(req.Keys)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "press", err.Error(), err, http.StatusBadRequest, w)
		return
	}

	start := time.Now()
	snap, err := h.store.Press(id, actions...)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "press", "session not found", err, statusFor(err), w)
		return
	}

	evaluations := 0
	for _, a := range actions {
		attrs := metric.WithAttributes(attribute.String("action", actionKind(a)))
		keysCounter.Add(ctx, 1, attrs)
		if _, ok := a.(Evaluate); ok {
			evaluations++
		}
	}
	if evaluations > 0 {
		evaluationCounter.Add(ctx, int64(evaluations))
	}
	dispatchHistogram.Record(ctx, elapsed)

	span.AddEvent("dispatch.complete", trace.WithAttributes(
		attribute.Int("keys", len(actions)),
		attribute.String("current", snap.State.Current.String()),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator keys dispatched",
		zap.String("session", id),
		zap.Strings("keys", req.Keys),
		zap.String("current", snap.State.Current.String()),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, newSessionResponse(snap))
}

// ---------------------------------------------------------------------------
// Handlers: stateless evaluator and formatter
// ---------------------------------------------------------------------------

// EvaluateOperands handles POST /calculator/evaluate
func (h *Handler) EvaluateOperands(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator.evaluate")
	defer span.End()

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	// unknown symbols fall through to the evaluator's empty result
	op, _ := ParseOperation(req.Operation)
	result := Compute(OperandFromPtr(req.Previous), OperandFromPtr(req.Current), op)

	evaluationCounter.Add(ctx, 1)
	span.SetAttributes(
		attribute.String("calculator.operation", string(op)),
		attribute.String("calculator.result", result),
	)
	span.SetStatus(codes.Ok, "")

	logger.Debug("calculator operands evaluated",
		zap.String("operation", string(op)),
		zap.String("result", result),
	)

	handlers.WriteJSON(w, http.StatusOK, EvaluateResponse{Result: result})
}

// FormatOperand handles POST /calculator/format
func (h *Handler) FormatOperand(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator.format")
	defer span.End()

	var req FormatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "format", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	var resp FormatResponse
	if out, ok := h.formatter.Format(OperandFromPtr(req.Operand)); ok {
		resp.Display = &out
	}
	span.SetStatus(codes.Ok, "")

	handlers.WriteJSON(w, http.StatusOK, resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrStoreFull):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func actionKind(a Action) string {
	switch a.(type) {
	case AddDigit:
		return "add-digit"
	case ChooseOperation:
		return "choose-operation"
	case Clear:
		return "clear"
	case DeleteDigit:
		return "delete-digit"
	case Evaluate:
		return "evaluate"
	default:
		return "unknown"
	}
}
