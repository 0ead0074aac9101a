// Package handler is the HTTP surface: session lifecycle, run triggers and
// the read-only projections.
package handler

import (
	"strings"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"epidemic-scenarios/internal/model"
	"epidemic-scenarios/internal/session"
)

type Handler struct {
	sessions *session.Registry
	log      zerolog.Logger
	metrics  fasthttp.RequestHandler
}

func New(reg *session.Registry, log zerolog.Logger) *Handler {
	return &Handler{
		sessions: reg,
		log:      log,
		metrics:  fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()),
	}
}

// Handle routes every request.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())

	switch {
	case path == "/healthz":
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")
	case path == "/metrics":
		h.metrics(ctx)
	case path == "/sessions" && method == fasthttp.MethodPost:
		h.createSession(ctx)
	case strings.HasPrefix(path, "/sessions/"):
		h.sessionRoute(ctx, method, strings.TrimPrefix(path, "/sessions/"))
	default:
		writeError(ctx, fasthttp.StatusNotFound, "NOT_FOUND", "no such route")
	}
}

func (h *Handler) sessionRoute(ctx *fasthttp.RequestCtx, method, rest string) {
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" {
		writeError(ctx, fasthttp.StatusNotFound, "NOT_FOUND", "no such route")
		return
	}

	s, ok := h.sessions.Get(parts[0])
	if !ok {
		writeError(ctx, fasthttp.StatusNotFound, "SESSION_NOT_FOUND", "unknown or expired session")
		return
	}

	switch {
	case parts[1] == "runs" && method == fasthttp.MethodPost:
		h.runScenario(ctx, s)
	case parts[1] == "comparison" && method == fasthttp.MethodGet:
		writeJSON(ctx, fasthttp.StatusOK, s.Store.ComparisonTable())
	case parts[1] == "series" && method == fasthttp.MethodGet:
		writeJSON(ctx, fasthttp.StatusOK, s.Store.ChartSeries())
	default:
		writeError(ctx, fasthttp.StatusNotFound, "NOT_FOUND", "no such route")
	}
}

func (h *Handler) createSession(ctx *fasthttp.RequestCtx) {
	s := h.sessions.Create()
	writeJSON(ctx, fasthttp.StatusCreated, model.SessionResponse{
		SessionID:  s.ID,
		Disclaimer: session.Disclaimer,
	})
}

func (h *Handler) runScenario(ctx *fasthttp.RequestCtx, s *session.Session) {
	// Decoding the body is the snapshot: the run works from this request
	// object only, never from live form state.
	var req model.RunRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.log.Debug().Err(err).Msg("undecodable run request")
		writeError(ctx, fasthttp.StatusBadRequest, "INVALID_INPUT", "invalid request body: "+err.Error())
		return
	}

	resp, err := s.Runner.Run(ctx, req)
	if err != nil {
		status := statusFor(model.ErrorCode(err))
		writeError(ctx, status, model.ErrorCode(err), err.Error())
		return
	}
	resp.RunMetadata.SessionID = s.ID
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

// statusFor maps taxonomy codes onto HTTP statuses. Bad user input is 400;
// everything the engine or analyzer rejects is 422; the rest is 500.
func statusFor(code string) int {
	switch code {
	case "INVALID_INPUT":
		return fasthttp.StatusBadRequest
	case "MALFORMED_TRAJECTORY", "OUT_OF_RANGE", "RT_ESTIMATION", "INDICATOR_NOT_FOUND":
		return fasthttp.StatusUnprocessableEntity
	default:
		return fasthttp.StatusInternalServerError
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, code, message string) {
	body, _ := json.Marshal(model.ErrorResponse{
		Status:  status,
		Code:    code,
		Message: message,
	})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
