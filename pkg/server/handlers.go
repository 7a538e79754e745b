package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	pcerrors "github.com/pipecheck/pipecheck/pkg/errors"
	"github.com/pipecheck/pipecheck/pkg/observability"
	"github.com/pipecheck/pipecheck/pkg/pipeline"
)

// healthResponse is the liveness payload.
type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// errorBody wraps a structured error for the wire.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleHealth serves GET / and GET /health. No domain logic.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Message: "pipecheck API is running",
	})
}

// handleParse serves POST /pipelines/parse: decode the pipeline, compute (or
// look up) its summary, and respond with node count, edge count, and the
// acyclicity verdict. Counts are raw input lengths - edges referencing
// unknown nodes still count.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)

	p, err := pipeline.ReadPipeline(r.Body)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge,
				pcerrors.New(pcerrors.ErrCodePayloadTooBig, "request body exceeds %d bytes", tooBig.Limit))
			return
		}
		writeError(w, http.StatusBadRequest,
			pcerrors.Wrap(pcerrors.ErrCodeInvalidPayload, err, "invalid pipeline payload"))
		return
	}

	for _, n := range p.Nodes {
		if err := pcerrors.ValidateNodeID(n.ID); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	key := s.keyer.VerdictKey(p)
	if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		var cached pipeline.Summary
		if json.Unmarshal(data, &cached) == nil {
			observability.Cache().OnCacheHit(ctx, "verdict")
			writeJSON(w, http.StatusOK, cached)
			return
		}
	} else if err != nil {
		// The cache is an optimization; a broken backend must not fail
		// the request.
		s.logger.Warn("cache get failed", "err", err, "request_id", requestIDFromContext(ctx))
	}
	observability.Cache().OnCacheMiss(ctx, "verdict")

	observability.Validation().OnValidateStart(ctx, len(p.Nodes), len(p.Edges))
	start := time.Now()
	summary := pipeline.Analyze(p)
	observability.Validation().OnValidateComplete(ctx, summary.IsDAG, time.Since(start))

	if data, err := json.Marshal(summary); err == nil {
		if err := s.cache.Set(ctx, key, data, s.cfg.Cache.VerdictTTL.Duration); err != nil {
			s.logger.Warn("cache set failed", "err", err, "request_id", requestIDFromContext(ctx))
		} else {
			observability.Cache().OnCacheSet(ctx, "verdict", len(data))
		}
	}

	writeJSON(w, http.StatusOK, summary)
}

// writeJSON renders v with the given status. Encoding failures past the
// header write can only be logged by the caller's middleware.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders a structured error with its machine-readable code.
func writeError(w http.ResponseWriter, status int, err error) {
	code := pcerrors.GetCode(err)
	if code == "" {
		code = pcerrors.ErrCodeInternal
	}
	writeJSON(w, status, errorBody{Error: errorDetail{
		Code:    string(code),
		Message: pcerrors.UserMessage(err),
	}})
}
