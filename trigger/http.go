package trigger

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kkhys/lgtmd/diag"
)

// FailureLister is the optional read side of a FailureRecorder. Satisfied by
// *diag.Recorder.
type FailureLister interface {
	Failures(ctx context.Context, limit int) ([]diag.Failure, error)
}

// Router returns the local HTTP trigger surface.
//
//	POST /trigger  — fire one invocation (409 while the gate is disabled)
//	GET  /health   — liveness
//	GET  /failures — recent diagnostic records
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/trigger", func(w http.ResponseWriter, req *http.Request) {
		if !h.Enabled() {
			writeJSON(w, http.StatusConflict, map[string]string{"status": "disabled"})
			return
		}
		h.HandleTrigger(req.Context())
		// Fire-and-forget contract: failures surface only through the
		// diagnostic channel, never through this response.
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "triggered"})
	})

	r.Get("/failures", func(w http.ResponseWriter, req *http.Request) {
		lister, ok := h.rec.(FailureLister)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no failure journal"})
			return
		}
		failures, err := lister.Failures(req.Context(), 50)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if failures == nil {
			failures = []diag.Failure{}
		}
		writeJSON(w, http.StatusOK, failures)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
