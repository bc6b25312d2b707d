package handler

import (
	"encoding/json"
	"net/http"

	"pyforge/internal/api/v1/dto"
	"pyforge/internal/service"

	"github.com/rs/zerolog"
)

// DLQHandler receives dead-lettered Pub/Sub messages on a push endpoint and
// persists them for later inspection.
type DLQHandler struct {
	service service.DLQService
	logger  zerolog.Logger
}

func NewDLQHandler(s service.DLQService, l zerolog.Logger) *DLQHandler {
	return &DLQHandler{service: s, logger: l}
}

// RegisterRoutes mounts the internal DLQ push endpoint
func (h *DLQHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/internal/dlq", authMw(http.HandlerFunc(h.recordDLQ)))
}

func (h *DLQHandler) recordDLQ(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.PubSubPushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Message.MessageID == "" {
		http.Error(w, "Invalid Pub/Sub message format: missing message ID", http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("messageId", req.Message.MessageID).
		Str("subscription", req.Subscription).
		Msg("Processing dead-letter queue message")

	if err := h.service.ProcessAndSave(r.Context(), &req); err != nil {
		// Still return 204 to Pub/Sub to prevent retries of a message that is
		// already in the DLQ. The error is logged for offline analysis.
		h.logger.Error().Err(err).Msg("Failed to save DLQ message to database")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.logger.Info().
		Str("messageId", req.Message.MessageID).
		Msg("Successfully processed and saved DLQ message")

	w.WriteHeader(http.StatusNoContent)
}
