package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"pyforge/internal/api/v1/dto"
	"pyforge/internal/middleware"
	"pyforge/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// ExecutionHandler handles sandboxed code run requests.
type ExecutionHandler struct {
	executionService service.ExecutionService
	validate         *validator.Validate
	logger           zerolog.Logger
}

func NewExecutionHandler(executionService service.ExecutionService, v *validator.Validate, logger zerolog.Logger) *ExecutionHandler {
	return &ExecutionHandler{executionService: executionService, validate: v, logger: logger}
}

// RegisterRoutes mounts v1 execution routes
func (h *ExecutionHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/executions", authMw(http.HandlerFunc(h.createExecution)))
}

// createExecution godoc
// @Summary Run code for a lesson
// @Description Executes the submitted Python in the sandbox and returns stdout, stderr and wall-clock duration. Every run is recorded.
// @Tags executions
// @Accept json
// @Produce json
// @Param execution body dto.ExecutionRequestDTO true "Lesson and code to run"
// @Success 200 {object} dto.ExecutionResponseDTO
// @Failure 400 {string} string "Invalid JSON payload"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 404 {string} string "lesson not found"
// @Router /executions [post]
func (h *ExecutionHandler) createExecution(w http.ResponseWriter, r *http.Request) {
	// 1. Check method
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	// 2. Extract UserID from context
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	// 3. Decode and validate request body
	var req dto.ExecutionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	// 4. Run the code. Sandbox failures arrive inside the result, so any
	// error here is a precondition or infrastructure problem.
	result, err := h.executionService.Execute(r.Context(), userID, req.LessonID, req.Code)
	if err != nil {
		if errors.Is(err, service.ErrLessonNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to execute code: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// 5. Map result to response DTO
	resp := dto.ExecutionResponseDTO{
		Output:          result.Output,
		Error:           result.Error,
		ExecutionTimeMS: result.ExecutionTimeMS,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
}
