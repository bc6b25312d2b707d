package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"pyforge/internal/api/v1/dto"
	"pyforge/internal/middleware"
	"pyforge/internal/model"
	"pyforge/internal/service"

	"github.com/go-playground/validator/v10"
)

// ProgressHandler handles lesson progress writes.
type ProgressHandler struct {
	progressService service.ProgressService
	validate        *validator.Validate
}

func NewProgressHandler(progressService service.ProgressService, v *validator.Validate) *ProgressHandler {
	return &ProgressHandler{progressService: progressService, validate: v}
}

// RegisterRoutes mounts v1 progress routes
func (h *ProgressHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/progress/code", authMw(http.HandlerFunc(h.saveCode)))
	mux.Handle("/progress/complete", authMw(http.HandlerFunc(h.markComplete)))
}

// saveCode godoc
// @Summary Save scratch code for a lesson
// @Description Upserts the viewer's editor contents. A completed lesson keeps its completed status.
// @Tags progress
// @Accept json
// @Produce json
// @Param progress body dto.ProgressSaveCodeDTO true "Lesson and code"
// @Success 200 {object} dto.ProgressResponseDTO
// @Failure 400 {string} string "Invalid JSON payload"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 404 {string} string "lesson not found"
// @Router /progress/code [put]
func (h *ProgressHandler) saveCode(w http.ResponseWriter, r *http.Request) {
	// 1. Check method
	if r.Method != http.MethodPut {
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
	var req dto.ProgressSaveCodeDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	// 4. Save the code
	progress, err := h.progressService.SaveCode(r.Context(), userID, req.LessonID, req.Code)
	if err != nil {
		writeProgressError(w, err)
		return
	}

	// 5. Return response
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toProgressResponse(progress))
}

// markComplete godoc
// @Summary Mark a lesson as completed
// @Description Marks the lesson completed for the viewer. Idempotent; repeat calls keep the original completion time.
// @Tags progress
// @Accept json
// @Produce json
// @Param progress body dto.ProgressCompleteDTO true "Lesson to complete"
// @Success 200 {object} dto.ProgressResponseDTO
// @Failure 400 {string} string "Invalid JSON payload"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 404 {string} string "lesson not found"
// @Router /progress/complete [post]
func (h *ProgressHandler) markComplete(w http.ResponseWriter, r *http.Request) {
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
	var req dto.ProgressCompleteDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	// 4. Mark the lesson completed
	progress, err := h.progressService.MarkComplete(r.Context(), userID, req.LessonID)
	if err != nil {
		writeProgressError(w, err)
		return
	}

	// 5. Return response
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toProgressResponse(progress))
}

func writeProgressError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrLessonNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "Failed to update progress: "+err.Error(), http.StatusInternalServerError)
	}
}

func toProgressResponse(p *model.UserProgress) dto.ProgressResponseDTO {
	return dto.ProgressResponseDTO{
		LessonID:    p.LessonID,
		Status:      p.Status,
		SavedCode:   p.SavedCode,
		CompletedAt: p.CompletedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
