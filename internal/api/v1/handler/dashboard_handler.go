package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"pyforge/internal/api/v1/dto"
	"pyforge/internal/middleware"
	"pyforge/internal/service"

	"github.com/rs/zerolog"
)

// DashboardHandler serves the signed-in home view.
type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           zerolog.Logger
}

func NewDashboardHandler(dashboardService service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, logger: logger}
}

// RegisterRoutes mounts v1 dashboard routes
func (h *DashboardHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/dashboard", authMw(http.HandlerFunc(h.getDashboard)))
}

// getDashboard godoc
// @Summary Get the authenticated user's dashboard
// @Description Returns profile, completion stats, the current project and recent activity in one payload.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardResponseDTO
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 404 {string} string "user not found"
// @Failure 500 {string} string "Failed to load dashboard"
// @Router /dashboard [get]
func (h *DashboardHandler) getDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	view, err := h.dashboardService.GetDashboard(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			h.logger.Error().Err(err).Str("user_id", userID).Msg("failed to load dashboard")
			http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		}
		return
	}

	resp := dto.DashboardResponseDTO{
		UserName:         view.UserName,
		Plan:             view.Plan,
		CompletedLessons: view.CompletedLessons,
		TotalLessons:     view.TotalLessons,
		LastActiveAt:     view.LastActiveAt,
		RecentActivity:   make([]dto.RecentActivityDTO, 0, len(view.RecentActivity)),
	}
	if view.CurrentProject != nil {
		resp.CurrentProject = &dto.ProjectRefDTO{
			ID:    view.CurrentProject.ID,
			Slug:  view.CurrentProject.Slug,
			Title: view.CurrentProject.Title,
		}
	}
	for _, row := range view.RecentActivity {
		resp.RecentActivity = append(resp.RecentActivity, dto.RecentActivityDTO{
			LessonID:     row.LessonID,
			LessonSlug:   row.LessonSlug,
			LessonTitle:  row.LessonTitle,
			ProjectID:    row.ProjectID,
			ProjectSlug:  row.ProjectSlug,
			ProjectTitle: row.ProjectTitle,
			Status:       row.Status,
			UpdatedAt:    row.UpdatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
