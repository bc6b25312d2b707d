package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pyforge/internal/api/v1/dto"
	"pyforge/internal/middleware"
	"pyforge/internal/model"
	"pyforge/internal/service"

	"github.com/rs/zerolog"
)

// LessonHandler serves the catalog and lesson pages. Routes are mounted
// behind optional auth: anonymous viewers may browse the catalog, but the
// lesson page itself refuses requests without a user identity.
type LessonHandler struct {
	lessonService service.LessonService
	logger        zerolog.Logger
}

func NewLessonHandler(lessonService service.LessonService, logger zerolog.Logger) *LessonHandler {
	return &LessonHandler{lessonService: lessonService, logger: logger}
}

// RegisterRoutes mounts v1 catalog routes
func (h *LessonHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/projects", authMw(http.HandlerFunc(h.listProjects)))
	mux.Handle("/projects/", authMw(http.HandlerFunc(h.getLessonView)))
}

// viewerID returns the user ID from context, or "" for anonymous viewers.
func viewerID(r *http.Request) string {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok {
		return ""
	}
	return userID
}

// listProjects godoc
// @Summary List the published project catalog
// @Description Returns every published project with its lessons, annotated with the viewer's lock and completion state.
// @Tags projects
// @Produce json
// @Success 200 {array} dto.ProjectListItemDTO
// @Failure 500 {string} string "Failed to list projects"
// @Router /projects [get]
func (h *LessonHandler) listProjects(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	items, err := h.lessonService.ListProjects(r.Context(), viewerID(r))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list projects")
		http.Error(w, "Failed to list projects", http.StatusInternalServerError)
		return
	}

	resp := make([]dto.ProjectListItemDTO, 0, len(items))
	for _, item := range items {
		lessons := make([]dto.LessonSummaryDTO, 0, len(item.Lessons))
		for _, l := range item.Lessons {
			lessons = append(lessons, dto.LessonSummaryDTO{
				ID:        l.ID,
				Slug:      l.Slug,
				Title:     l.Title,
				SortOrder: l.SortOrder,
				IsPremium: l.IsPremium,
				IsLocked:  l.IsLocked,
				Completed: l.Completed,
			})
		}
		resp = append(resp, dto.ProjectListItemDTO{
			ID:             item.ID,
			Slug:           item.Slug,
			Title:          item.Title,
			Description:    item.Description,
			PhaseSlug:      item.PhaseSlug,
			PhaseTitle:     item.PhaseTitle,
			SortOrder:      item.SortOrder,
			Lessons:        lessons,
			CompletedCount: item.CompletedCount,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// getLessonView godoc
// @Summary Get a lesson page
// @Description Resolves a lesson by project and lesson slug. Premium solution fields are replaced with placeholders unless the viewer's plan unlocks them.
// @Tags projects
// @Produce json
// @Param projectSlug path string true "Project slug"
// @Param lessonSlug path string true "Lesson slug"
// @Success 200 {object} dto.LessonViewResponseDTO
// @Failure 401 {string} string "not authenticated"
// @Failure 404 {string} string "lesson not found"
// @Failure 500 {string} string "Failed to load lesson"
// @Router /projects/{projectSlug}/lessons/{lessonSlug} [get]
func (h *LessonHandler) getLessonView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	// Path shape: /projects/{projectSlug}/lessons/{lessonSlug}
	path := strings.TrimPrefix(r.URL.Path, "/projects/")
	parts := strings.Split(path, "/")
	if len(parts) != 3 || parts[1] != "lessons" || parts[0] == "" || parts[2] == "" {
		http.NotFound(w, r)
		return
	}
	projectSlug, lessonSlug := parts[0], parts[2]

	view, err := h.lessonService.GetLessonView(r.Context(), viewerID(r), projectSlug, lessonSlug)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAuthenticated):
			http.Error(w, err.Error(), http.StatusUnauthorized)
		case errors.Is(err, service.ErrLessonNotFound):
			http.Error(w, "Lesson not found", http.StatusNotFound)
		default:
			h.logger.Error().Err(err).
				Str("project_slug", projectSlug).
				Str("lesson_slug", lessonSlug).
				Msg("failed to load lesson")
			http.Error(w, "Failed to load lesson", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toLessonViewResponse(view))
}

func toLessonViewResponse(view *model.LessonView) dto.LessonViewResponseDTO {
	return dto.LessonViewResponseDTO{
		ProjectID:    view.ProjectID,
		ProjectSlug:  view.ProjectSlug,
		ProjectTitle: view.ProjectTitle,
		Lesson: dto.LessonContentDTO{
			ID:                  view.Lesson.ID,
			Slug:                view.Lesson.Slug,
			Title:               view.Lesson.Title,
			SortOrder:           view.Lesson.SortOrder,
			IsPremium:           view.Lesson.IsPremium,
			ProblemStatement:    view.Lesson.ProblemStatement,
			StarterCode:         view.Lesson.StarterCode,
			SolutionCode:        view.Lesson.SolutionCode,
			SolutionExplanation: view.Lesson.SolutionExplanation,
			Redacted:            view.Lesson.Redacted,
		},
		Status:      view.Status,
		SavedCode:   view.SavedCode,
		CompletedAt: view.CompletedAt,
		IsLocked:    view.IsLocked,
	}
}
