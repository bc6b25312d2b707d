package service

import "pyforge/internal/model"

// Subscription plan identifiers. An unknown or missing plan is treated as
// the free plan.
const (
	PlanFree     = "free"
	PlanHobby    = "hobby"
	PlanPro      = "pro"
	PlanLifetime = "lifetime"
)

// Placeholder text substituted for the solution fields of a locked lesson.
const (
	RedactedSolutionCode        = "# Upgrade to a Pro or Lifetime plan to unlock the solution."
	RedactedSolutionExplanation = "Upgrade to a Pro or Lifetime plan to unlock the solution walkthrough for this lesson."
)

// NormalizePlan maps the nullable stored plan to an effective plan identifier.
func NormalizePlan(plan *string) string {
	if plan == nil || *plan == "" {
		return PlanFree
	}
	return *plan
}

// PlanHasPremiumAccess reports whether a plan unlocks premium lesson content.
func PlanHasPremiumAccess(plan string) bool {
	return plan == PlanPro || plan == PlanLifetime
}

// LessonLocked reports whether a lesson's solution material is withheld from
// a viewer on the given plan.
func LessonLocked(lesson *model.Lesson, plan string) bool {
	return lesson.IsPremium && !PlanHasPremiumAccess(plan)
}

// ResolveLessonContent produces the viewer-facing copy of a lesson. The
// problem statement and starter code always pass through unchanged; the
// solution fields are replaced with placeholders when the lesson is locked
// for the viewer's plan.
func ResolveLessonContent(lesson *model.Lesson, plan string) model.LessonContent {
	content := model.LessonContent{
		ID:                  lesson.ID,
		Slug:                lesson.Slug,
		Title:               lesson.Title,
		SortOrder:           lesson.SortOrder,
		IsPremium:           lesson.IsPremium,
		ProblemStatement:    lesson.ProblemStatement,
		StarterCode:         lesson.StarterCode,
		SolutionCode:        lesson.SolutionCode,
		SolutionExplanation: lesson.SolutionExplanation,
	}

	if LessonLocked(lesson, plan) {
		content.SolutionCode = RedactedSolutionCode
		content.SolutionExplanation = RedactedSolutionExplanation
		content.Redacted = true
	}

	return content
}
