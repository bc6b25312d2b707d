package service

import (
	"testing"

	"pyforge/internal/model"
)

func strPtr(s string) *string {
	return &s
}

func TestNormalizePlan(t *testing.T) {
	testCases := []struct {
		name     string
		plan     *string
		expected string
	}{
		{name: "nil plan falls back to free", plan: nil, expected: PlanFree},
		{name: "empty plan falls back to free", plan: strPtr(""), expected: PlanFree},
		{name: "free stays free", plan: strPtr("free"), expected: PlanFree},
		{name: "hobby passes through", plan: strPtr("hobby"), expected: PlanHobby},
		{name: "pro passes through", plan: strPtr("pro"), expected: PlanPro},
		{name: "lifetime passes through", plan: strPtr("lifetime"), expected: PlanLifetime},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizePlan(tc.plan); got != tc.expected {
				t.Errorf("NormalizePlan(%v) = %q, want %q", tc.plan, got, tc.expected)
			}
		})
	}
}

func TestPlanHasPremiumAccess(t *testing.T) {
	testCases := []struct {
		plan     string
		expected bool
	}{
		{plan: PlanFree, expected: false},
		{plan: PlanHobby, expected: false},
		{plan: PlanPro, expected: true},
		{plan: PlanLifetime, expected: true},
		{plan: "enterprise", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.plan, func(t *testing.T) {
			if got := PlanHasPremiumAccess(tc.plan); got != tc.expected {
				t.Errorf("PlanHasPremiumAccess(%q) = %v, want %v", tc.plan, got, tc.expected)
			}
		})
	}
}

func TestResolveLessonContentRedactsPremiumSolutions(t *testing.T) {
	lesson := &model.Lesson{
		ID:                  "lesson-1",
		Slug:                "build-a-parser",
		Title:               "Build a Parser",
		IsPremium:           true,
		ProblemStatement:    "Write a parser for arithmetic expressions.",
		StarterCode:         "def parse(tokens):\n    pass\n",
		SolutionCode:        "def parse(tokens):\n    return expr(tokens)\n",
		SolutionExplanation: "Recursive descent with one token of lookahead.",
	}

	testCases := []struct {
		name         string
		plan         string
		wantRedacted bool
	}{
		{name: "free viewer is redacted", plan: PlanFree, wantRedacted: true},
		{name: "hobby viewer is redacted", plan: PlanHobby, wantRedacted: true},
		{name: "pro viewer sees solutions", plan: PlanPro, wantRedacted: false},
		{name: "lifetime viewer sees solutions", plan: PlanLifetime, wantRedacted: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			content := ResolveLessonContent(lesson, tc.plan)

			if content.Redacted != tc.wantRedacted {
				t.Fatalf("Redacted = %v, want %v", content.Redacted, tc.wantRedacted)
			}

			// The problem statement and starter code are never withheld.
			if content.ProblemStatement != lesson.ProblemStatement {
				t.Errorf("ProblemStatement was altered: %q", content.ProblemStatement)
			}
			if content.StarterCode != lesson.StarterCode {
				t.Errorf("StarterCode was altered: %q", content.StarterCode)
			}

			if tc.wantRedacted {
				if content.SolutionCode != RedactedSolutionCode {
					t.Errorf("SolutionCode = %q, want placeholder", content.SolutionCode)
				}
				if content.SolutionExplanation != RedactedSolutionExplanation {
					t.Errorf("SolutionExplanation = %q, want placeholder", content.SolutionExplanation)
				}
			} else {
				if content.SolutionCode != lesson.SolutionCode {
					t.Errorf("SolutionCode = %q, want original", content.SolutionCode)
				}
				if content.SolutionExplanation != lesson.SolutionExplanation {
					t.Errorf("SolutionExplanation = %q, want original", content.SolutionExplanation)
				}
			}
		})
	}
}

func TestResolveLessonContentFreeLessonNeverRedacted(t *testing.T) {
	lesson := &model.Lesson{
		ID:                  "lesson-2",
		Slug:                "hello-world",
		Title:               "Hello World",
		IsPremium:           false,
		SolutionCode:        "print(\"hello\")\n",
		SolutionExplanation: "Call print.",
	}

	for _, plan := range []string{PlanFree, PlanHobby, PlanPro, PlanLifetime} {
		content := ResolveLessonContent(lesson, plan)
		if content.Redacted {
			t.Errorf("plan %q: free lesson was redacted", plan)
		}
		if content.SolutionCode != lesson.SolutionCode {
			t.Errorf("plan %q: SolutionCode = %q, want original", plan, content.SolutionCode)
		}
	}
}
