package artifact

import (
	"fmt"
	"strconv"

	"github.com/shadowtrack/shadowtrack/internal/domain/entry"
)

// descriptionPrompt embeds every content field and targets the ~700
// character limit shared by AMCAS and TMDSAS activity descriptions.
func descriptionPrompt(e entry.Entry) string {
	return fmt.Sprintf(`You are helping a pre-med student write a 700-character activity description for a medical school application.
Based on this shadowing experience, write a compelling, professional summary.

Physician: %s
Specialty: %s
Date(s): %s
Hours: %s
Observations: %s
Reflections: %s

Format it to fit AMCAS or TMDSAS character limits.`,
		e.Physician, e.Specialty, e.Date, formatHours(e.Hours), e.Observations, e.Reflections)
}

// insightPrompt draws only on the observations and reflections fields.
func insightPrompt(e entry.Entry) string {
	return fmt.Sprintf(`You are helping a pre-med student identify their strengths based on a shadowing experience.

Read this:
Observations: %s
Reflections: %s

Return 2-3 character traits the student demonstrated (e.g., empathy, curiosity, resilience), and explain briefly how each was shown. Be concise.`,
		e.Observations, e.Reflections)
}

// tunePrompt rewrites the current description, keeping the length constraint.
func tunePrompt(description string, tone Tone) string {
	return fmt.Sprintf(`Rewrite the following activity description in a more "%s" tone, while keeping it professional and under 700 characters.

Description:
%s`, tone, description)
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
