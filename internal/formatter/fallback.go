package formatter

import (
	"fmt"
	"strings"

	"github.com/justsurfingit/job-description-generator/internal/dtos"
)

var experienceLabels = map[string]string{
	"entry":  "Entry Level (0-2 years)",
	"mid":    "Mid Level (3-5 years)",
	"senior": "Senior Level (5-8 years)",
	"lead":   "Lead/Principal (8+ years)",
}

var experienceRequirements = map[string]string{
	"entry":  "0-2 years of experience",
	"mid":    "3-5 years of experience",
	"senior": "5-8 years of experience",
	"lead":   "8+ years of experience",
}

// ExperienceLabel maps a form experience code to its display label.
// Unknown codes are returned unchanged.
func ExperienceLabel(level string) string {
	if label, ok := experienceLabels[strings.ToLower(strings.TrimSpace(level))]; ok {
		return label
	}
	return level
}

func ExperienceRequirement(level string) string {
	if req, ok := experienceRequirements[strings.ToLower(strings.TrimSpace(level))]; ok {
		return req
	}
	return "Relevant experience"
}

// FallbackText builds a placeholder description from the form alone, for when
// the generator cannot be reached. It uses the same dialect as generated text
// so it renders and exports like any other description.
func FallbackText(in dtos.JobInput) string {
	var b strings.Builder

	b.WriteString("**Job Overview**\n")
	b.WriteString("[Job description will be generated based on your requirements]\n\n")

	b.WriteString("**Key Responsibilities**\n")
	for i := 1; i <= 3; i++ {
		fmt.Fprintf(&b, "- [Responsibility %d]\n", i)
	}
	b.WriteString("\n")

	b.WriteString("**Required Skills & Qualifications**\n")
	fmt.Fprintf(&b, "- %s\n", ExperienceRequirement(in.ExperienceLevel))
	fmt.Fprintf(&b, "- Skills: %s\n", strings.TrimSpace(in.SkillsKnown))
	fmt.Fprintf(&b, "- Education: %s\n", strings.TrimSpace(in.Degree))
	b.WriteString("- [Additional qualification]\n\n")

	if details := strings.TrimSpace(in.AdditionalDetails); details != "" {
		b.WriteString("**Additional Information**\n")
		b.WriteString(details + "\n\n")
	}

	b.WriteString("**How to Apply**\n")
	fmt.Fprintf(&b, "Please send your application to %s\n", strings.TrimSpace(in.CompanyEmail))

	return b.String()
}
