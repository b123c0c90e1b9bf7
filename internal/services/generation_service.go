package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/justsurfingit/job-description-generator/internal/dtos"
	"github.com/justsurfingit/job-description-generator/internal/formatter"
)

// GenerationService backs POST /generate: it checks the backend's required
// fields, asks the LLM for a description and echoes normalized job details.
type GenerationService struct {
	LLM TextGenerator
	Now func() time.Time
}

func NewGenerationService(llm TextGenerator) *GenerationService {
	return &GenerationService{LLM: llm, Now: time.Now}
}

// backendRequired lists the fields the generator itself insists on, in check order.
var backendRequired = []struct {
	key   string
	label string
	value func(dtos.JobInput) string
}{
	{"jobTitle", "job title", func(in dtos.JobInput) string { return in.JobTitle }},
	{"companyName", "company name", func(in dtos.JobInput) string { return in.CompanyName }},
	{"city", "city", func(in dtos.JobInput) string { return in.City }},
	{"state", "state", func(in dtos.JobInput) string { return in.State }},
	{"jobType", "job type", func(in dtos.JobInput) string { return in.JobType }},
	{"experienceLevel", "experience level", func(in dtos.JobInput) string { return in.ExperienceLevel }},
	{"salary", "salary", func(in dtos.JobInput) string { return in.Salary }},
	{"companyEmail", "company email", func(in dtos.JobInput) string { return in.CompanyEmail }},
}

// Generate never returns a Go error: failures are reported in the response
// with Success=false so clients see one contract.
func (s *GenerationService) Generate(ctx context.Context, in dtos.JobInput) *dtos.GenerateResponse {
	for _, f := range backendRequired {
		if strings.TrimSpace(f.value(in)) == "" {
			return &dtos.GenerateResponse{
				Success: false,
				Error:   "Missing required field: " + f.key,
				Message: fmt.Sprintf("Please fill in the %s field.", f.label),
			}
		}
	}

	log.Printf("🤖 Generating content for %q with Gemini...", in.JobTitle)
	text, err := s.LLM.GenerateText(ctx, BuildJobDescriptionPrompt(in))
	if err != nil {
		log.Printf("❌ Error in generate: %v", err)
		return &dtos.GenerateResponse{
			Success: false,
			Error:   err.Error(),
			Message: "Failed to generate job description. Please try again.",
		}
	}
	log.Printf("✅ Generated job description: %d characters", len(text))

	details := DetailsFor(in)
	return &dtos.GenerateResponse{
		Success:        true,
		JobDescription: text,
		JobDetails:     &details,
		Metadata: &dtos.Metadata{
			GeneratedAt: s.Now().UTC().Format(time.RFC3339),
			WordCount:   WordCount(text),
		},
	}
}

// DetailsFor derives the display details from a form.
func DetailsFor(in dtos.JobInput) dtos.JobDetails {
	experience := formatter.ExperienceLabel(in.ExperienceLevel)
	if experience == in.ExperienceLevel {
		experience = titleCase(experience)
	}
	return dtos.JobDetails{
		Title:           titleCase(in.JobTitle),
		Company:         titleCase(in.CompanyName),
		Location:        fmt.Sprintf("%s, %s", titleCase(in.City), titleCase(in.State)),
		JobType:         titleCase(strings.ReplaceAll(in.JobType, "-", " ")),
		ExperienceLevel: experience,
		Salary:          strings.ToUpper(in.Salary),
		Email:           in.CompanyEmail,
	}
}

func WordCount(text string) int {
	return len(strings.Fields(text))
}

// titleCase builds a fresh Caser per call; Casers are not safe for concurrent use.
func titleCase(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}
