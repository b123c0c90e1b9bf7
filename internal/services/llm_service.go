package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/justsurfingit/job-description-generator/internal/dtos"
)

// TextGenerator produces free text for a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type LLMService struct {
	// Hold the client here so it is not recreated for every request
	Client llms.Model
}

// NewLLMService initializes the Gemini client
func NewLLMService(ctx context.Context, apiKey, model string) (*LLMService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is empty. Did you load the .env file?")
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	log.Printf("🤖 Gemini client ready (model %s)", model)
	return &LLMService{Client: llm}, nil
}

func (s *LLMService) GenerateText(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
}

const jobDescriptionPrompt = `
Create a comprehensive, professional job description for the following position.
Format the response as a well-structured document with clear sections.

Job Details:
- Job Title: %s
- Company: %s
- Location: %s, %s
- Job Type: %s
- Experience Level: %s
- Required Degree: %s
- Key Skills: %s
- Salary Range: %s
- Company Email: %s
%s
Please create a professional job description with the following structure:

1. **Job Overview** - A compelling 2-3 sentence summary of the role
2. **Key Responsibilities** - 5-7 specific responsibilities in bullet points
3. **Required Qualifications** - Education, experience, and mandatory skills
4. **Preferred Qualifications** - Nice-to-have skills and experience
5. **What We Offer** - Benefits and growth opportunities
6. **How to Apply** - Application instructions

Make it professional, engaging, and specific to the role. Use proper formatting with bullet points and clear sections.
`

// BuildJobDescriptionPrompt fills the generation prompt from the form.
func BuildJobDescriptionPrompt(in dtos.JobInput) string {
	extra := ""
	if details := strings.TrimSpace(in.AdditionalDetails); details != "" {
		extra = "- Additional Requirements: " + details + "\n"
	}
	return fmt.Sprintf(jobDescriptionPrompt,
		in.JobTitle, in.CompanyName, in.City, in.State, in.JobType, in.ExperienceLevel,
		in.Degree, in.SkillsKnown, in.Salary, in.CompanyEmail, extra)
}
