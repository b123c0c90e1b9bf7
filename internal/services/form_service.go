package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/justsurfingit/job-description-generator/internal/client"
	"github.com/justsurfingit/job-description-generator/internal/dtos"
	"github.com/justsurfingit/job-description-generator/internal/models"
)

// Generator is the remote job description generator.
type Generator interface {
	Generate(ctx context.Context, input dtos.JobInput) (*dtos.GenerateResponse, error)
}

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateResult  State = "result"
	StateError   State = "error"
)

const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastWarning = "warning"
	ToastInfo    = "info"
)

const (
	validationMessage = "Please fill in all required fields"
	successMessage    = "Job description generated successfully!"
	fallbackMessage   = "Generated a template for you to customize"
)

// ValidationError lists the required form fields that were empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", validationMessage, strings.Join(e.Missing, ", "))
}

// Outcome is what a submission leaves behind. Description is set on success
// and when a fallback document was produced.
type Outcome struct {
	State       State
	Description *models.JobDescription
	Toasts      []dtos.Toast
}

// FormService drives a form submission: validate, call the generator once,
// store the result or a fallback placeholder.
type FormService struct {
	generator Generator
	jobs      *JobService
	validate  *validator.Validate
	group     singleflight.Group
	newID     func() string
}

func NewFormService(gen Generator, jobs *JobService) *FormService {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}

	return &FormService{
		generator: gen,
		jobs:      jobs,
		validate:  v,
		newID:     uuid.NewString,
	}
}

// Validate reports every blank required field, in form order.
func (s *FormService) Validate(in dtos.JobInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return &ValidationError{Missing: missing}
}

func (s *FormService) Submit(ctx context.Context, in dtos.JobInput) (*Outcome, error) {
	return s.submit(ctx, s.newID(), in, nil)
}

// Regenerate re-submits the stored input and replaces the record under the same id.
// A generated description is never replaced by a fallback placeholder.
func (s *FormService) Regenerate(ctx context.Context, id string) (*Outcome, error) {
	desc, err := s.jobs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.submit(ctx, id, desc.Input, desc)
}

func (s *FormService) Get(ctx context.Context, id string) (*models.JobDescription, error) {
	return s.jobs.Get(ctx, id)
}

// submit runs one generation. existing is the stored record being regenerated, nil for new forms.
func (s *FormService) submit(ctx context.Context, id string, in dtos.JobInput, existing *models.JobDescription) (*Outcome, error) {
	in = trimInput(in)
	if err := s.Validate(in); err != nil {
		return &Outcome{
			State:  StateIdle,
			Toasts: []dtos.Toast{{Kind: ToastError, Message: validationMessage}},
		}, err
	}

	log.Printf("⏳ [%s] Generating job description for %q at %q", StateLoading, in.JobTitle, in.CompanyName)
	resp, err := s.generate(ctx, in)
	if err != nil {
		return s.handleFailure(ctx, id, in, existing, err)
	}

	desc, err := s.jobs.SaveGenerated(ctx, id, in, resp)
	if err != nil {
		return nil, fmt.Errorf("failed to store job description: %w", err)
	}
	log.Printf("✅ Stored job description %s (%d words)", id, desc.WordCount)
	return &Outcome{
		State:       StateResult,
		Description: desc,
		Toasts:      []dtos.Toast{{Kind: ToastSuccess, Message: successMessage}},
	}, nil
}

// generate collapses identical in-flight submissions into one outbound call.
// The call is detached from the caller's cancellation and bounded by the client timeout.
func (s *FormService) generate(ctx context.Context, in dtos.JobInput) (*dtos.GenerateResponse, error) {
	key, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)
	v, err, shared := s.group.Do(string(key), func() (interface{}, error) {
		return s.generator.Generate(ctx, in)
	})
	if shared {
		log.Printf("🔁 Joined an in-flight generation for %q", in.JobTitle)
	}
	if err != nil {
		return nil, err
	}
	return v.(*dtos.GenerateResponse), nil
}

// handleFailure turns a generator failure into an error outcome, with a fallback
// document when the generator could not be reached. A previously generated
// record is returned untouched instead.
func (s *FormService) handleFailure(ctx context.Context, id string, in dtos.JobInput, existing *models.JobDescription, genErr error) (*Outcome, error) {
	log.Printf("❌ Generation failed: %v", genErr)

	outcome := &Outcome{State: StateError}
	var ce *client.Error
	if !errors.As(genErr, &ce) {
		outcome.Toasts = []dtos.Toast{{Kind: ToastError, Message: genErr.Error()}}
		return outcome, genErr
	}
	outcome.Toasts = []dtos.Toast{{Kind: ToastError, Message: ce.Message}}
	if ce.Kind == client.KindApplication {
		return outcome, genErr
	}
	if existing != nil && !existing.Fallback {
		log.Printf("↩️  Keeping generated description %s", id)
		outcome.Description = existing
		return outcome, nil
	}

	desc, err := s.jobs.SaveFallback(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("failed to store fallback description: %w", err)
	}
	log.Printf("📝 Stored fallback template %s", id)
	outcome.Description = desc
	outcome.Toasts = append(outcome.Toasts, dtos.Toast{Kind: ToastInfo, Message: fallbackMessage})
	return outcome, nil
}

func trimInput(in dtos.JobInput) dtos.JobInput {
	in.JobTitle = strings.TrimSpace(in.JobTitle)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.CompanyEmail = strings.TrimSpace(in.CompanyEmail)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.TrimSpace(in.State)
	in.JobType = strings.TrimSpace(in.JobType)
	in.ExperienceLevel = strings.TrimSpace(in.ExperienceLevel)
	in.Degree = strings.TrimSpace(in.Degree)
	in.SkillsKnown = strings.TrimSpace(in.SkillsKnown)
	in.Salary = strings.TrimSpace(in.Salary)
	in.AdditionalDetails = strings.TrimSpace(in.AdditionalDetails)
	return in
}
