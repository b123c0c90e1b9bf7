package services

import (
	"context"
	"time"

	"github.com/justsurfingit/job-description-generator/internal/dtos"
	"github.com/justsurfingit/job-description-generator/internal/formatter"
	"github.com/justsurfingit/job-description-generator/internal/models"
)

// DescriptionStore persists generated descriptions.
type DescriptionStore interface {
	Save(ctx context.Context, desc *models.JobDescription) error
	Get(ctx context.Context, id string) (*models.JobDescription, error)
}

type JobService struct {
	Store DescriptionStore
}

func NewJobService(store DescriptionStore) *JobService {
	return &JobService{
		Store: store,
	}
}

// SaveGenerated stores a generator answer under id, replacing any earlier version.
func (s *JobService) SaveGenerated(ctx context.Context, id string, in dtos.JobInput, resp *dtos.GenerateResponse) (*models.JobDescription, error) {
	desc := &models.JobDescription{
		ID:          id,
		Input:       in,
		Description: resp.JobDescription,
	}
	// older generators do not echo the details
	if resp.JobDetails != nil {
		desc.Details = *resp.JobDetails
	} else {
		desc.Details = DetailsFor(in)
	}
	if resp.Metadata != nil {
		desc.WordCount = resp.Metadata.WordCount
	} else {
		desc.WordCount = WordCount(resp.JobDescription)
	}
	return desc, s.save(ctx, desc)
}

// SaveFallback stores the placeholder document built locally from the form.
func (s *JobService) SaveFallback(ctx context.Context, id string, in dtos.JobInput) (*models.JobDescription, error) {
	text := formatter.FallbackText(in)
	desc := &models.JobDescription{
		ID:          id,
		Input:       in,
		Details:     DetailsFor(in),
		Description: text,
		WordCount:   WordCount(text),
		Fallback:    true,
	}
	return desc, s.save(ctx, desc)
}

func (s *JobService) Get(ctx context.Context, id string) (*models.JobDescription, error) {
	return s.Store.Get(ctx, id)
}

func (s *JobService) save(ctx context.Context, desc *models.JobDescription) error {
	// overwrites keep the first creation time
	if prev, err := s.Store.Get(ctx, desc.ID); err == nil {
		desc.CreatedAt = prev.CreatedAt
	}
	return s.Store.Save(ctx, desc)
}

// Metadata reports the stored word count and the time of the last generation.
func Metadata(desc *models.JobDescription) dtos.Metadata {
	return dtos.Metadata{
		GeneratedAt: desc.UpdatedAt.UTC().Format(time.RFC3339),
		WordCount:   desc.WordCount,
	}
}

// RenderedBody is the formatted HTML body of the stored text.
func RenderedBody(desc *models.JobDescription) string {
	return formatter.Body(desc.Description)
}

// RenderedPage is the full on-screen result card.
func RenderedPage(desc *models.JobDescription) (string, error) {
	if desc.Fallback {
		return formatter.FallbackPage(desc.Details, Metadata(desc), desc.Description)
	}
	return formatter.Page(desc.Details, Metadata(desc), desc.Description)
}
