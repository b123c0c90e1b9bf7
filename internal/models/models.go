package models

import (
	"time"

	"github.com/justsurfingit/job-description-generator/internal/dtos"
)

// JobDescription is one generated description together with the input that produced it.
// Regeneration overwrites the row in place, keeping the ID.
type JobDescription struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Input   dtos.JobInput   `gorm:"serializer:json;type:text" json:"input"`
	Details dtos.JobDetails `gorm:"embedded;embeddedPrefix:detail_" json:"job_details"`

	Description string `gorm:"type:text" json:"description"`
	WordCount   int    `json:"word_count"`
	// Fallback marks a locally synthesized placeholder used when the generator was unreachable.
	Fallback bool `gorm:"default:false" json:"fallback"`
}
