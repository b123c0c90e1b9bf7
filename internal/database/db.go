package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/justsurfingit/job-description-generator/internal/models"
)

var ErrNotFound = errors.New("job description not found")

// Connect opens the Postgres database and migrates the description table.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established")

	// Migration: This creates the tables in Postgres automatically
	log.Println("Running Migrations...")
	if err := db.AutoMigrate(&models.JobDescription{}); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return db, nil
}

// GormStore keeps job descriptions in Postgres.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// Save inserts the record or overwrites the row with the same ID.
func (s *GormStore) Save(ctx context.Context, desc *models.JobDescription) error {
	return s.DB.WithContext(ctx).Save(desc).Error
}

func (s *GormStore) Get(ctx context.Context, id string) (*models.JobDescription, error) {
	var desc models.JobDescription
	err := s.DB.WithContext(ctx).First(&desc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &desc, nil
}
