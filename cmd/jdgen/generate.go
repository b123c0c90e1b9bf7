package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/justsurfingit/job-description-generator/internal/client"
	"github.com/justsurfingit/job-description-generator/internal/config"
	"github.com/justsurfingit/job-description-generator/internal/database"
	"github.com/justsurfingit/job-description-generator/internal/document"
	"github.com/justsurfingit/job-description-generator/internal/dtos"
	"github.com/justsurfingit/job-description-generator/internal/services"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a job description from a JSON form",
	Long:  "Post a JSON job form to the generator service, print the description and optionally export it as a PDF. Falls back to a template when the service is unreachable.",
	RunE:  runGenerate,
}

var (
	generateInputFile string
	generateURL       string
	generateOutFile   string
	generatePDFFile   string
)

func init() {
	generateCmd.Flags().StringVarP(&generateInputFile, "in", "i", "", "Path to JSON job form (required)")
	generateCmd.Flags().StringVar(&generateURL, "url", "", "Generator base URL (overrides GENERATOR_URL env var)")
	generateCmd.Flags().StringVarP(&generateOutFile, "out", "o", "", "Write the description text here instead of stdout")
	generateCmd.Flags().StringVar(&generatePDFFile, "pdf", "", "Also export the description to this PDF path")
	_ = generateCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	cfg, err := config.FromEnv(os.Getenv)
	if err != nil {
		return err
	}
	baseURL := generateURL
	if baseURL == "" {
		baseURL = cfg.GeneratorURL
	}

	raw, err := os.ReadFile(generateInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	var in dtos.JobInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return fmt.Errorf("failed to parse job form: %w", err)
	}

	forms := services.NewFormService(
		client.New(baseURL, client.WithTimeout(cfg.GeneratorTimeout)),
		services.NewJobService(database.NewMemoryStore()),
	)
	outcome, err := forms.Submit(context.Background(), in)
	if outcome != nil {
		for _, t := range outcome.Toasts {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", t.Kind, t.Message)
		}
	}
	if err != nil {
		return err
	}

	desc := outcome.Description
	if generateOutFile != "" {
		if err := os.WriteFile(generateOutFile, []byte(desc.Description), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	} else {
		fmt.Println(desc.Description)
	}

	if generatePDFFile == "" {
		return nil
	}
	return writePDF(document.NewExporter(), desc.Details, services.RenderedBody(desc), generatePDFFile)
}
