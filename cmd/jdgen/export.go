package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/justsurfingit/job-description-generator/internal/document"
	"github.com/justsurfingit/job-description-generator/internal/dtos"
	"github.com/justsurfingit/job-description-generator/internal/formatter"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a job description text file to PDF",
	RunE:  runExport,
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the print preview of a job description text file as HTML",
	RunE:  runPreview,
}

var (
	docInputFile string
	docOutFile   string
	docDetails   dtos.JobDetails
)

func init() {
	for _, cmd := range []*cobra.Command{exportCmd, previewCmd} {
		cmd.Flags().StringVarP(&docInputFile, "in", "i", "", "Path to generated description text (required)")
		cmd.Flags().StringVarP(&docOutFile, "out", "o", "", "Output path")
		cmd.Flags().StringVar(&docDetails.Title, "title", "", "Job title")
		cmd.Flags().StringVar(&docDetails.Company, "company", "", "Company name")
		cmd.Flags().StringVar(&docDetails.Location, "location", "", "Job location")
		cmd.Flags().StringVar(&docDetails.JobType, "job-type", "", "Job type")
		cmd.Flags().StringVar(&docDetails.ExperienceLevel, "experience", "", "Experience level")
		_ = cmd.MarkFlagRequired("in")
		rootCmd.AddCommand(cmd)
	}
}

func readRendered() (string, error) {
	raw, err := os.ReadFile(docInputFile)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return formatter.Body(string(raw)), nil
}

func runExport(_ *cobra.Command, _ []string) error {
	rendered, err := readRendered()
	if err != nil {
		return err
	}
	out := docOutFile
	if out == "" {
		out = document.Filename(docDetails.Title)
	}
	return writePDF(document.NewExporter(), docDetails, rendered, out)
}

func runPreview(_ *cobra.Command, _ []string) error {
	rendered, err := readRendered()
	if err != nil {
		return err
	}
	html, err := document.NewExporter().Preview(docDetails, rendered)
	if err != nil {
		return err
	}
	if docOutFile == "" {
		fmt.Println(html)
		return nil
	}
	return os.WriteFile(docOutFile, []byte(html), 0644)
}

// writePDF creates path only when the whole document rendered.
func writePDF(e *document.Exporter, details dtos.JobDetails, rendered, path string) error {
	var buf bytes.Buffer
	if _, err := e.PDF(details, rendered, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	fmt.Fprintf(os.Stderr, "PDF written to %s\n", path)
	return nil
}
