// Package main provides jdgen, a command line front end for generating and exporting job descriptions.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jdgen",
	Short: "Job description generator",
	Long:  "jdgen submits job forms to the generator service and exports job descriptions as PDF or HTML previews.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
