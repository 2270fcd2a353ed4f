package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mizuha/rednote-remix/internal/observability"
	"github.com/mizuha/rednote-remix/internal/textutil"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a note's title, body, and media from its share URL",
	Long:  "Extracts a note with a headless browser. The URL may be pasted straight from a share sheet; surrounding promotional text is stripped automatically.",
	RunE:  runExtract,
}

var (
	extractURL        string
	extractOutputFile string
)

func init() {
	extractCmd.Flags().StringVarP(&extractURL, "url", "u", "", "Note share URL or share-sheet text containing one (required)")
	extractCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Path to write the extracted record as JSON (default: stdout summary only)")

	if err := extractCmd.MarkFlagRequired("url"); err != nil {
		panic(fmt.Sprintf("failed to mark url flag as required: %v", err))
	}

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	url := textutil.FirstURL(extractURL)
	if url == "" {
		url = extractURL
	}

	s := buildScraper(cfg)
	record, err := s.Extract(cmd.Context(), url)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintContentRecord(record)

	if extractOutputFile != "" {
		jsonBytes, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		if err := os.WriteFile(extractOutputFile, jsonBytes, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Output: %s\n", extractOutputFile)
	}

	return nil
}
