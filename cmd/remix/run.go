package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mizuha/rednote-remix/internal/observability"
	"github.com/mizuha/rednote-remix/internal/remix"
	"github.com/mizuha/rednote-remix/internal/textutil"
	"github.com/mizuha/rednote-remix/internal/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: extract, rewrite, generate images",
	Long:  "Runs extraction, rewriting, and image generation in sequence. Artifacts produced before a failing stage are still written, so a rerun can pick up from the failed stage.",
	RunE:  runRun,
}

var (
	runURL           string
	runStyle         string
	runInstruction   string
	runTextProvider  string
	runImageProvider string
	runImageCount    int
	runOutputFile    string
)

func init() {
	runCmd.Flags().StringVarP(&runURL, "url", "u", "", "Note share URL or share-sheet text containing one (required)")
	runCmd.Flags().StringVarP(&runStyle, "style", "s", string(types.StyleAttention), fmt.Sprintf("Rewrite style: one of %v", types.Styles()))
	runCmd.Flags().StringVar(&runInstruction, "instruction", "", "Rewrite instruction, required when --style=custom")
	runCmd.Flags().StringVar(&runTextProvider, "text-provider", textProviderDeepSeek, "Text provider id")
	runCmd.Flags().StringVar(&runImageProvider, "image-provider", imageProviderPlaceholder, "Image provider id")
	runCmd.Flags().IntVarP(&runImageCount, "count", "n", 3, "Number of images to generate")
	runCmd.Flags().StringVarP(&runOutputFile, "out", "o", "", "Path to write the session artifacts as JSON")

	if err := runCmd.MarkFlagRequired("url"); err != nil {
		panic(fmt.Sprintf("failed to mark url flag as required: %v", err))
	}

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	url := textutil.FirstURL(runURL)
	if url == "" {
		url = runURL
	}

	orchestrator := buildOrchestrator(cfg)
	session, runErr := orchestrator.Run(cmd.Context(), remix.RunOptions{
		URL:               url,
		Style:             types.Style(runStyle),
		CustomInstruction: runInstruction,
		TextProvider:      runTextProvider,
		ImageProvider:     runImageProvider,
		ImageCount:        runImageCount,
	})

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintContentRecord(session.Record)
	printer.PrintRewriteResult(session.Rewrite)
	printer.PrintImageResult(session.Images)

	if runOutputFile != "" {
		jsonBytes, err := json.MarshalIndent(session, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		if err := os.WriteFile(runOutputFile, jsonBytes, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Output: %s\n", runOutputFile)
	}

	if runErr != nil {
		if session.FailedStage != "" {
			return fmt.Errorf("pipeline stopped at stage %s: %w", session.FailedStage, runErr)
		}
		return runErr
	}
	return nil
}
