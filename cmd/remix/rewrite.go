package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mizuha/rednote-remix/internal/observability"
	"github.com/mizuha/rednote-remix/internal/types"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Rewrite an extracted note in a chosen style",
	Long:  "Rewrites a note's title and body through a text backend. Input is either an extracted record JSON file or explicit --title/--content flags.",
	RunE:  runRewrite,
}

var (
	rewriteInputFile   string
	rewriteTitle       string
	rewriteContent     string
	rewriteStyle       string
	rewriteInstruction string
	rewriteProvider    string
	rewriteAPIKey      string
	rewriteOutputFile  string
)

func init() {
	rewriteCmd.Flags().StringVarP(&rewriteInputFile, "in", "i", "", "Path to an extracted record JSON file")
	rewriteCmd.Flags().StringVar(&rewriteTitle, "title", "", "Note title (alternative to --in)")
	rewriteCmd.Flags().StringVar(&rewriteContent, "content", "", "Note body (alternative to --in)")
	rewriteCmd.Flags().StringVarP(&rewriteStyle, "style", "s", string(types.StyleAttention), fmt.Sprintf("Rewrite style: one of %v", types.Styles()))
	rewriteCmd.Flags().StringVar(&rewriteInstruction, "instruction", "", "Rewrite instruction, required when --style=custom")
	rewriteCmd.Flags().StringVarP(&rewriteProvider, "provider", "p", textProviderDeepSeek, "Text provider id")
	rewriteCmd.Flags().StringVar(&rewriteAPIKey, "api-key", "", "Provider API key (overrides the environment)")
	rewriteCmd.Flags().StringVarP(&rewriteOutputFile, "out", "o", "", "Path to write the rewrite result as JSON")

	rootCmd.AddCommand(rewriteCmd)
}

func runRewrite(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if rewriteAPIKey != "" {
		switch rewriteProvider {
		case textProviderGemini:
			cfg.GeminiAPIKey = rewriteAPIKey
		default:
			cfg.DeepSeekAPIKey = rewriteAPIKey
		}
	}

	title, content := rewriteTitle, rewriteContent
	if rewriteInputFile != "" {
		data, err := os.ReadFile(rewriteInputFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		var record types.ContentRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return fmt.Errorf("failed to unmarshal record JSON: %w", err)
		}
		title, content = record.Title, record.Body
	}
	if content == "" {
		return fmt.Errorf("nothing to rewrite (provide --in or --content)")
	}

	registry := buildRegistry(cfg)
	gen, err := registry.Text(rewriteProvider)
	if err != nil {
		return err
	}
	if !gen.Configured() {
		return fmt.Errorf("provider %s is not configured (missing API key)", gen.Name())
	}

	result, err := gen.Generate(cmd.Context(), types.RewriteRequest{
		OriginalTitle:     title,
		OriginalContent:   content,
		Style:             types.Style(rewriteStyle),
		CustomInstruction: rewriteInstruction,
	})
	if err != nil {
		return fmt.Errorf("rewrite failed: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintRewriteResult(result)

	if rewriteOutputFile != "" {
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		if err := os.WriteFile(rewriteOutputFile, jsonBytes, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Output: %s\n", rewriteOutputFile)
	}

	return nil
}
