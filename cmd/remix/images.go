package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mizuha/rednote-remix/internal/observability"
	"github.com/mizuha/rednote-remix/internal/remix"
	"github.com/mizuha/rednote-remix/internal/types"
)

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Generate cover images from a prompt or a rewritten note",
	Long:  "Generates images through an image backend. The prompt is either given directly or derived from a rewrite result JSON file plus a style.",
	RunE:  runImages,
}

var (
	imagesPrompt     string
	imagesInputFile  string
	imagesStyle      string
	imagesCount      int
	imagesProvider   string
	imagesAPIKey     string
	imagesOutputFile string
)

func init() {
	imagesCmd.Flags().StringVar(&imagesPrompt, "prompt", "", "Image prompt (alternative to --in)")
	imagesCmd.Flags().StringVarP(&imagesInputFile, "in", "i", "", "Path to a rewrite result JSON file to derive the prompt from")
	imagesCmd.Flags().StringVarP(&imagesStyle, "style", "s", string(types.StyleAttention), "Visual style used when deriving the prompt from --in")
	imagesCmd.Flags().IntVarP(&imagesCount, "count", "n", 3, "Number of images to generate")
	imagesCmd.Flags().StringVarP(&imagesProvider, "provider", "p", imageProviderPlaceholder, "Image provider id")
	imagesCmd.Flags().StringVar(&imagesAPIKey, "api-key", "", "Provider API key (overrides the environment)")
	imagesCmd.Flags().StringVarP(&imagesOutputFile, "out", "o", "", "Path to write the image result as JSON")

	rootCmd.AddCommand(imagesCmd)
}

func runImages(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if imagesAPIKey != "" {
		cfg.JimengAPIKey = imagesAPIKey
	}

	prompt := imagesPrompt
	if imagesInputFile != "" {
		data, err := os.ReadFile(imagesInputFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		var result types.RewriteResult
		if err := json.Unmarshal(data, &result); err != nil {
			return fmt.Errorf("failed to unmarshal rewrite JSON: %w", err)
		}
		prompt = remix.BuildImagePrompt(result.Title, result.Text, types.Style(imagesStyle))
	}
	if prompt == "" {
		return fmt.Errorf("nothing to generate from (provide --prompt or --in)")
	}

	registry := buildRegistry(cfg)
	gen, err := registry.Image(imagesProvider)
	if err != nil {
		return err
	}
	if !gen.Configured() {
		return fmt.Errorf("provider %s is not configured (missing credentials)", gen.Name())
	}

	result, err := gen.Generate(cmd.Context(), types.ImageRequest{Prompt: prompt, Count: imagesCount})
	if err != nil {
		return fmt.Errorf("image generation failed: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintImageResult(result)

	if imagesOutputFile != "" {
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		if err := os.WriteFile(imagesOutputFile, jsonBytes, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Output: %s\n", imagesOutputFile)
	}

	return nil
}
