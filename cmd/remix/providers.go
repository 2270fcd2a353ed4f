package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List registered providers and whether they are configured",
	RunE:  runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	registry := buildRegistry(cfg)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tID\tNAME\tCONFIGURED")

	for _, id := range registry.TextIDs() {
		gen, err := registry.Text(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "text\t%s\t%s\t%t\n", id, gen.Name(), gen.Configured())
	}
	for _, id := range registry.ImageIDs() {
		gen, err := registry.Image(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "image\t%s\t%s\t%t\n", id, gen.Name(), gen.Configured())
	}

	return w.Flush()
}
