// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/mizuha/rednote-remix/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintContentRecord outputs a human-readable summary of an extracted note.
func (p *Printer) PrintContentRecord(record *types.ContentRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Title:   %s\n", record.Title))
	if record.Author != "" {
		sb.WriteString(fmt.Sprintf("Author:  %s\n", record.Author))
	}
	if record.Likes > 0 {
		sb.WriteString(fmt.Sprintf("Likes:   %d\n", record.Likes))
	}
	sb.WriteString("\n")

	body := record.Body
	if len(body) > 200 {
		body = body[:197] + "..."
	}
	for _, line := range strings.Split(body, "\n") {
		sb.WriteString(fmt.Sprintf("  %s\n", line))
	}

	if len(record.MediaURLs) > 0 {
		sb.WriteString(fmt.Sprintf("\nMedia (%d):\n", len(record.MediaURLs)))
		count := min(len(record.MediaURLs), maxItemsToShow)
		for i := 0; i < count; i++ {
			url := record.MediaURLs[i]
			if len(url) > 50 {
				url = url[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", url))
		}
		if len(record.MediaURLs) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(record.MediaURLs)-maxItemsToShow))
		}
	}

	p.printBox("EXTRACTED NOTE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRewriteResult outputs the rewritten note with its provider.
func (p *Printer) PrintRewriteResult(result *types.RewriteResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Provider: %s\n", result.Provider))
	if result.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", result.Title))
	}
	sb.WriteString("\n")

	for _, line := range strings.Split(result.Text, "\n") {
		sb.WriteString(fmt.Sprintf("  %s\n", line))
	}

	p.printBox("REWRITTEN NOTE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintImageResult outputs the generated image references.
func (p *Printer) PrintImageResult(result *types.ImageResult) {
	if result == nil || len(result.Refs) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Provider: %s\n", result.Provider))
	sb.WriteString(fmt.Sprintf("Images:   %d\n\n", len(result.Refs)))

	count := min(len(result.Refs), maxItemsToShow)
	for i := 0; i < count; i++ {
		ref := result.Refs[i]
		switch {
		case ref.URL != "":
			url := ref.URL
			if len(url) > 50 {
				url = url[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, url))
		case len(ref.Data) > 0:
			sb.WriteString(fmt.Sprintf("#%d  <inline, %d bytes>\n", i+1, len(ref.Data)))
		default:
			sb.WriteString(fmt.Sprintf("#%d  <empty>\n", i+1))
		}
	}

	if len(result.Refs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more images", len(result.Refs)-maxItemsToShow))
	}

	p.printBox("GENERATED IMAGES", sb.String())
}
