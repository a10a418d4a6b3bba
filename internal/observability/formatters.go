// Package observability provides logging and formatted console output for the CLI.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/jobboard-finder/internal/registry"
	"github.com/jonathan/jobboard-finder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
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
		if utf8.RuneCountInString(line) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSummary outputs the counts for a finished run.
func (p *Printer) PrintSummary(summary *types.Summary, outputPath string) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:      %s\n", summary.RunID))
	sb.WriteString(fmt.Sprintf("Rows:     %d read, %d written, %d skipped\n",
		summary.RowsRead, summary.RowsWritten, summary.RowsSkipped))
	sb.WriteString(fmt.Sprintf("Matched:  %d\n", summary.Matched))
	sb.WriteString(fmt.Sprintf("Duration: %s\n", (time.Duration(summary.DurationMS) * time.Millisecond).String()))
	if outputPath != "" {
		sb.WriteString(fmt.Sprintf("Output:   %s\n", outputPath))
	}

	if len(summary.Vendors) > 0 {
		sb.WriteString("\nVendors:\n")
		writeCounts(&sb, summary.Vendors)
	}
	if len(summary.Notes) > 0 {
		sb.WriteString("\nNotes:\n")
		writeCounts(&sb, summary.Notes)
	}
	if len(summary.Updates) > 0 {
		sb.WriteString("\nUpdates:\n")
		writeCounts(&sb, summary.Updates)
	}

	p.printBox("JOB BOARD SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintVendors outputs the vendors in a registry in scan order.
func (p *Printer) PrintVendors(reg *registry.Registry) {
	if reg == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d vendors:\n\n", reg.Len()))
	for _, spec := range reg.Specs() {
		sb.WriteString(fmt.Sprintf("  • %-16s %s\n", spec.Vendor, spec.Domain))
	}

	p.printBox("JOB BOARD VENDORS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRow outputs the result for a single row.
func (p *Printer) PrintRow(row types.OutputRow) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company: %s\n", row.Company))
	sb.WriteString(fmt.Sprintf("Source:  %s\n", row.SourceURL))
	if row.Matched() {
		sb.WriteString(fmt.Sprintf("Vendor:  %s\n", row.Vendor))
		sb.WriteString(fmt.Sprintf("Board:   %s\n", row.BoardURL))
	} else {
		sb.WriteString("Vendor:  (none)\n")
	}
	if row.Note != "" {
		sb.WriteString(fmt.Sprintf("Note:    %s\n", row.Note))
	}
	if row.Update != "" {
		sb.WriteString(fmt.Sprintf("Update:  %s\n", row.Update))
	}

	p.printBox("JOB BOARD DETECTION", strings.TrimSuffix(sb.String(), "\n"))
}

// writeCounts writes the largest counts first, ties by name, up to maxItemsToShow.
func writeCounts(sb *strings.Builder, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	count := min(len(keys), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %-28s %d\n", keys[i], counts[keys[i]]))
	}
	if len(keys) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(keys)-maxItemsToShow))
	}
}
