// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/goscha01/SiteForge/internal/render"
	"github.com/goscha01/SiteForge/internal/score"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxDiffLines is the number of patch diff lines to display
	maxDiffLines = 10
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

// PrintScore outputs the design score breakdown.
func (p *Printer) PrintScore(result score.Result) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Total:            %.0f / 100\n", result.Total))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Contrast:         %5.1f / 20\n", result.Breakdown.Contrast))
	sb.WriteString(fmt.Sprintf("Hierarchy:        %5.1f / 10\n", result.Breakdown.Hierarchy))
	sb.WriteString(fmt.Sprintf("Layout diversity: %5.1f / 25\n", result.Breakdown.LayoutDiversity))
	sb.WriteString(fmt.Sprintf("Signature:        %5.1f / 20\n", result.Breakdown.SignaturePresence))
	sb.WriteString(fmt.Sprintf("Typography:       %5.1f / 10\n", result.Breakdown.Typography))
	sb.WriteString(fmt.Sprintf("Rhythm:           %5.1f / 10\n", result.Breakdown.RhythmVariety))
	sb.WriteString(fmt.Sprintf("Anti-template:    %5.1f /  5\n", result.Breakdown.AntiTemplate))
	if result.MustImprove {
		sb.WriteString("\nVerdict: must improve")
	} else {
		sb.WriteString("\nVerdict: acceptable")
	}

	p.printBox("DESIGN SCORE", sb.String())
}

// PrintManifest outputs a summary of the rendered page manifest.
func (p *Printer) PrintManifest(m render.Manifest) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Version:   %s\n", m.Version))
	sb.WriteString(fmt.Sprintf("Signature: %s\n", orNone(string(m.Signature))))
	sb.WriteString(fmt.Sprintf("Density:   %s\n", m.Density))
	sb.WriteString(fmt.Sprintf("Hash:      %s\n", m.SchemaHash))
	sb.WriteString("\nBlocks:\n")
	for _, b := range m.Blocks {
		line := fmt.Sprintf("  %2d. %s / %s", b.Index, b.Type, b.Variant)
		if b.Unknown {
			line += " (unknown)"
		}
		sb.WriteString(line + "\n")
	}

	p.printBox("RENDER MANIFEST", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDiff outputs the patch diff lines from a QA run.
func (p *Printer) PrintDiff(lines []string) {
	if len(lines) == 0 {
		return
	}

	var sb strings.Builder
	count := len(lines)
	if count > maxDiffLines {
		count = maxDiffLines
	}
	for i := 0; i < count; i++ {
		sb.WriteString("• " + lines[i] + "\n")
	}
	if len(lines) > maxDiffLines {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(lines)-maxDiffLines))
	}

	p.printBox("APPLIED PATCHES", strings.TrimSuffix(sb.String(), "\n"))
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
