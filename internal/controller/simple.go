package controller

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "chisel.dev/pkg/chisel/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	errStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// SimpleUI implements UI using the cobra command's output streams.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayGeneration prints the per-header summary table of a finished run.
func (s *SimpleUI) DisplayGeneration(libName string, stats []HeaderStat) error {
	s.printf("%s\n\n", titleStyle.Render(fmt.Sprintf("Generated headers for %q", libName)))

	sort.Slice(stats, func(i, j int) bool { return stats[i].Header < stats[j].Header })

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Header", "Declarations", "Bytes"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

	totalDecls := 0
	totalBytes := 0

	for _, stat := range stats {
		table.Append([]string{
			string(stat.Header),
			fmt.Sprintf("%d", stat.Declarations),
			fmt.Sprintf("%d", stat.Bytes),
		})

		totalDecls += stat.Declarations
		totalBytes += stat.Bytes
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Headers %d", len(stats)),
		fmt.Sprintf("%d", totalDecls),
		fmt.Sprintf("%d", totalBytes),
	})

	table.Render()

	s.printf("%s", tableBuffer.String())

	return nil
}

// DisplayEstimation prints the exportable/skipped split per manifest.
func (s *SimpleUI) DisplayEstimation(stats []ManifestStat) error {
	sort.Slice(stats, func(i, j int) bool { return stats[i].Manifest < stats[j].Manifest })

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Manifest", "Exportable", "Skipped"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

	exportable := 0
	skipped := 0

	for _, stat := range stats {
		table.Append([]string{
			string(stat.Manifest),
			fmt.Sprintf("%d", stat.Exportable),
			fmt.Sprintf("%d", stat.Skipped),
		})

		exportable += stat.Exportable
		skipped += stat.Skipped
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Manifests %d", len(stats)),
		fmt.Sprintf("%d", exportable),
		fmt.Sprintf("%d", skipped),
	})

	table.Render()

	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayHeaders prints the headers found in an output directory.
func (s *SimpleUI) DisplayHeaders(dir m.Path, headers []HeaderFile) error {
	s.printf("%s\n", titleStyle.Render(fmt.Sprintf("Headers in %s", dir)))

	for _, header := range headers {
		s.printf("  %s (%d bytes)\n", header.Header, header.Bytes)
	}

	s.printf("Total: %d header(s)\n", len(headers))

	return nil
}

// DisplayError prints a user-facing failure.
func (s *SimpleUI) DisplayError(err error) {
	s.printf("%s\n", errStyle.Render(fmt.Sprintf("generation failed: %v", err)))
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
