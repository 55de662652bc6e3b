package controller

import (
	"bytes"
	"fmt"
	"sort"

	m "github.com/mouse-blink/pedant/internal/model"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(_ ...StartOption) error {
	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {

}

// DisplayScanInfo shows how many files were found and how many workers
// validate them.
func (s *SimpleUI) DisplayScanInfo(files int, workers int) {
	s.printf("Validating %d files with %d worker(s)\n", files, workers)
}

// DisplayReport prints every diagnostic followed by a per-file summary table.
func (s *SimpleUI) DisplayReport(report *m.RunReport) error {
	for _, d := range report.Diagnostics {
		s.printf("%s: %s(%s): %s\n", d.Loc, d.Severity, d.Key, d.Message)

		if d.Info != "" {
			s.printf("    %s\n", d.Info)
		}

		for _, rel := range d.Related {
			s.printf("    %s: %s\n", rel.Loc, rel.Note)
		}
	}

	stats := report.Stats()
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Path < stats[j].Path
	})

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Errors", "Warnings"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
	})

	for _, fs := range stats {
		table.Append([]string{
			string(fs.Path),
			fmt.Sprintf("%d", fs.Errors),
			fmt.Sprintf("%d", fs.Warnings),
		})
	}

	errors, warnings := report.Counts()
	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", report.Files),
		fmt.Sprintf("%d", errors),
		fmt.Sprintf("%d", warnings),
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
