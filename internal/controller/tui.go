package controller

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	m "github.com/mouse-blink/pedant/internal/model"
	"golang.org/x/term"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start initializes the UI.
func (t *TUI) Start(_ ...StartOption) error {
	return nil
}

// Close finalizes the UI.
func (t *TUI) Close() {

}

// DisplayScanInfo shows how many files were found and how many workers
// validate them.
func (t *TUI) DisplayScanInfo(files int, workers int) {
	_, _ = fmt.Fprintf(t.output, "Validating %d files with %d worker(s)\n", files, workers)
}

// DisplayReport shows the run's diagnostics in an interactive browser. When
// the list fits on screen it is printed directly instead.
func (t *TUI) DisplayReport(report *m.RunReport) error {
	model := newBrowseModel(report)

	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.width = width
			model.height = height
		}
	}

	if !model.needsPagination() {
		_, err := fmt.Fprint(t.output, model.plainView())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}
