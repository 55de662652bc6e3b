package controller

import (
	"bytes"
	"strings"
	"testing"

	m "github.com/mouse-blink/pedant/internal/model"
	"github.com/spf13/cobra"
)

func sampleReport() *m.RunReport {
	return &m.RunReport{
		Game:  "ck3",
		Files: 2,
		Diagnostics: []m.Diagnostic{
			{
				Severity: m.SeverityError,
				Key:      m.KeyUnknownToken,
				Loc:      m.Loc{Path: "events/a.txt", Line: 4, Column: 9},
				Message:  "unknown token `leige`",
				Info:     "did you mean `liege`?",
			},
			{
				Severity: m.SeverityWarning,
				Key:      m.KeyKindMismatch,
				Loc:      m.Loc{Path: "events/b.txt", Line: 10, Column: 3},
				Message:  "`county_control` is for landed title but scope seems to be character",
				Related: []m.Related{
					{Loc: m.Loc{Path: "events/b.txt", Line: 2, Column: 1}, Note: "scope was supplied by the game engine"},
				},
			},
		},
	}
}

func TestSimpleUI_DisplayReport_PrintsDiagnosticsAndTable(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	ui := NewSimpleUI(cmd)

	if err := ui.DisplayReport(sampleReport()); err != nil {
		t.Fatalf("DisplayReport() error = %v", err)
	}

	output := buf.String()

	for _, want := range []string{
		"events/a.txt:4:9: error(unknown-token): unknown token `leige`",
		"did you mean `liege`?",
		"events/b.txt:2:1: scope was supplied by the game engine",
		"events/a.txt",
		"events/b.txt",
		"TOTAL FILES 2",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}
}

func TestSimpleUI_DisplayScanInfo(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	ui := NewSimpleUI(cmd)
	ui.DisplayScanInfo(12, 4)

	if !strings.Contains(buf.String(), "Validating 12 files with 4 worker(s)") {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}

func TestSimpleUI_StartAndClose(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	ui := NewSimpleUI(cmd)

	if err := ui.Start(WithSummaryMode()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ui.Close()
}
