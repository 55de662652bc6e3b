package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/pedant/internal/controller"
)

func writeTestMod(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	path := filepath.Join(root, "events", "test_events.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	src := `
		namespace = test
		test.1 = {
			type = character_event
			trigger = { is_adultt = yes }
		}
	`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	return root
}

func TestRootCmd_ValidatesAndWritesReport(t *testing.T) {
	root := writeTestMod(t)
	reportsDir := filepath.Join(t.TempDir(), "reports")

	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	originalUI := ui
	ui = controller.NewSimpleUI(cmd)
	defer func() { ui = originalUI }()

	cmd.SetArgs([]string{root, "--reports", reportsDir})
	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "unknown trigger `is_adultt`")
	assert.Contains(t, output, "TOTAL FILES 1")

	if _, err := os.Stat(filepath.Join(reportsDir, "ck3.yaml")); err != nil {
		t.Fatalf("report file missing: %v", err)
	}
}

func TestRootCmd_UnknownGame(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{"--game", "eu4", t.TempDir()})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown game")
}

func TestParsePaths_DefaultsToCurrentDir(t *testing.T) {
	paths := parsePaths(nil)

	require.Len(t, paths, 1)
	assert.Equal(t, ".", string(paths[0]))
}

func TestRunCmd_Validates(t *testing.T) {
	root := writeTestMod(t)
	reportsDir := filepath.Join(t.TempDir(), "reports")

	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	originalUI := ui
	ui = controller.NewSimpleUI(cmd)
	defer func() { ui = originalUI }()

	cmd.SetArgs([]string{"run", root, "--reports", reportsDir, "--parallel", "2"})
	require.NoError(t, cmd.Execute())

	if !strings.Contains(buf.String(), "unknown trigger `is_adultt`") {
		t.Fatalf("output missing diagnostic\noutput:\n%s", buf.String())
	}
}
